package brcode

import "fmt"

// CRC16 computes CRC-16/CCITT-FALSE: poly 0x1021, init 0xFFFF, no
// reflection, no final xor.
func CRC16(data string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(data); i++ {
		crc ^= uint16(data[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// checksum renders the CRC as four uppercase hex digits.
func checksum(data string) string {
	return fmt.Sprintf("%04X", CRC16(data))
}
