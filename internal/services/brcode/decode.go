package brcode

import (
	"fmt"

	domainErrors "pixfacil/internal/errors"
)

// Decoded is the readable content of a payload.
type Decoded struct {
	KeyValue    string `json:"pixKeyValue"`
	Amount      string `json:"amount,omitempty"`
	Name        string `json:"merchantName"`
	City        string `json:"merchantCity"`
	Description string `json:"description,omitempty"`
	CRC         string `json:"crc"`
}

// Decode checks the checksum and pulls the payment fields out of payload.
func Decode(payload string) (*Decoded, error) {
	if !Verify(payload) {
		return nil, fmt.Errorf("checksum mismatch: %w", domainErrors.ErrInvalidPayload)
	}

	fields, err := Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domainErrors.ErrInvalidPayload)
	}

	if v, _ := fields.Get(idPayloadFormat); v != payloadFormat {
		return nil, fmt.Errorf("unexpected payload format %q: %w", v, domainErrors.ErrInvalidPayload)
	}

	d := &Decoded{}
	d.Amount, _ = fields.Get(idAmount)
	d.Name, _ = fields.Get(idMerchantName)
	d.City, _ = fields.Get(idMerchantCity)
	d.CRC, _ = fields.Get(idCRC)

	account, ok := fields.Get(idMerchantAccount)
	if !ok {
		return nil, fmt.Errorf("missing merchant account: %w", domainErrors.ErrInvalidPayload)
	}
	sub, err := Parse(account)
	if err != nil {
		return nil, fmt.Errorf("merchant account: %v: %w", err, domainErrors.ErrInvalidPayload)
	}
	if gui, _ := sub.Get(idGUI); gui != pixGUI {
		return nil, fmt.Errorf("unexpected GUI %q: %w", gui, domainErrors.ErrInvalidPayload)
	}
	d.KeyValue, _ = sub.Get(idPixKey)

	if extra, ok := fields.Get(idAdditionalData); ok {
		sub, err := Parse(extra)
		if err != nil {
			return nil, fmt.Errorf("additional data: %v: %w", err, domainErrors.ErrInvalidPayload)
		}
		d.Description, _ = sub.Get(idReference)
	}

	return d, nil
}
