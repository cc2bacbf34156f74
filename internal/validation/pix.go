package validation

import (
	"regexp"
	"strings"

	"pixfacil/internal/domain/pix"
)

var (
	nonDigitRegex   = regexp.MustCompile(`\D`)
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	loosePhoneRegex = regexp.MustCompile(`^\+?[1-9]\d{10,14}$`)
	randomKeyRegex  = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

// Digits strips everything but ASCII digits.
func Digits(value string) string {
	return nonDigitRegex.ReplaceAllString(value, "")
}

func allSame(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// IsValidCPF checks the 11-digit individual tax id and both check digits.
func IsValidCPF(value string) bool {
	cpf := Digits(value)
	if len(cpf) != 11 || allSame(cpf) {
		return false
	}

	check := func(n int) int {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(cpf[i]-'0') * (n + 1 - i)
		}
		r := (sum * 10) % 11
		if r == 10 || r == 11 {
			r = 0
		}
		return r
	}

	return check(9) == int(cpf[9]-'0') && check(10) == int(cpf[10]-'0')
}

// IsValidCNPJ checks the 14-digit entity tax id and both check digits.
func IsValidCNPJ(value string) bool {
	cnpj := Digits(value)
	if len(cnpj) != 14 || allSame(cnpj) {
		return false
	}

	check := func(n int) int {
		sum := 0
		pos := n - 7
		for i := 0; i < n; i++ {
			sum += int(cnpj[i]-'0') * pos
			pos--
			if pos < 2 {
				pos = 9
			}
		}
		if sum%11 < 2 {
			return 0
		}
		return 11 - sum%11
	}

	return check(12) == int(cnpj[12]-'0') && check(13) == int(cnpj[13]-'0')
}

func IsValidEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// IsValidPhone accepts national numbers: area code plus 8 or 9 digits.
func IsValidPhone(value string) bool {
	n := len(Digits(value))
	return n == 10 || n == 11
}

// IsValidPhoneLoose accepts numbers with an optional country code.
func IsValidPhoneLoose(value string) bool {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return loosePhoneRegex.MatchString(b.String())
}

func IsValidRandomKey(value string) bool {
	return randomKeyRegex.MatchString(value)
}

// ValidateKey checks value against the rules of its key type.
func ValidateKey(t pix.KeyType, value string) bool {
	switch t {
	case pix.KeyTypeCPF:
		return IsValidCPF(value)
	case pix.KeyTypeCNPJ:
		return IsValidCNPJ(value)
	case pix.KeyTypeEmail:
		return IsValidEmail(value)
	case pix.KeyTypePhone:
		return IsValidPhone(value)
	case pix.KeyTypeRandom:
		return IsValidRandomKey(value)
	case pix.KeyTypeManual:
		return strings.TrimSpace(value) != ""
	}
	return false
}
