package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"pixfacil/internal/domain/pix"
)

var (
	cpfFormat     = regexp.MustCompile(`^(\d{3})(\d{3})(\d{3})(\d{2})$`)
	cnpjFormat    = regexp.MustCompile(`^(\d{2})(\d{3})(\d{3})(\d{4})(\d{2})$`)
	landlineFmt   = regexp.MustCompile(`^(\d{2})(\d{4})(\d{4})$`)
	mobileFmt     = regexp.MustCompile(`^(\d{2})(\d{5})(\d{4})$`)
	currencyChars = regexp.MustCompile(`[^\d,]`)
)

// FormatCPF renders 000.000.000-00. Input that is not 11 digits comes back
// as bare digits.
func FormatCPF(value string) string {
	digits := Digits(value)
	return cpfFormat.ReplaceAllString(digits, "$1.$2.$3-$4")
}

// FormatCNPJ renders 00.000.000/0000-00.
func FormatCNPJ(value string) string {
	digits := Digits(value)
	return cnpjFormat.ReplaceAllString(digits, "$1.$2.$3/$4-$5")
}

// FormatPhone renders (11) 9999-9999 or (11) 99999-9999.
func FormatPhone(value string) string {
	digits := Digits(value)
	if len(digits) <= 10 {
		return landlineFmt.ReplaceAllString(digits, "($1) $2-$3")
	}
	return mobileFmt.ReplaceAllString(digits, "($1) $2-$3")
}

// MaskKey formats a key value for display.
func MaskKey(t pix.KeyType, value string) string {
	switch t {
	case pix.KeyTypeCPF:
		return FormatCPF(value)
	case pix.KeyTypeCNPJ:
		return FormatCNPJ(value)
	case pix.KeyTypePhone:
		return FormatPhone(value)
	case pix.KeyTypeEmail:
		return strings.ToLower(value)
	case pix.KeyTypeRandom, pix.KeyTypeManual:
		return value
	}
	return value
}

// NormalizeKeyValue returns the raw form a key is stored and encoded in:
// bare digits for tax ids and phones, lower case for emails and random keys.
func NormalizeKeyValue(t pix.KeyType, value string) string {
	value = strings.TrimSpace(value)
	switch t {
	case pix.KeyTypeCPF, pix.KeyTypeCNPJ, pix.KeyTypePhone:
		return Digits(value)
	case pix.KeyTypeEmail, pix.KeyTypeRandom:
		return strings.ToLower(value)
	}
	return value
}

// FormatCurrency treats the digits of value as cents, the way the amount
// input mask does, and renders them as BRL.
func FormatCurrency(value string) string {
	digits := Digits(value)
	if digits == "" {
		digits = "0"
	}
	cents, err := decimal.NewFromString(digits)
	if err != nil {
		cents = decimal.Zero
	}
	return FormatAmount(cents.Shift(-2))
}

// FormatAmount renders R$ 1.234,56.
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + grouped.String() + "," + frac
}

// ParseCurrency reads a BRL-formatted amount back. Unparseable input is zero.
func ParseCurrency(value string) decimal.Decimal {
	cleaned := currencyChars.ReplaceAllString(value, "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NormalizeAmount parses a plain decimal string and renders it with two
// fraction digits.
func NormalizeAmount(value string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	return d.StringFixed(2), nil
}
