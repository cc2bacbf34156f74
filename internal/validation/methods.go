package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"pixfacil/internal/domain/pix"
)

// Validator defines validation methods
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator. The first error for a field wins.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Error joins the collected errors in field order.
func (v *Validator) Error() string {
	fields := make([]string, 0, len(v.Errors))
	for f := range v.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v.Errors[f])
	}
	return strings.Join(parts, "; ")
}

// Required checks that a string is not blank
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// MaxLength checks if a string has at most n characters
func (v *Validator) MaxLength(field, value string, n int) {
	v.Check(utf8.RuneCountInString(value) <= n, field, fmt.Sprintf("must not be more than %d characters long", n))
}

// KeyValue checks a key value against its type.
func (v *Validator) KeyValue(field string, t pix.KeyType, value string) {
	if !t.Valid() {
		v.AddError("type", "must be one of cpf, cnpj, email, phone, random, manual")
		return
	}
	v.Check(ValidateKey(t, value), field, fmt.Sprintf("must be a valid %s", t.Label()))
}

// Amount parses value and checks it against the transfer limits. The
// parsed amount is returned so callers don't parse twice.
func (v *Validator) Amount(field, value string) decimal.Decimal {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		v.AddError(field, "must be a number")
		return decimal.Zero
	}

	min := decimal.RequireFromString(MinAmount)
	max := decimal.RequireFromString(MaxAmount)
	v.Check(amount.GreaterThanOrEqual(min) && amount.LessThanOrEqual(max), field,
		fmt.Sprintf("must be between %s and %s", min.StringFixed(2), max.StringFixed(2)))
	return amount
}

// Key validates a new key request.
func (v *Validator) Key(in pix.KeyInput) {
	v.Required("name", in.Name)
	v.MaxLength("name", in.Name, MaxKeyNameLength)
	v.Required("value", in.Value)
	v.Check(len(in.Value) <= MaxKeyValueLength, "value",
		fmt.Sprintf("must not be more than %d bytes long", MaxKeyValueLength))
	v.KeyValue("value", in.Type, in.Value)
}

// Payment validates a code generation request.
func (v *Validator) Payment(amount, description string) decimal.Decimal {
	v.Required("amount", amount)
	d := v.Amount("amount", amount)
	v.MaxLength("description", description, MaxDescriptionLength)
	return d
}
