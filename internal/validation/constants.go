package validation

const (
	// Amount limits, in reais
	MinAmount = "0.01"
	MaxAmount = "50000"

	// String lengths
	MaxDescriptionLength = 140
	MaxKeyNameLength     = 100
	MaxReasonLength      = 500

	// Bytes left for the key inside the merchant account field
	MaxKeyValueLength = 77

	MaxKeysPerUser = 20
)
