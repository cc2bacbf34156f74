package errors

var (
	ErrKeyNotFound = &DomainError{
		Code:    "KEY_NOT_FOUND",
		Message: "pix key not found",
	}
	ErrNoPrimaryKey = &DomainError{
		Code:    "NO_PRIMARY_KEY",
		Message: "no primary pix key registered",
	}
	ErrInvalidKeyType = &DomainError{
		Code:    "INVALID_KEY_TYPE",
		Message: "invalid pix key type",
	}
	ErrInvalidKeyValue = &DomainError{
		Code:    "INVALID_KEY_VALUE",
		Message: "pix key value does not match its type",
	}
	ErrKeyLimitReached = &DomainError{
		Code:    "KEY_LIMIT_REACHED",
		Message: "maximum number of pix keys reached",
	}
)
