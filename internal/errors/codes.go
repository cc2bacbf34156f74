package errors

var (
	ErrCodeNotFound = &DomainError{
		Code:    "CODE_NOT_FOUND",
		Message: "generated code not found",
	}
	ErrCodeCancelled = &DomainError{
		Code:    "CODE_CANCELLED",
		Message: "generated code is cancelled",
	}
	ErrEmptyReason = &DomainError{
		Code:    "EMPTY_REASON",
		Message: "cancellation reason is required",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
	ErrDescriptionTooLong = &DomainError{
		Code:    "DESCRIPTION_TOO_LONG",
		Message: "description is too long",
	}
	ErrInvalidPayload = &DomainError{
		Code:    "INVALID_PAYLOAD",
		Message: "invalid payment code payload",
	}
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found",
	}
	ErrInvalidStatus = &DomainError{
		Code:    "INVALID_STATUS",
		Message: "invalid transaction status",
	}
)

var ErrTransactionClosed = &DomainError{
	Code:    "TRANSACTION_CLOSED",
	Message: "cancelled transactions cannot change status",
}

var ErrCancelRequiresReason = &DomainError{
	Code:    "CANCEL_REQUIRES_REASON",
	Message: "cancel the generated code with a reason instead",
}
