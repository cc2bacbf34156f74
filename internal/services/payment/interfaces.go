package payment

import (
	"pixfacil/internal/domain/pix"
	"pixfacil/internal/services/brcode"
)

// Service defines the key administration and code generation flow
type Service interface {
	// Keys
	AddKey(in pix.KeyInput) (pix.Key, error)
	UpdateKey(id string, upd pix.KeyUpdate) (pix.Key, error)
	DeleteKey(id string) error
	SetPrimary(id string) (pix.Key, error)

	// Generated codes
	GenerateCode(req CodeRequest) (*Code, error)
	MarkReceived(id string, received bool) (pix.HistoryRecord, error)
	Cancel(id, reason string) (pix.HistoryRecord, error)
	DeleteCode(id string) error

	// Transactions
	UpdateTransactionStatus(id string, status pix.TransactionStatus) (pix.Transaction, error)
}

// Store is the part of the state store the service drives.
type Store interface {
	AddKey(in pix.KeyInput) pix.Key
	UpdateKey(id string, upd pix.KeyUpdate) bool
	DeleteKey(id string) bool
	SetPrimary(id string) bool
	GetKey(id string) (pix.Key, bool)
	PrimaryKey() (pix.Key, bool)
	Keys() []pix.Key

	AddGeneratedCode(in pix.HistoryInput) (pix.HistoryRecord, pix.Transaction)
	GetHistoryRecord(id string) (pix.HistoryRecord, bool)
	SetReceived(id string, received bool) bool
	Cancel(id, reason string) bool
	DeleteHistoryRecord(id string) bool

	GetTransaction(id string) (pix.Transaction, bool)
	UpdateTransactionStatus(id string, status pix.TransactionStatus) bool
	LinkedRecord(tx pix.Transaction) (pix.HistoryRecord, bool)
}

// Encoder turns a key and an amount into a payment code.
type Encoder interface {
	Encode(key pix.Key, amount, description string) brcode.Payload
}
