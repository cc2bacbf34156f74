package pix

import (
	"fmt"
	"time"
)

type KeyType string
type TransactionStatus string
type HistoryStatus string

const (
	// Key types
	KeyTypeCPF    KeyType = "cpf"  // 11-digit individual tax id
	KeyTypeCNPJ   KeyType = "cnpj" // 14-digit entity tax id
	KeyTypeEmail  KeyType = "email"
	KeyTypePhone  KeyType = "phone"
	KeyTypeRandom KeyType = "random" // UUID issued by the bank
	KeyTypeManual KeyType = "manual" // free text, never validated

	// Transaction statuses
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"

	// History filters
	HistoryAll       HistoryStatus = "all"
	HistoryPending   HistoryStatus = "pending"
	HistoryReceived  HistoryStatus = "received"
	HistoryCancelled HistoryStatus = "cancelled"
)

// KeyTypes lists every key type in display order.
var KeyTypes = []KeyType{
	KeyTypeCPF,
	KeyTypeCNPJ,
	KeyTypeEmail,
	KeyTypePhone,
	KeyTypeRandom,
	KeyTypeManual,
}

func (t KeyType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known key types.
func (t KeyType) Valid() bool {
	switch t {
	case KeyTypeCPF, KeyTypeCNPJ, KeyTypeEmail, KeyTypePhone, KeyTypeRandom, KeyTypeManual:
		return true
	}
	return false
}

func (t KeyType) Label() string {
	switch t {
	case KeyTypeCPF:
		return "CPF"
	case KeyTypeCNPJ:
		return "CNPJ"
	case KeyTypeEmail:
		return "E-mail"
	case KeyTypePhone:
		return "Telefone"
	case KeyTypeRandom:
		return "Chave Aleatória"
	case KeyTypeManual:
		return "Chave Manual"
	}
	return "Chave Pix"
}

func (t KeyType) Placeholder() string {
	switch t {
	case KeyTypeCPF:
		return "000.000.000-00"
	case KeyTypeCNPJ:
		return "00.000.000/0000-00"
	case KeyTypeEmail:
		return "email@exemplo.com"
	case KeyTypePhone:
		return "(11) 99999-9999"
	case KeyTypeRandom:
		return "12345678-1234-1234-1234-123456789012"
	case KeyTypeManual:
		return "Digite sua chave"
	}
	return ""
}

// ParseKeyType converts user input into a KeyType.
func ParseKeyType(s string) (KeyType, error) {
	t := KeyType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid key type: %s", s)
	}
	return t, nil
}

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s TransactionStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusCompleted:
		return "Concluída"
	case StatusCancelled:
		return "Cancelada"
	}
	return string(s)
}

// Key is a merchant receiving identifier.
type Key struct {
	ID        string    `json:"id"`
	Type      KeyType   `json:"type"`
	Value     string    `json:"value"`
	Name      string    `json:"name"`
	IsPrimary bool      `json:"isPrimary"`
	CreatedAt time.Time `json:"createdAt"`
}

// KeyInput carries the caller-supplied fields of a new key.
type KeyInput struct {
	Type      KeyType `json:"type"`
	Value     string  `json:"value"`
	Name      string  `json:"name"`
	IsPrimary bool    `json:"isPrimary"`
}

// KeyUpdate is a partial update; nil fields are left untouched.
type KeyUpdate struct {
	Type      *KeyType `json:"type,omitempty"`
	Value     *string  `json:"value,omitempty"`
	Name      *string  `json:"name,omitempty"`
	IsPrimary *bool    `json:"isPrimary,omitempty"`
}

// HistoryRecord is one generated payment code. Key fields are a snapshot
// taken at generation time and are not refreshed when the key changes.
type HistoryRecord struct {
	ID                 string    `json:"id"`
	KeyID              string    `json:"pixKeyId"`
	KeyValue           string    `json:"pixKeyValue"`
	KeyName            string    `json:"pixKeyName"`
	Amount             string    `json:"amount"`
	Description        string    `json:"description"`
	ImageURL           string    `json:"qrCode"`
	Payload            string    `json:"pixCode"`
	CreatedAt          time.Time `json:"createdAt"`
	IsReceived         bool      `json:"isReceived"`
	IsCancelled        bool      `json:"isCancelled"`
	CancellationReason string    `json:"cancellationReason,omitempty"`
}

// Status derives the display status of the record.
func (r HistoryRecord) Status() HistoryStatus {
	switch {
	case r.IsCancelled:
		return HistoryCancelled
	case r.IsReceived:
		return HistoryReceived
	}
	return HistoryPending
}

type HistoryInput struct {
	KeyID       string `json:"pixKeyId"`
	KeyValue    string `json:"pixKeyValue"`
	KeyName     string `json:"pixKeyName"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	ImageURL    string `json:"qrCode"`
	Payload     string `json:"pixCode"`
	IsReceived  bool   `json:"isReceived"`
}

// Transaction is the bookkeeping twin of a generated code.
type Transaction struct {
	ID          string            `json:"id"`
	KeyID       string            `json:"pixKeyId"`
	CodeID      string            `json:"codeId,omitempty"`
	Amount      string            `json:"amount"`
	Description string            `json:"description"`
	ImageURL    string            `json:"qrCode"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type TransactionInput struct {
	KeyID       string            `json:"pixKeyId"`
	CodeID      string            `json:"codeId,omitempty"`
	Amount      string            `json:"amount"`
	Description string            `json:"description"`
	ImageURL    string            `json:"qrCode"`
	Status      TransactionStatus `json:"status"`
}
