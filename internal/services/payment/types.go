package payment

import "pixfacil/internal/domain/pix"

// CodeRequest asks for a new payment code. An empty KeyID uses the
// primary key.
type CodeRequest struct {
	KeyID       string `json:"pixKeyId"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Code is a generated payment code with its bookkeeping transaction.
type Code struct {
	Record      pix.HistoryRecord `json:"record"`
	Transaction pix.Transaction   `json:"transaction"`
}
