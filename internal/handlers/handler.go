// Package handlers exposes the key, code, history and transaction
// operations over HTTP.
package handlers

import (
	"context"

	"pixfacil/internal/domain/pix"
	"pixfacil/internal/services/payment"
	"pixfacil/internal/store"
)

// Store is the read side of the state store plus the connectivity and
// reset operations the API exposes directly.
type Store interface {
	Keys() []pix.Key
	GetKey(id string) (pix.Key, bool)
	PrimaryKey() (pix.Key, bool)
	SearchKeys(query string) []pix.Key
	FilterKeysByType(t string) []pix.Key

	GetHistoryRecord(id string) (pix.HistoryRecord, bool)
	FilterHistory(f store.HistoryFilter) []pix.HistoryRecord

	Transactions() []pix.Transaction
	TransactionsByKey(keyID string) []pix.Transaction
	PendingTransactions() []pix.Transaction

	Stats() store.Stats
	Snapshot() store.State
	SetOfflineStatus(offline bool) bool
	Offline() bool
	ClearStore()
}

// Backuper writes a full copy of the state somewhere safe.
type Backuper interface {
	Backup(ctx context.Context, st store.State) error
}

// PendingSyncer pushes pending transactions to the remote.
type PendingSyncer interface {
	SyncPending(ctx context.Context) error
}

// Checker reports the health of one dependency.
type Checker func(ctx context.Context) error

// Deps wires a Handler.
type Deps struct {
	Payments payment.Service
	Store    Store
	Backup   Backuper
	Sync     PendingSyncer
	QRSize   int
	Checks   map[string]Checker
	Version  string
}

type Handler struct {
	payments payment.Service
	store    Store
	backup   Backuper
	sync     PendingSyncer
	qrSize   int
	checks   map[string]Checker
	version  string
}

func New(d Deps) *Handler {
	if d.Payments == nil {
		panic("payment service is required")
	}
	if d.Store == nil {
		panic("store is required")
	}
	if d.Version == "" {
		d.Version = "1.0.0"
	}
	return &Handler{
		payments: d.Payments,
		store:    d.Store,
		backup:   d.Backup,
		sync:     d.Sync,
		qrSize:   d.QRSize,
		checks:   d.Checks,
		version:  d.Version,
	}
}
