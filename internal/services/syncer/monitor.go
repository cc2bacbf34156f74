package syncer

import (
	"context"
	"log"
	"time"

	"pixfacil/internal/domain/pix"
)

// State is the part of the store the monitor updates.
type State interface {
	SetOfflineStatus(offline bool) bool
	PendingTransactions() []pix.Transaction
}

// Remote is what the monitor pings and syncs to.
type Remote interface {
	Ping(ctx context.Context) error
	SyncTransactions(ctx context.Context, txs []pix.Transaction) error
}

// MonitorConfig controls probing and sync retries
type MonitorConfig struct {
	Interval     time.Duration
	RetryCount   int
	RetryBackoff time.Duration
}

// Monitor tracks connectivity and flushes pending transactions when the
// remote comes back.
type Monitor struct {
	state  State
	remote Remote
	cfg    MonitorConfig
}

func NewMonitor(state State, remote Remote, cfg MonitorConfig) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.RetryCount <= 0 {
		cfg.RetryCount = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}
	return &Monitor{state: state, remote: remote, cfg: cfg}
}

// Run checks connectivity until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check pings the remote once. Going back online triggers a sync of every pending
// transaction.
func (m *Monitor) Check(ctx context.Context) {
	err := m.remote.Ping(ctx)
	offline := err != nil
	if !m.state.SetOfflineStatus(offline) {
		return
	}

	if offline {
		log.Printf("📴 remote unreachable, working offline: %v", err)
		return
	}

	log.Println("📶 back online")
	if err := m.SyncPending(ctx); err != nil {
		log.Printf("⚠️ %v", err)
	}
}

// SyncPending pushes pending transactions with retries. Delivery is at
// least once: a synced transaction stays pending locally until its code is
// marked received or cancelled, so the remote must treat repeated ids as
// upserts.
func (m *Monitor) SyncPending(ctx context.Context) error {
	pending := m.state.PendingTransactions()
	if len(pending) == 0 {
		return nil
	}
	return Retry(ctx, m.cfg.RetryCount, m.cfg.RetryBackoff, func(ctx context.Context) error {
		return m.remote.SyncTransactions(ctx, pending)
	})
}
