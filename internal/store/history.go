package store

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pixfacil/internal/domain/pix"
)

// AddHistoryRecord assigns an id and creation time and prepends the
// record; history is kept most recent first.
func (s *Store) AddHistoryRecord(in pix.HistoryInput) pix.HistoryRecord {
	rec := s.newRecord(in)
	s.update(func(st *State) bool {
		st.History = slices.Insert(st.History, 0, rec)
		return true
	})
	return rec
}

// AddGeneratedCode records a code and its pending transaction in one
// transition. The transaction is linked to the record through CodeID.
func (s *Store) AddGeneratedCode(in pix.HistoryInput) (pix.HistoryRecord, pix.Transaction) {
	rec := s.newRecord(in)
	tx := pix.Transaction{
		ID:          s.newID(),
		KeyID:       rec.KeyID,
		CodeID:      rec.ID,
		Amount:      rec.Amount,
		Description: rec.Description,
		ImageURL:    rec.ImageURL,
		Status:      pix.StatusPending,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.IsReceived {
		tx.Status = pix.StatusCompleted
	}

	s.update(func(st *State) bool {
		st.History = slices.Insert(st.History, 0, rec)
		st.Transactions = append(st.Transactions, tx)
		return true
	})
	return rec, tx
}

func (s *Store) newRecord(in pix.HistoryInput) pix.HistoryRecord {
	return pix.HistoryRecord{
		ID:          s.newID(),
		KeyID:       in.KeyID,
		KeyValue:    in.KeyValue,
		KeyName:     in.KeyName,
		Amount:      in.Amount,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Payload:     in.Payload,
		CreatedAt:   s.now(),
		IsReceived:  in.IsReceived,
		IsCancelled: false,
	}
}

// SetReceived toggles the received flag. Cancelled records are left alone.
// Transactions linked to the record follow it.
func (s *Store) SetReceived(id string, received bool) bool {
	return s.update(func(st *State) bool {
		i := indexRecord(st.History, id)
		if i < 0 || st.History[i].IsCancelled {
			return false
		}
		st.History[i].IsReceived = received

		status := pix.StatusPending
		if received {
			status = pix.StatusCompleted
		}
		setLinkedStatus(st.Transactions, id, status)
		return true
	})
}

// Cancel marks the record cancelled with reason. It is terminal: a blank
// reason, an unknown id or an already cancelled record change nothing.
func (s *Store) Cancel(id, reason string) bool {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return false
	}
	return s.update(func(st *State) bool {
		i := indexRecord(st.History, id)
		if i < 0 || st.History[i].IsCancelled {
			return false
		}
		r := &st.History[i]
		r.IsCancelled = true
		r.IsReceived = false
		r.CancellationReason = reason
		setLinkedStatus(st.Transactions, id, pix.StatusCancelled)
		return true
	})
}

// DeleteHistoryRecord removes the record whatever its status.
func (s *Store) DeleteHistoryRecord(id string) bool {
	return s.update(func(st *State) bool {
		i := indexRecord(st.History, id)
		if i < 0 {
			return false
		}
		st.History = slices.Delete(st.History, i, i+1)
		return true
	})
}

func (s *Store) GetHistoryRecord(id string) (pix.HistoryRecord, bool) {
	history := s.state.Load().History
	if i := indexRecord(history, id); i >= 0 {
		return history[i], true
	}
	return pix.HistoryRecord{}, false
}

// History returns every record, most recent first.
func (s *Store) History() []pix.HistoryRecord {
	return slices.Clone(s.state.Load().History)
}

// SearchHistory matches query case-insensitively against key name,
// description and amount.
func (s *Store) SearchHistory(query string) []pix.HistoryRecord {
	history := s.state.Load().History
	if query == "" {
		return slices.Clone(history)
	}
	out := []pix.HistoryRecord{}
	for _, r := range history {
		if containsFold(r.KeyName, query) || containsFold(r.Description, query) || containsFold(r.Amount, query) {
			out = append(out, r)
		}
	}
	return out
}

// HistoryFilter narrows the history list. Zero fields match everything.
type HistoryFilter struct {
	Query  string
	Day    *time.Time
	Status pix.HistoryStatus
}

// FilterHistory applies query, calendar day and status together. The
// query also matches the key value.
func (s *Store) FilterHistory(f HistoryFilter) []pix.HistoryRecord {
	out := []pix.HistoryRecord{}
	for _, r := range s.state.Load().History {
		if f.Query != "" && !containsFold(r.KeyName, f.Query) && !containsFold(r.Description, f.Query) &&
			!containsFold(r.Amount, f.Query) && !containsFold(r.KeyValue, f.Query) {
			continue
		}
		if f.Day != nil && !sameDay(r.CreatedAt, *f.Day) {
			continue
		}
		if f.Status != "" && f.Status != pix.HistoryAll && r.Status() != f.Status {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Stats summarizes the collections for the dashboard.
type Stats struct {
	Keys          int    `json:"keys"`
	Codes         int    `json:"codes"`
	Pending       int    `json:"pending"`
	Received      int    `json:"received"`
	Cancelled     int    `json:"cancelled"`
	ReceivedTotal string `json:"receivedTotal"`
}

func (s *Store) Stats() Stats {
	st := s.state.Load()
	stats := Stats{Keys: len(st.Keys), Codes: len(st.History)}

	total := decimal.Zero
	for _, r := range st.History {
		switch r.Status() {
		case pix.HistoryCancelled:
			stats.Cancelled++
		case pix.HistoryReceived:
			stats.Received++
			if amount, err := decimal.NewFromString(r.Amount); err == nil {
				total = total.Add(amount)
			}
		default:
			stats.Pending++
		}
	}
	stats.ReceivedTotal = total.StringFixed(2)
	return stats
}

func indexRecord(history []pix.HistoryRecord, id string) int {
	return slices.IndexFunc(history, func(r pix.HistoryRecord) bool { return r.ID == id })
}

func setLinkedStatus(txs []pix.Transaction, codeID string, status pix.TransactionStatus) {
	for i := range txs {
		if txs[i].CodeID == codeID && txs[i].Status != pix.StatusCancelled {
			txs[i].Status = status
		}
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
