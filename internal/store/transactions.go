package store

import (
	"slices"

	"pixfacil/internal/domain/pix"
)

// AddTransaction appends a transaction. A blank status means pending.
func (s *Store) AddTransaction(in pix.TransactionInput) pix.Transaction {
	tx := pix.Transaction{
		ID:          s.newID(),
		KeyID:       in.KeyID,
		CodeID:      in.CodeID,
		Amount:      in.Amount,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Status:      in.Status,
		CreatedAt:   s.now(),
	}
	if tx.Status == "" {
		tx.Status = pix.StatusPending
	}

	s.update(func(st *State) bool {
		st.Transactions = append(st.Transactions, tx)
		return true
	})
	return tx
}

// UpdateTransactionStatus changes the status of a transaction. Unknown
// statuses and cancelled transactions are left alone. A transaction that
// belongs to a generated code moves together with its history record:
// completed and pending set the received flag, and cancelling is refused
// because it needs a reason (see Cancel).
func (s *Store) UpdateTransactionStatus(id string, status pix.TransactionStatus) bool {
	if !status.Valid() {
		return false
	}
	return s.update(func(st *State) bool {
		i := slices.IndexFunc(st.Transactions, func(t pix.Transaction) bool { return t.ID == id })
		if i < 0 || st.Transactions[i].Status == pix.StatusCancelled {
			return false
		}

		tx := st.Transactions[i]
		if r := linkedRecord(st.History, tx); r >= 0 {
			if status == pix.StatusCancelled || st.History[r].IsCancelled {
				return false
			}
			st.History[r].IsReceived = status == pix.StatusCompleted
			setLinkedStatus(st.Transactions, tx.CodeID, status)
			return true
		}

		st.Transactions[i].Status = status
		return true
	})
}

// LinkedRecord returns the history record a transaction was generated for.
func (s *Store) LinkedRecord(tx pix.Transaction) (pix.HistoryRecord, bool) {
	history := s.state.Load().History
	if i := linkedRecord(history, tx); i >= 0 {
		return history[i], true
	}
	return pix.HistoryRecord{}, false
}

func linkedRecord(history []pix.HistoryRecord, tx pix.Transaction) int {
	if tx.CodeID == "" {
		return -1
	}
	return indexRecord(history, tx.CodeID)
}

func (s *Store) GetTransaction(id string) (pix.Transaction, bool) {
	for _, t := range s.state.Load().Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return pix.Transaction{}, false
}

func (s *Store) Transactions() []pix.Transaction {
	return slices.Clone(s.state.Load().Transactions)
}

func (s *Store) TransactionsByKey(keyID string) []pix.Transaction {
	return s.filterTransactions(func(t pix.Transaction) bool { return t.KeyID == keyID })
}

// PendingTransactions lists what still has to be synced.
func (s *Store) PendingTransactions() []pix.Transaction {
	return s.filterTransactions(func(t pix.Transaction) bool { return t.Status == pix.StatusPending })
}

func (s *Store) filterTransactions(keep func(pix.Transaction) bool) []pix.Transaction {
	out := []pix.Transaction{}
	for _, t := range s.state.Load().Transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
