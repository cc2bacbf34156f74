package store

import (
	"slices"

	"pixfacil/internal/domain/pix"
)

// State is the persisted content of the store.
type State struct {
	Keys         []pix.Key           `json:"pixKeys"`
	Transactions []pix.Transaction   `json:"transactions"`
	History      []pix.HistoryRecord `json:"qrHistory"`
	IsOffline    bool                `json:"isOffline"`
}

func emptyState() *State {
	return &State{
		Keys:         []pix.Key{},
		Transactions: []pix.Transaction{},
		History:      []pix.HistoryRecord{},
	}
}

func (st State) clone() State {
	return State{
		Keys:         slices.Clone(st.Keys),
		Transactions: slices.Clone(st.Transactions),
		History:      slices.Clone(st.History),
		IsOffline:    st.IsOffline,
	}
}

// normalize replaces nil collections so the state always encodes as
// arrays and keeps the cancellation invariant on loaded records.
func (st *State) normalize() {
	if st.Keys == nil {
		st.Keys = []pix.Key{}
	}
	if st.Transactions == nil {
		st.Transactions = []pix.Transaction{}
	}
	if st.History == nil {
		st.History = []pix.HistoryRecord{}
	}
	for i := range st.History {
		if st.History[i].IsCancelled {
			st.History[i].IsReceived = false
		} else {
			st.History[i].CancellationReason = ""
		}
	}
}

// SetOfflineStatus records the connectivity flag.
func (s *Store) SetOfflineStatus(offline bool) bool {
	return s.update(func(st *State) bool {
		if st.IsOffline == offline {
			return false
		}
		st.IsOffline = offline
		return true
	})
}

func (s *Store) Offline() bool {
	return s.state.Load().IsOffline
}

// ClearStore drops every collection and resets the offline flag.
func (s *Store) ClearStore() {
	s.update(func(st *State) bool {
		*st = *emptyState()
		return true
	})
}
