package store

import (
	"slices"

	"pixfacil/internal/domain/pix"
)

// AddKey assigns an id and creation time and appends the key. A primary
// key takes the flag away from every existing key.
func (s *Store) AddKey(in pix.KeyInput) pix.Key {
	key := pix.Key{
		ID:        s.newID(),
		Type:      in.Type,
		Value:     in.Value,
		Name:      in.Name,
		IsPrimary: in.IsPrimary,
		CreatedAt: s.now(),
	}

	s.update(func(st *State) bool {
		if key.IsPrimary {
			clearPrimary(st.Keys)
		}
		st.Keys = append(st.Keys, key)
		return true
	})
	return key
}

// UpdateKey merges the non-nil fields of upd into the key.
func (s *Store) UpdateKey(id string, upd pix.KeyUpdate) bool {
	return s.update(func(st *State) bool {
		i := indexKey(st.Keys, id)
		if i < 0 {
			return false
		}

		k := &st.Keys[i]
		if upd.Type != nil {
			k.Type = *upd.Type
		}
		if upd.Value != nil {
			k.Value = *upd.Value
		}
		if upd.Name != nil {
			k.Name = *upd.Name
		}
		if upd.IsPrimary != nil {
			if *upd.IsPrimary {
				clearPrimary(st.Keys)
			}
			k.IsPrimary = *upd.IsPrimary
		}
		return true
	})
}

// DeleteKey removes the key together with every history record and
// transaction it owns, in one transition.
func (s *Store) DeleteKey(id string) bool {
	return s.update(func(st *State) bool {
		i := indexKey(st.Keys, id)
		if i < 0 {
			return false
		}
		st.Keys = slices.Delete(st.Keys, i, i+1)
		st.History = slices.DeleteFunc(st.History, func(r pix.HistoryRecord) bool {
			return r.KeyID == id
		})
		st.Transactions = slices.DeleteFunc(st.Transactions, func(t pix.Transaction) bool {
			return t.KeyID == id
		})
		return true
	})
}

// SetPrimary flags id as the primary key and clears every other key.
func (s *Store) SetPrimary(id string) bool {
	return s.update(func(st *State) bool {
		if indexKey(st.Keys, id) < 0 {
			return false
		}
		for i := range st.Keys {
			st.Keys[i].IsPrimary = st.Keys[i].ID == id
		}
		return true
	})
}

func (s *Store) GetKey(id string) (pix.Key, bool) {
	keys := s.state.Load().Keys
	if i := indexKey(keys, id); i >= 0 {
		return keys[i], true
	}
	return pix.Key{}, false
}

func (s *Store) PrimaryKey() (pix.Key, bool) {
	for _, k := range s.state.Load().Keys {
		if k.IsPrimary {
			return k, true
		}
	}
	return pix.Key{}, false
}

func (s *Store) Keys() []pix.Key {
	return slices.Clone(s.state.Load().Keys)
}

// SearchKeys matches query case-insensitively against name and value.
func (s *Store) SearchKeys(query string) []pix.Key {
	keys := s.state.Load().Keys
	if query == "" {
		return slices.Clone(keys)
	}
	out := []pix.Key{}
	for _, k := range keys {
		if containsFold(k.Name, query) || containsFold(k.Value, query) {
			out = append(out, k)
		}
	}
	return out
}

// FilterKeysByType keeps keys of type t. "" and "all" keep everything.
func (s *Store) FilterKeysByType(t string) []pix.Key {
	keys := s.state.Load().Keys
	if t == "" || t == "all" {
		return slices.Clone(keys)
	}
	out := []pix.Key{}
	for _, k := range keys {
		if string(k.Type) == t {
			out = append(out, k)
		}
	}
	return out
}

func indexKey(keys []pix.Key, id string) int {
	return slices.IndexFunc(keys, func(k pix.Key) bool { return k.ID == id })
}

func clearPrimary(keys []pix.Key) {
	for i := range keys {
		keys[i].IsPrimary = false
	}
}
