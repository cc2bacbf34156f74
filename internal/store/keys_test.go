package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixfacil/internal/domain/pix"
)

func primaryCount(keys []pix.Key) int {
	n := 0
	for _, k := range keys {
		if k.IsPrimary {
			n++
		}
	}
	return n
}

func TestAddKey(t *testing.T) {
	s := newTestStore(t, nil)

	key := s.AddKey(pix.KeyInput{Type: pix.KeyTypeCPF, Value: "52998224725", Name: "Pessoal"})
	assert.Equal(t, "id-1", key.ID)
	assert.Equal(t, fixedNow, key.CreatedAt)
	assert.False(t, key.IsPrimary)

	got, ok := s.GetKey(key.ID)
	require.True(t, ok)
	assert.Equal(t, key, got)

	_, ok = s.PrimaryKey()
	assert.False(t, ok)
}

func TestPrimaryKeySwitch(t *testing.T) {
	s := newTestStore(t, nil)

	first := s.AddKey(pix.KeyInput{Type: pix.KeyTypeEmail, Value: "a@loja.com", Name: "A", IsPrimary: true})
	second := s.AddKey(pix.KeyInput{Type: pix.KeyTypeEmail, Value: "b@loja.com", Name: "B", IsPrimary: true})

	primary, ok := s.PrimaryKey()
	require.True(t, ok)
	assert.Equal(t, second.ID, primary.ID)
	assert.Equal(t, 1, primaryCount(s.Keys()))

	require.True(t, s.SetPrimary(first.ID))
	primary, ok = s.PrimaryKey()
	require.True(t, ok)
	assert.Equal(t, first.ID, primary.ID)

	got, _ := s.GetKey(second.ID)
	assert.False(t, got.IsPrimary)
	assert.Equal(t, 1, primaryCount(s.Keys()))
}

func TestSetPrimaryUnknownIsNoop(t *testing.T) {
	s := newTestStore(t, nil)
	key := s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "x", IsPrimary: true})

	assert.False(t, s.SetPrimary("missing"))
	primary, ok := s.PrimaryKey()
	require.True(t, ok)
	assert.Equal(t, key.ID, primary.ID)
}

func TestUpdateKey(t *testing.T) {
	s := newTestStore(t, nil)
	a := s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "a", Name: "A", IsPrimary: true})
	b := s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "b", Name: "B"})

	name := "Renamed"
	require.True(t, s.UpdateKey(b.ID, pix.KeyUpdate{Name: &name}))
	got, _ := s.GetKey(b.ID)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "b", got.Value)
	assert.Equal(t, b.CreatedAt, got.CreatedAt)

	primary := true
	require.True(t, s.UpdateKey(b.ID, pix.KeyUpdate{IsPrimary: &primary}))
	gotA, _ := s.GetKey(a.ID)
	assert.False(t, gotA.IsPrimary)
	assert.Equal(t, 1, primaryCount(s.Keys()))

	assert.False(t, s.UpdateKey("missing", pix.KeyUpdate{Name: &name}))
}

func TestDeleteKeyCascades(t *testing.T) {
	s := newTestStore(t, nil)
	keep := s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "keep"})
	drop := s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "drop"})

	s.AddGeneratedCode(pix.HistoryInput{KeyID: keep.ID, Amount: "1.00"})
	s.AddGeneratedCode(pix.HistoryInput{KeyID: drop.ID, Amount: "2.00"})
	s.AddTransaction(pix.TransactionInput{KeyID: drop.ID, Amount: "3.00"})

	require.True(t, s.DeleteKey(drop.ID))

	_, ok := s.GetKey(drop.ID)
	assert.False(t, ok)
	for _, r := range s.History() {
		assert.NotEqual(t, drop.ID, r.KeyID)
	}
	for _, tx := range s.Transactions() {
		assert.NotEqual(t, drop.ID, tx.KeyID)
	}
	assert.Len(t, s.History(), 1)
	assert.Len(t, s.Transactions(), 1)

	assert.False(t, s.DeleteKey(drop.ID))
}

func TestSearchAndFilterKeys(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddKey(pix.KeyInput{Type: pix.KeyTypeEmail, Value: "vendas@loja.com", Name: "Loja Centro"})
	s.AddKey(pix.KeyInput{Type: pix.KeyTypeCPF, Value: "52998224725", Name: "Pessoal"})
	s.AddKey(pix.KeyInput{Type: pix.KeyTypePhone, Value: "+5511999998888", Name: "Celular"})

	assert.Len(t, s.SearchKeys("LOJA"), 1)
	assert.Len(t, s.SearchKeys("5299"), 1)
	assert.Len(t, s.SearchKeys(""), 3)
	assert.Empty(t, s.SearchKeys("inexistente"))

	assert.Len(t, s.FilterKeysByType("cpf"), 1)
	assert.Len(t, s.FilterKeysByType("all"), 3)
	assert.Len(t, s.FilterKeysByType(""), 3)
	assert.Empty(t, s.FilterKeysByType("random"))
}
