package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pixfacil/internal/domain/pix"
	"pixfacil/internal/repositories"
)

type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) Load(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockPersister) Save(ctx context.Context, name string, data []byte) error {
	args := m.Called(ctx, name, data)
	return args.Error(0)
}

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T, p Persister, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
	}, opts...)
	s := New(p, opts...)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func closeStore(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Close(ctx))
}

func TestStore_PersistsAndReloads(t *testing.T) {
	blobs := repositories.NewMemoryStore()
	s := newTestStore(t, blobs)

	key := s.AddKey(pix.KeyInput{Type: pix.KeyTypeEmail, Value: "user@example.com", Name: "Loja", IsPrimary: true})
	rec, tx := s.AddGeneratedCode(pix.HistoryInput{KeyID: key.ID, KeyValue: key.Value, KeyName: key.Name, Amount: "25.50"})
	require.True(t, s.SetReceived(rec.ID, true))
	require.True(t, s.SetOfflineStatus(true))
	closeStore(t, s)

	data, err := blobs.Load(context.Background(), DefaultName)
	require.NoError(t, err)

	var env struct {
		State   map[string]json.RawMessage `json:"state"`
		Version int                        `json:"version"`
	}
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, SchemaVersion, env.Version)
	assert.Contains(t, env.State, "pixKeys")
	assert.Contains(t, env.State, "transactions")
	assert.Contains(t, env.State, "qrHistory")
	assert.Contains(t, env.State, "isOffline")

	reloaded := newTestStore(t, blobs)
	require.NoError(t, reloaded.Load(context.Background()))

	got, ok := reloaded.GetKey(key.ID)
	require.True(t, ok)
	assert.Equal(t, "user@example.com", got.Value)
	assert.True(t, got.IsPrimary)

	gotRec, ok := reloaded.GetHistoryRecord(rec.ID)
	require.True(t, ok)
	assert.True(t, gotRec.IsReceived)

	gotTx, ok := reloaded.GetTransaction(tx.ID)
	require.True(t, ok)
	assert.Equal(t, pix.StatusCompleted, gotTx.Status)
	assert.True(t, reloaded.Offline())
}

func TestStore_LoadMissingBlobIsEmpty(t *testing.T) {
	p := new(MockPersister)
	p.On("Load", mock.Anything, DefaultName).Return(nil, repositories.ErrBlobNotFound)

	s := newTestStore(t, p)
	require.NoError(t, s.Load(context.Background()))

	snap := s.Snapshot()
	assert.Empty(t, snap.Keys)
	assert.Empty(t, snap.History)
	assert.Empty(t, snap.Transactions)
	assert.False(t, snap.IsOffline)
	p.AssertExpectations(t)
}

func TestStore_LoadErrors(t *testing.T) {
	t.Run("persister failure", func(t *testing.T) {
		p := new(MockPersister)
		p.On("Load", mock.Anything, DefaultName).Return(nil, errors.New("connection refused"))

		s := newTestStore(t, p)
		err := s.Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("corrupt blob", func(t *testing.T) {
		p := new(MockPersister)
		p.On("Load", mock.Anything, DefaultName).Return([]byte("{not json"), nil)

		s := newTestStore(t, p)
		assert.Error(t, s.Load(context.Background()))
	})
}

func TestStore_VersionMismatch(t *testing.T) {
	old := []byte(`{"state":{"pixKeys":[{"id":"k1","type":"email","value":"a@b.co","name":"A","isPrimary":true}]},"version":0}`)

	t.Run("resets without migrator", func(t *testing.T) {
		blobs := repositories.NewMemoryStore()
		require.NoError(t, blobs.Save(context.Background(), DefaultName, old))

		s := newTestStore(t, blobs)
		require.NoError(t, s.Load(context.Background()))
		assert.Empty(t, s.Keys())
	})

	t.Run("migrator upgrades and the result is saved", func(t *testing.T) {
		blobs := repositories.NewMemoryStore()
		require.NoError(t, blobs.Save(context.Background(), DefaultName, old))

		var seen int
		s := newTestStore(t, blobs, WithMigrator(func(version int, raw json.RawMessage) (*State, error) {
			seen = version
			st := &State{}
			return st, json.Unmarshal(raw, st)
		}))
		require.NoError(t, s.Load(context.Background()))
		assert.Equal(t, 0, seen)
		require.Len(t, s.Keys(), 1)
		assert.Equal(t, "k1", s.Keys()[0].ID)
		closeStore(t, s)

		data, err := blobs.Load(context.Background(), DefaultName)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"version":1`)
	})

	t.Run("failed migration resets", func(t *testing.T) {
		blobs := repositories.NewMemoryStore()
		require.NoError(t, blobs.Save(context.Background(), DefaultName, old))

		s := newTestStore(t, blobs, WithMigrator(func(int, json.RawMessage) (*State, error) {
			return nil, errors.New("unsupported")
		}))
		require.NoError(t, s.Load(context.Background()))
		assert.Empty(t, s.Keys())
	})
}

func TestStore_SaveFailureKeepsMemoryState(t *testing.T) {
	p := new(MockPersister)
	p.On("Save", mock.Anything, DefaultName, mock.Anything).Return(errors.New("disk full"))

	var mu sync.Mutex
	var failures []error
	s := newTestStore(t, p, WithPersistErrorHandler(func(err error) {
		mu.Lock()
		failures = append(failures, err)
		mu.Unlock()
	}))

	key := s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "chave", Name: "Manual"})
	closeStore(t, s)

	_, ok := s.GetKey(key.ID)
	assert.True(t, ok)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, failures)
	assert.Contains(t, failures[0].Error(), "disk full")
}

func TestStore_WithName(t *testing.T) {
	blobs := repositories.NewMemoryStore()
	s := newTestStore(t, blobs, WithName("tenant-a"))
	s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "x"})
	closeStore(t, s)

	_, err := blobs.Load(context.Background(), "tenant-a")
	assert.NoError(t, err)
	_, err = blobs.Load(context.Background(), DefaultName)
	assert.ErrorIs(t, err, repositories.ErrBlobNotFound)
}

func TestStore_MutationsAfterCloseStayInMemory(t *testing.T) {
	blobs := repositories.NewMemoryStore()
	s := newTestStore(t, blobs)
	closeStore(t, s)

	key := s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "x"})
	_, ok := s.GetKey(key.ID)
	assert.True(t, ok)
	assert.Equal(t, 0, blobs.Saves())
	assert.NoError(t, s.Close(context.Background()))
}

func TestStore_InMemoryOnly(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Load(context.Background()))
	s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "x"})
	assert.Len(t, s.Keys(), 1)
	assert.NoError(t, s.Close(context.Background()))
}

func TestStore_Subscribe(t *testing.T) {
	s := newTestStore(t, nil)

	var calls []int
	unsubscribe := s.Subscribe(func(st State) {
		calls = append(calls, len(st.Keys))
	})

	key := s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "x"})
	s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "y"})
	assert.False(t, s.SetPrimary("missing"), "no-op does not notify")
	assert.Equal(t, []int{1, 2}, calls)

	unsubscribe()
	s.DeleteKey(key.ID)
	assert.Equal(t, []int{1, 2}, calls)
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	s := newTestStore(t, nil)
	s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "x", Name: "original"})

	snap := s.Snapshot()
	snap.Keys[0].Name = "changed"

	assert.Equal(t, "original", s.Keys()[0].Name)
}

func TestStore_ConcurrentMutations(t *testing.T) {
	s := newTestStore(t, repositories.NewMemoryStore())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: fmt.Sprintf("k%d", i), IsPrimary: i%2 == 0})
		}(i)
	}
	wg.Wait()

	keys := s.Keys()
	assert.Len(t, keys, 50)
	primaries := 0
	for _, k := range keys {
		if k.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestStore_OfflineStatusAndClear(t *testing.T) {
	s := newTestStore(t, nil)

	assert.True(t, s.SetOfflineStatus(true))
	assert.False(t, s.SetOfflineStatus(true))
	assert.True(t, s.Offline())

	key := s.AddKey(pix.KeyInput{Type: pix.KeyTypeManual, Value: "x"})
	s.AddGeneratedCode(pix.HistoryInput{KeyID: key.ID, Amount: "1.00"})

	s.ClearStore()
	snap := s.Snapshot()
	assert.Empty(t, snap.Keys)
	assert.Empty(t, snap.History)
	assert.Empty(t, snap.Transactions)
	assert.False(t, snap.IsOffline)
}
