package payment

import (
	"log"
	"strings"
	"sync"

	"pixfacil/internal/domain/pix"
	domainErrors "pixfacil/internal/errors"
	"pixfacil/internal/validation"
)

type service struct {
	store   Store
	encoder Encoder

	// serializes the key limit check with the insert
	keyMu sync.Mutex
}

// NewService creates a new payment service
func NewService(store Store, encoder Encoder) Service {
	if store == nil {
		panic("store is required")
	}
	if encoder == nil {
		panic("encoder is required")
	}
	return &service{store: store, encoder: encoder}
}

func (s *service) AddKey(in pix.KeyInput) (pix.Key, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Value = validation.NormalizeKeyValue(in.Type, in.Value)

	v := validation.New()
	v.Key(in)
	if !v.Valid() {
		return pix.Key{}, v
	}

	s.keyMu.Lock()
	defer s.keyMu.Unlock()
	if len(s.store.Keys()) >= validation.MaxKeysPerUser {
		return pix.Key{}, domainErrors.ErrKeyLimitReached
	}

	key := s.store.AddKey(in)
	log.Printf("🔑 key added: id=%s type=%s", key.ID, key.Type)
	return key, nil
}

// UpdateKey validates the key as it would look after the update.
func (s *service) UpdateKey(id string, upd pix.KeyUpdate) (pix.Key, error) {
	current, ok := s.store.GetKey(id)
	if !ok {
		return pix.Key{}, domainErrors.ErrKeyNotFound
	}

	merged := pix.KeyInput{Type: current.Type, Value: current.Value, Name: current.Name}
	if upd.Type != nil {
		merged.Type = *upd.Type
	}
	if upd.Type != nil || upd.Value != nil {
		if upd.Value != nil {
			merged.Value = *upd.Value
		}
		value := validation.NormalizeKeyValue(merged.Type, merged.Value)
		upd.Value = &value
		merged.Value = value
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		upd.Name = &name
		merged.Name = name
	}

	v := validation.New()
	v.Key(merged)
	if !v.Valid() {
		return pix.Key{}, v
	}

	if !s.store.UpdateKey(id, upd) {
		return pix.Key{}, domainErrors.ErrKeyNotFound
	}
	key, _ := s.store.GetKey(id)
	return key, nil
}

func (s *service) DeleteKey(id string) error {
	if !s.store.DeleteKey(id) {
		return domainErrors.ErrKeyNotFound
	}
	log.Printf("🗑️ key deleted: id=%s", id)
	return nil
}

func (s *service) SetPrimary(id string) (pix.Key, error) {
	if !s.store.SetPrimary(id) {
		return pix.Key{}, domainErrors.ErrKeyNotFound
	}
	key, _ := s.store.GetKey(id)
	return key, nil
}

// GenerateCode validates the request, encodes the payload and records the
// code with its pending transaction.
func (s *service) GenerateCode(req CodeRequest) (*Code, error) {
	key, err := s.resolveKey(req.KeyID)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	v := validation.New()
	amount := v.Payment(req.Amount, description)
	if !v.Valid() {
		return nil, v
	}

	normalized := amount.StringFixed(2)
	payload := s.encoder.Encode(key, normalized, description)

	rec, tx := s.store.AddGeneratedCode(pix.HistoryInput{
		KeyID:       key.ID,
		KeyValue:    key.Value,
		KeyName:     key.Name,
		Amount:      normalized,
		Description: description,
		ImageURL:    payload.ImageURL,
		Payload:     payload.Text,
	})
	log.Printf("💠 code generated: id=%s key=%s amount=%s", rec.ID, key.ID, normalized)

	return &Code{Record: rec, Transaction: tx}, nil
}

func (s *service) resolveKey(id string) (pix.Key, error) {
	if id == "" {
		key, ok := s.store.PrimaryKey()
		if !ok {
			return pix.Key{}, domainErrors.ErrNoPrimaryKey
		}
		return key, nil
	}
	key, ok := s.store.GetKey(id)
	if !ok {
		return pix.Key{}, domainErrors.ErrKeyNotFound
	}
	return key, nil
}

func (s *service) MarkReceived(id string, received bool) (pix.HistoryRecord, error) {
	if !s.store.SetReceived(id, received) {
		rec, ok := s.store.GetHistoryRecord(id)
		if !ok {
			return pix.HistoryRecord{}, domainErrors.ErrCodeNotFound
		}
		return rec, domainErrors.ErrCodeCancelled
	}
	return s.currentRecord(id)
}

func (s *service) Cancel(id, reason string) (pix.HistoryRecord, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return pix.HistoryRecord{}, domainErrors.ErrEmptyReason
	}
	v := validation.New()
	v.MaxLength("reason", reason, validation.MaxReasonLength)
	if !v.Valid() {
		return pix.HistoryRecord{}, v
	}

	if !s.store.Cancel(id, reason) {
		rec, ok := s.store.GetHistoryRecord(id)
		if !ok {
			return pix.HistoryRecord{}, domainErrors.ErrCodeNotFound
		}
		return rec, domainErrors.ErrCodeCancelled
	}
	log.Printf("🚫 code cancelled: id=%s", id)
	return s.currentRecord(id)
}

// currentRecord reads id back after a mutation; a concurrent delete
// surfaces as not found.
func (s *service) currentRecord(id string) (pix.HistoryRecord, error) {
	rec, ok := s.store.GetHistoryRecord(id)
	if !ok {
		return pix.HistoryRecord{}, domainErrors.ErrCodeNotFound
	}
	return rec, nil
}

func (s *service) DeleteCode(id string) error {
	if !s.store.DeleteHistoryRecord(id) {
		return domainErrors.ErrCodeNotFound
	}
	return nil
}

// UpdateTransactionStatus changes a transaction's status. For a code's
// transaction the history record follows, and cancelling has to go
// through Cancel so a reason is recorded.
func (s *service) UpdateTransactionStatus(id string, status pix.TransactionStatus) (pix.Transaction, error) {
	if !status.Valid() {
		return pix.Transaction{}, domainErrors.ErrInvalidStatus
	}
	tx, ok := s.store.GetTransaction(id)
	if !ok {
		return pix.Transaction{}, domainErrors.ErrTransactionNotFound
	}
	if tx.Status == pix.StatusCancelled {
		return tx, domainErrors.ErrTransactionClosed
	}
	if _, linked := s.store.LinkedRecord(tx); linked && status == pix.StatusCancelled {
		return tx, domainErrors.ErrCancelRequiresReason
	}
	if tx.Status == status {
		return tx, nil
	}
	if !s.store.UpdateTransactionStatus(id, status) {
		tx, ok = s.store.GetTransaction(id)
		if !ok {
			return pix.Transaction{}, domainErrors.ErrTransactionNotFound
		}
		return tx, domainErrors.ErrTransactionClosed
	}
	tx, ok = s.store.GetTransaction(id)
	if !ok {
		return pix.Transaction{}, domainErrors.ErrTransactionNotFound
	}
	return tx, nil
}
