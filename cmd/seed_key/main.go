// Command seed_key registers the primary pix key from the environment on
// the configured store backend. It does nothing when a key with the same
// value already exists.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"pixfacil/internal/config"
	"pixfacil/internal/domain/pix"
	"pixfacil/internal/repositories"
	"pixfacil/internal/services/brcode"
	"pixfacil/internal/services/payment"
	"pixfacil/internal/store"
	"pixfacil/internal/validation"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	keyType := os.Getenv("SEED_KEY_TYPE")
	keyValue := os.Getenv("SEED_KEY_VALUE")
	keyName := os.Getenv("SEED_KEY_NAME")

	if keyType == "" || keyValue == "" || keyName == "" {
		log.Fatal("SEED_KEY_TYPE, SEED_KEY_VALUE, and SEED_KEY_NAME must be set in environment")
	}

	t, err := pix.ParseKeyType(keyType)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	blobs, err := repositories.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			log.Printf("⚠️ Failed to close store backend: %v", err)
		}
	}()

	st := store.New(blobs, store.WithName(cfg.StoreName))
	if err := st.Load(ctx); err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			log.Printf("⚠️ Failed to flush state: %v", err)
		}
	}()

	for _, k := range st.Keys() {
		if k.Type == t && k.Value == validation.NormalizeKeyValue(t, keyValue) {
			log.Println("Key already exists")
			return
		}
	}

	svc := payment.NewService(st, brcode.NewEncoder(brcode.Config{City: cfg.MerchantCity}))
	key, err := svc.AddKey(pix.KeyInput{Type: t, Value: keyValue, Name: keyName, IsPrimary: true})
	if err != nil {
		log.Printf("Failed to create key: %v", err)
		return
	}
	log.Printf("✅ Primary key created: %s", key.ID)
}
