package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"polo_storefront/internal/config"
)

// KeyValueStore est le stockage clé/valeur durable sous-jacent
// (équivalent serveur du localStorage du navigateur).
type KeyValueStore interface {
	// Get retourne found=false si la clé n'existe pas
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
	Close() error
}

var ErrUnknownBackend = errors.New("backend de stockage inconnu")

// Connect ouvre le backend choisi dans la configuration
func Connect(cfg config.Config) (KeyValueStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.StoreBackend {
	case config.BackendMemory, "":
		log.Println("✅ Stockage en mémoire initialisé")
		return NewMemoryStore(), nil

	case config.BackendRedis:
		store, err := ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Println("✅ Redis connecté avec succès")
		return store, nil

	case config.BackendPostgres:
		store, err := ConnectPostgres(ctx, cfg.DatabaseURL, cfg.KVTable)
		if err != nil {
			return nil, err
		}
		log.Println("✅ PostgreSQL connecté avec succès")
		return store, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StoreBackend)
}
