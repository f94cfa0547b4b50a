package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"polo_storefront/internal/app"
	"polo_storefront/internal/catalog"
	"polo_storefront/internal/config"
	"polo_storefront/internal/database"
	"polo_storefront/internal/handlers"
	"polo_storefront/internal/middleware"
	"polo_storefront/internal/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	store, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ Impossible d'ouvrir le stockage: %v", err)
	}
	defer store.Close()

	products, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("❌ Catalogue invalide: %v", err)
	}
	log.Printf("✅ Catalogue chargé: %d produits", len(products.All()))

	registry := app.NewRegistry(store, app.Options{
		Prefix:        cfg.StorePrefix,
		Catalog:       products,
		AuthDelay:     cfg.AuthDelay,
		ToastDuration: cfg.ToastDuration,
	})
	defer registry.Close()

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go registry.RunJanitor(janitorCtx, cfg.DeviceIdleTTL/6, cfg.DeviceIdleTTL)

	secret := []byte(cfg.JWTSecret)
	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))
	routes.RegisterRoutes(r,
		handlers.New(registry, secret, cfg.WhatsAppPhone),
		middleware.DeviceRequired(secret),
		middleware.LoginRateLimit(attemptCounter(store), cfg.LoginAttempts, cfg.LoginWindow),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.Printf("🛑 Signal %v reçu, arrêt du serveur...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("⚠️ Erreur à l'arrêt du serveur: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Println("🚀 Serveur Inversiones Polo lancé sur le port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ Serveur arrêté: %v", err)
	}
	<-idleConnsClosed
}

// attemptCounter partage les compteurs via Redis quand c'est le stockage choisi
func attemptCounter(store database.KeyValueStore) middleware.AttemptCounter {
	if rs, ok := store.(*database.RedisStore); ok {
		return middleware.NewRedisAttempts(rs.Client())
	}
	return middleware.NewMemoryAttempts()
}
