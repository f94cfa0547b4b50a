package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backends de stockage supportés
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Port          string
	StoreBackend  string
	StorePrefix   string
	RedisHost     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string
	KVTable       string
	JWTSecret     string
	AuthDelay     time.Duration
	ToastDuration time.Duration
	CORSOrigins   []string
	WhatsAppPhone string
	CatalogFile   string
	LoginAttempts int
	LoginWindow   time.Duration
	DeviceIdleTTL time.Duration
}

// Load charge le fichier .env (s'il existe) puis lit la configuration
func Load() Config {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
	return FromEnv()
}

// FromEnv lit uniquement les variables d'environnement
func FromEnv() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		StorePrefix:   getEnv("STORE_PREFIX", "inversionesPolo"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		KVTable:       getEnv("KV_TABLE", "kv_store"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AuthDelay:     getDuration("AUTH_DELAY", 800*time.Millisecond),
		ToastDuration: getDuration("TOAST_DURATION", 3*time.Second),
		WhatsAppPhone: getEnv("WHATSAPP_PHONE", "51987654321"),
		CatalogFile:   os.Getenv("CATALOG_FILE"),
		LoginAttempts: getInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:   getDuration("LOGIN_COOLDOWN", 15*time.Minute),
		DeviceIdleTTL: getDuration("DEVICE_IDLE_TTL", 30*time.Minute),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET manquant, secret de développement utilisé")
		cfg.JWTSecret = "polo_dev_secret"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %d", key, value, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %s", key, value, fallback)
		return fallback
	}
	return d
}
