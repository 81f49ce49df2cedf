package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverScylla   = "scylla"
	DriverPostgres = "postgres"
)

type Scylla struct {
	Hosts       []string
	SSLEnabled  bool
	CACertPath  string
	Keyspaces   map[string]Keyspace // "products", "users", "orders"
	Timeout     time.Duration
	NumConns    int
	Consistency string
}

type Keyspace struct {
	Name     string
	Role     string
	Password string
}

type Redis struct {
	Host     string
	Password string
	DB       int
}

type Elastic struct {
	URL      string
	User     string
	Password string
	Index    string
}

type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	NotifyTo string
}

type Config struct {
	Port           string
	StorageDriver  string
	DatabaseURL    string
	PublicBaseURL  string
	CORSOrigins    []string
	JWTSecret      string
	SessionSecret  string
	CookieSecure   bool
	TokenTTL       time.Duration
	SeedDemoData   bool
	Scylla         Scylla
	Redis          Redis
	Elastic        Elastic
	MinIO          MinIO
	SMTP           SMTP
}

// Load charge le .env s'il existe puis construit la configuration.
func Load() Config {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé, on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
	return FromEnv()
}

func FromEnv() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		CookieSecure:  getBool("COOKIE_SECURE", false),
		TokenTTL:      getDuration("TOKEN_TTL", 7*24*time.Hour),
		SeedDemoData:  getBool("SEED_DEMO_DATA", false),
		Scylla: Scylla{
			Hosts:       splitList(os.Getenv("SCYLLA_HOSTS")),
			SSLEnabled:  getBool("SCYLLA_SSL_ENABLED", false),
			CACertPath:  os.Getenv("SCYLLA_SSL_CA_PATH"),
			Timeout:     getDuration("SCYLLA_TIMEOUT", 5*time.Second),
			NumConns:    getInt("SCYLLA_NUM_CONNS", 20),
			Consistency: getEnv("SCYLLA_CONSISTENCY", "QUORUM"),
			Keyspaces:   map[string]Keyspace{},
		},
		Redis: Redis{
			Host:     os.Getenv("REDIS_HOST"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Elastic: Elastic{
			URL:      os.Getenv("ELASTIC_URL"),
			User:     os.Getenv("ELASTIC_USER"),
			Password: os.Getenv("ELASTIC_PASSWORD"),
			Index:    getEnv("ELASTIC_INDEX", "products"),
		},
		MinIO: MinIO{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "mars-shop-images"),
			UseSSL:    getBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "noreply@marsshop.com"),
			NotifyTo: os.Getenv("SHOP_NOTIFY_EMAIL"),
		},
	}

	for _, name := range []string{"PRODUCTS", "USERS", "ORDERS"} {
		ks := os.Getenv("SCYLLA_KS_" + name + "_KEYSPACE")
		if ks == "" {
			continue
		}
		cfg.Scylla.Keyspaces[strings.ToLower(name)] = Keyspace{
			Name:     ks,
			Role:     os.Getenv("SCYLLA_KS_" + name + "_ROLE"),
			Password: os.Getenv("SCYLLA_KS_" + name + "_PASSWORD"),
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
