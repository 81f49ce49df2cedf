package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"mars_shop/internal/admin"
	"mars_shop/internal/auth"
	"mars_shop/internal/cache"
	"mars_shop/internal/cart"
	"mars_shop/internal/catalog"
	"mars_shop/internal/config"
	"mars_shop/internal/database"
	"mars_shop/internal/middleware"
	"mars_shop/internal/orders"
	"mars_shop/internal/repository"
	"mars_shop/internal/routes"
	"mars_shop/internal/services"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" || cfg.SessionSecret == "" {
		log.Fatal("❌ JWT_SECRET et SESSION_SECRET sont obligatoires")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, closeRepos := openRepositories(cfg)
	defer closeRepos()

	if cfg.SeedDemoData || cfg.StorageDriver == config.DriverMemory {
		if err := repository.SeedCatalog(ctx, repos); err != nil {
			log.Fatalf("❌ Chargement du catalogue de démonstration: %v", err)
		}
		if err := auth.SeedDemoUsers(ctx, repos.Users); err != nil {
			log.Fatalf("❌ Création des comptes de démonstration: %v", err)
		}
		log.Println("🌱 Données de démonstration chargées")
	}

	// Redis est optionnel : sans lui, panier et révocation restent en mémoire.
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		client, err := database.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			log.Printf("⚠️ Redis indisponible, repli en mémoire: %v", err)
		} else {
			rdb = client
			defer rdb.Close()
		}
	}
	appCache := cache.New(rdb)

	var (
		cartStorage cart.Storage = cart.NewMemoryStorage()
		revoker     auth.Revoker = auth.NewMemoryRevoker()
		guard       orders.Guard = orders.NewMemoryGuard()
		events      *cart.RedisStorage
	)
	if rdb != nil {
		events = cart.NewRedisStorage(rdb)
		cartStorage = events
		revoker = cache.NewRedisRevoker(rdb)
		guard = orders.NewRedisGuard(rdb)
	}

	catalogDeps := catalog.Deps{Products: repos.Products, Categories: repos.Categories, Cache: appCache}
	if cfg.Elastic.URL != "" {
		es, err := database.OpenElastic(cfg.Elastic)
		if err != nil {
			log.Printf("⚠️ Elasticsearch indisponible, recherche locale: %v", err)
		} else {
			catalogDeps.Index = services.NewProductIndex(es, cfg.Elastic.Index)
		}
	}
	catalogSvc := catalog.NewService(catalogDeps)
	if catalogDeps.Index != nil {
		if err := catalogSvc.ReindexAll(ctx); err != nil {
			log.Printf("⚠️ Réindexation Elasticsearch: %v", err)
		}
	}

	var images *services.ImageStore
	if cfg.MinIO.Endpoint != "" {
		mc, err := database.OpenMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.Printf("⚠️ MinIO indisponible, upload d'images désactivé: %v", err)
		} else {
			images = services.NewImageStore(mc, cfg.MinIO.Bucket)
		}
	}

	carts := cart.NewService(cartStorage, repos.Products)
	orderDeps := orders.Deps{
		Orders:   repos.Orders,
		Users:    repos.Users,
		Products: repos.Products,
		Carts:    carts,
		Guard:    guard,
		BaseURL:  cfg.PublicBaseURL,
	}
	if cfg.SMTP.Host != "" && cfg.SMTP.NotifyTo != "" {
		orderDeps.Notifier = services.NewMailer(cfg.SMTP, cfg.PublicBaseURL)
		log.Println("📧 Notifications de commande activées")
	}

	deps := routes.Deps{
		Auth:         auth.NewService(repos.Users, auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL), revoker, appCache),
		Catalog:      catalogSvc,
		Carts:        carts,
		Orders:       orders.NewService(orderDeps),
		Admin:        admin.NewService(repos),
		Images:       images,
		Redis:        rdb,
		Sessions:     middleware.NewSessionStore(cfg.SessionSecret, cfg.CookieSecure),
		CookieSecure: cfg.CookieSecure,
		CORSOrigins:  cfg.CORSOrigins,
	}
	if events != nil {
		deps.Events = events
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.RegisterRoutes(r, deps)

	log.Println("🚀 Serveur Mars Shop lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Arrêt du serveur: %v", err)
	}
}

// openRepositories choisit le stockage selon STORAGE_DRIVER.
func openRepositories(cfg config.Config) (repository.Repositories, func()) {
	switch cfg.StorageDriver {
	case config.DriverScylla:
		sm, err := database.NewScyllaManager(cfg.Scylla)
		if err != nil {
			log.Fatalf("❌ ScyllaDB: %v", err)
		}
		repos, err := repository.NewScylla(sm)
		if err != nil {
			sm.Close()
			log.Fatalf("❌ Dépôts ScyllaDB: %v", err)
		}
		return repos, sm.Close
	case config.DriverPostgres:
		db, err := database.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Postgres: %v", err)
		}
		repos, err := repository.NewPostgres(db)
		if err != nil {
			log.Fatalf("❌ Dépôts Postgres: %v", err)
		}
		return repos, func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
	case config.DriverMemory:
		log.Println("💾 Stockage en mémoire")
		return repository.NewMemory(), func() {}
	default:
		log.Fatalf("❌ STORAGE_DRIVER inconnu: %s", cfg.StorageDriver)
		return repository.Repositories{}, nil
	}
}
