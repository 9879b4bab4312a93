// @title           Secure Vault API
// @version         1.0
// @host            localhost
// @schemes         http https
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"

	"securevault-api/internal/api"
	"securevault-api/internal/config"
	"securevault-api/internal/database"
	"securevault-api/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Cannot load configuration: %v", err)
	}

	// There is deliberately no built-in fallback secret.
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT secret is not configured (set JWT_SECRET or jwt.secret)")
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Cannot connect to the database: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Cannot ping the database: %v", err)
	}
	log.Println("Connected to the database")

	store := database.NewStore(dbpool)
	if err := store.ApplySchema(context.Background()); err != nil {
		log.Fatalf("Cannot apply database schema: %v", err)
	}

	wsHub := websocket.NewHub()
	go wsHub.Run()

	server := api.NewServer(cfg, store, wsHub)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(api.MetricsMiddleware)

	r.Get("/ws", server.ServeWsHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/health", server.HealthCheckHandler)
	r.Post("/api/auth/register", server.RegisterHandler)
	r.Post("/api/auth/login", server.LoginHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(server.AuthMiddleware)
		r.Get("/me", server.GetCurrentUserHandler)
		r.Get("/vaults", server.ListVaultsHandler)
		r.Post("/vaults", server.CreateVaultHandler)
		r.Get("/vaults/{vaultId}", server.GetVaultHandler)
		r.Put("/vaults/{vaultId}", server.UpdateVaultHandler)
		r.Delete("/vaults/{vaultId}", server.DeleteVaultHandler)
		r.Get("/vaults/{vaultId}/files", server.ListFilesHandler)
		r.Post("/vaults/{vaultId}/files", server.CreateFileHandler)
		r.Put("/vaults/{vaultId}/files/{fileId}", server.UpdateFileHandler)
		r.Delete("/vaults/{vaultId}/files/{fileId}", server.DeleteFileHandler)
	})

	log.Printf("Starting server on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		log.Fatalf("Cannot start server: %v", err)
	}
}
