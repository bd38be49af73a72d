package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arcadia-quote-service/internal/app"
	"arcadia-quote-service/internal/config"
	"arcadia-quote-service/internal/infra/memory"
	mongoinfra "arcadia-quote-service/internal/infra/mongo"
	pgloader "arcadia-quote-service/internal/infra/postgres"
	redisinfra "arcadia-quote-service/internal/infra/redis"
	transport "arcadia-quote-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quote service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	sessionTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.ContentLoader = memory.NewStaticContentLoader(sampleContent())
	if pool != nil {
		loader = pgloader.NewContentLoader(pool)
	}

	contentTTL := config.TTLDuration(cfg.Content.TTL, 10*time.Minute)
	var contentRepo app.ContentRepository
	if redisClient != nil {
		contentRepo = redisinfra.NewContentRepository(redisClient, loader, contentTTL)
	} else {
		contentRepo = memory.NewContentRepository(loader, contentTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient, sessionTTL)
	} else {
		store = memory.NewSessionStore()
	}

	var leads app.LeadService = memory.NewLeadRepository()
	if cfg.Mongo.URI != "" {
		client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		dbName := cfg.Mongo.Database
		if dbName == "" {
			dbName = "quotes"
		}
		leads = mongoinfra.NewLeadRepository(client.Database(dbName))
	}

	service := app.NewQuoteService(store, contentRepo, cfg.Content.DefaultLanguage)
	handler := transport.NewRouter(service, leads)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quote service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
