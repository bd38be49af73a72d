package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"arcadia-quote-service/internal/app"
	"arcadia-quote-service/internal/domain"
	mongoinfra "arcadia-quote-service/internal/infra/mongo"
	pgloader "arcadia-quote-service/internal/infra/postgres"
	pgmigrations "arcadia-quote-service/internal/infra/postgres/migrations"
	infraredis "arcadia-quote-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestQuoteDialogueEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedContent(t, ctx, pgURL, integrationContent())

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewContentLoader(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	contentRepo := infraredis.NewContentRepository(redisClient, loader, 5*time.Minute)
	sessionStore := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	service := app.NewQuoteService(sessionStore, contentRepo, "en")

	if _, err := service.StartSession(ctx, "s1", "en"); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := service.SelectCompanySize(ctx, "s1", "midmarket"); err != nil {
		t.Fatalf("company size: %v", err)
	}

	var last app.Turn
	for _, id := range []string{"q1-basic", "q2-basic", "q3-basic", "q4-basic", "q5-basic", "q6-basic"} {
		last, err = service.SelectOption(ctx, "s1", id)
		if err != nil {
			t.Fatalf("select %s: %v", id, err)
		}
	}
	if last.State != app.StateComplete || last.Progress != 100 {
		t.Fatalf("expected complete session, got %+v", last)
	}

	breakdown, err := service.Results("s1")
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	// 6 questions x base 1000 x 1.2 company multiplier.
	if breakdown.TotalPrice != 7200 {
		t.Fatalf("expected total 7200, got %d", breakdown.TotalPrice)
	}
	if breakdown.TotalHours != 6*10+domain.FreeStageHours {
		t.Fatalf("expected hours %d, got %d", 6*10+domain.FreeStageHours, breakdown.TotalHours)
	}

	// A fresh store resumes the finished session from its Redis snapshot.
	freshStore := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	freshService := app.NewQuoteService(freshStore, contentRepo, "en")
	resumed, err := freshService.StartSession(ctx, "s1", "")
	if err != nil {
		t.Fatalf("resume session: %v", err)
	}
	if resumed.TotalPrice() != 7200 {
		t.Fatalf("resumed session lost totals: %d", resumed.TotalPrice())
	}
}

func TestLeadRepositoryEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	mongoURL, cleanup := startMongo(t, ctx)
	defer cleanup()

	client, err := mongodriver.Connect(ctx, mongooptions.Client().ApplyURI(mongoURL))
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	repo := mongoinfra.NewLeadRepository(client.Database("quotes_test"))

	leadID, err := repo.CreateLead(ctx, domain.Lead{FirstName: "Ana", LastName: "Reyes", Email: "Ana@Example.com"})
	if err != nil {
		t.Fatalf("create lead: %v", err)
	}
	if _, err := repo.CreateLead(ctx, domain.Lead{FirstName: "Ana", LastName: "Reyes", Email: "ana@example.com"}); err != domain.ErrDuplicateLead {
		t.Fatalf("expected duplicate lead, got %v", err)
	}

	if _, err := repo.CreateQuoteRequest(ctx, domain.LeadRequest{
		LeadID:    leadID,
		Recipient: "sales@vendor.com",
		Answers:   []domain.Answer{{QuestionID: "q1", OptionID: "o1", BasePrice: 1000, FinalPrice: 1200, Hours: 40}},
	}); err != nil {
		t.Fatalf("create quote request: %v", err)
	}

	lead, err := repo.GetLeadByEmail(ctx, "ana@example.com")
	if err != nil || lead.ID != leadID {
		t.Fatalf("get lead by email: %v lead=%+v", err, lead)
	}
	requests, err := repo.GetLeadRequests(ctx, leadID)
	if err != nil || len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d err=%v", len(requests), err)
	}
	if requests[0].Kind != domain.RequestQuote {
		t.Fatalf("expected quote kind, got %s", requests[0].Kind)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quote", "POSTGRES_PASSWORD": "quotepass", "POSTGRES_DB": "quotedb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quote:quotepass@%s:%s/quotedb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func startMongo(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "mongo:6",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start mongo: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("mongo host: %v", err)
	}
	port, err := container.MappedPort(ctx, "27017/tcp")
	if err != nil {
		t.Fatalf("mongo port: %v", err)
	}
	url := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedContent(t *testing.T, ctx context.Context, dsn string, content domain.QuoteContent) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	data, err := json.Marshal(content)
	if err != nil {
		t.Fatalf("marshal content: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO quote_content (language, data) VALUES (?, ?::jsonb) ON CONFLICT (language) DO UPDATE SET data=EXCLUDED.data`, content.Language, string(data)); err != nil {
		t.Fatalf("insert content: %v", err)
	}
}

func integrationContent() domain.QuoteContent {
	questions := make([]domain.Question, 0, domain.PricedStageCount)
	for i := 1; i <= domain.PricedStageCount; i++ {
		id := fmt.Sprintf("q%d", i)
		questions = append(questions, domain.Question{
			ID: id, Prompt: id + "?",
			Options: []domain.Option{
				{ID: id + "-basic", Label: "Basic", Echo: "Basic", BasePrice: 1000, Hours: 10},
			},
		})
	}
	return domain.QuoteContent{
		Language: "en",
		CompanySizes: []domain.CompanySize{
			{ID: "startup", Label: "Startup", Multiplier: 1.0},
			{ID: "midmarket", Label: "Mid-market", Multiplier: 1.2},
		},
		Questions: questions,
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
