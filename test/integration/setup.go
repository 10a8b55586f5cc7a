package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/dayfinder/internal/adapters/bridge/terminal"
	client "github.com/vncsmyrnk/dayfinder/internal/adapters/client/http"
	handler "github.com/vncsmyrnk/dayfinder/internal/adapters/handler/http"
	"github.com/vncsmyrnk/dayfinder/internal/adapters/page"
	"github.com/vncsmyrnk/dayfinder/internal/adapters/repository/sqlstore"
	"github.com/vncsmyrnk/dayfinder/internal/core/domain"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
	"github.com/vncsmyrnk/dayfinder/internal/core/services"
	"github.com/vncsmyrnk/dayfinder/internal/initdata"
)

const (
	botToken = "123456:integration"
	botName  = "dayfinder_bot"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Store       *handler.PollStore
	API         ports.PollAPI
	Pages       ports.PageReader
	Activity    *services.ActivityService
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("dayfinder"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sqlstore.Open(ctx, sqlstore.TypePostgres, dbURL)
	require.NoError(t, err)
	require.NoError(t, sqlstore.Migrate(ctx, db, sqlstore.TypePostgres))

	router, store, _ := handler.NewStubServer(botToken, botName, t.TempDir())
	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Store:       store,
		API:         client.NewPollClient(server.URL, server.Client()),
		Pages:       page.NewReader(server.URL, server.Client()),
		Activity:    services.NewActivityService(sqlstore.NewActivityRepository(db, sqlstore.TypePostgres), nil),
		DBContainer: dbContainer,
	}
}

// host returns a terminal bridge that accepts every prompt, launched by user
// with startParam.
func (app *TestApp) host(t *testing.T, user domain.User, startParam string) *terminal.Bridge {
	t.Helper()
	raw, err := initdata.New(user, startParam, time.Now(), botToken)
	require.NoError(t, err)
	return terminal.New(terminal.Options{InitData: raw, AssumeYes: true})
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
