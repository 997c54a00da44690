// Package cli implements the interactive Mood-Tracker terminal client.
package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/khmorad/Mood-Tracker/internal/client/api"
	"github.com/khmorad/Mood-Tracker/internal/client/config"
	"github.com/khmorad/Mood-Tracker/internal/client/credential"
	"github.com/khmorad/Mood-Tracker/internal/client/entitlement"
	"github.com/khmorad/Mood-Tracker/internal/client/localdb"
	"github.com/khmorad/Mood-Tracker/internal/client/models"
	"github.com/khmorad/Mood-Tracker/internal/client/repositories/metadata"
	"github.com/khmorad/Mood-Tracker/internal/client/services"
	"github.com/khmorad/Mood-Tracker/internal/client/session"
	"github.com/khmorad/Mood-Tracker/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	apiClient   *api.Client
	authService services.AuthService
	subService  services.SubscriptionService
	records     session.RecordStore
	enricher    session.Enricher
	logger      logging.Logger
	session     *session.Session
	Mode        Mode
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := localdb.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	repo := metadata.NewSQLiteRepository(db)
	creds := credential.NewReader(repo)
	cache := entitlement.NewCache(repo)
	apiClient := api.NewClient(c.ServerBaseURL, creds)

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	as := services.NewAuthService(apiClient, creds, cache)
	ss := services.NewSubscriptionService(apiClient, cache)

	app := &App{
		config:      c,
		apiClient:   apiClient,
		authService: as,
		subService:  ss,
		records:     apiClient,
		enricher:    apiClient,
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
	}
	app.startSession(ctx)
	return app, nil
}

// startSession builds the conversation session for whoever the stored
// credential says we are, and reconciles today's history immediately, before
// any submission is possible.
func (a *App) startSession(ctx context.Context) {
	var user models.User
	if u := a.authService.CurrentUser(ctx); u != nil {
		user = *u
	}
	a.session = session.New(user, a.records, a.enricher, a.logger)
	a.session.LoadHistory(ctx)
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService.CurrentUser(context.Background()) != nil
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
