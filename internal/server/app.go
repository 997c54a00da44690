// Package server initializes and runs the Mood-Tracker backend. It wires the
// PostgreSQL repositories, domain services, and the HTTP API, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/khmorad/Mood-Tracker/internal/logging"
	"github.com/khmorad/Mood-Tracker/internal/server/config"
	"github.com/khmorad/Mood-Tracker/internal/server/db"
	"github.com/khmorad/Mood-Tracker/internal/server/emotions"
	"github.com/khmorad/Mood-Tracker/internal/server/entries"
	"github.com/khmorad/Mood-Tracker/internal/server/generate"
	"github.com/khmorad/Mood-Tracker/internal/server/httpapi"
	"github.com/khmorad/Mood-Tracker/internal/server/speech"
	"github.com/khmorad/Mood-Tracker/internal/server/users"
)

type App struct {
	config           *config.Config
	logger           logging.Logger
	userService      *users.Service
	entryService     *entries.Service
	generateService  *generate.Service
	speechService    *speech.Service
	emotionService   *emotions.Service
	emotionScheduler *emotions.Scheduler
	planScheduler    *users.PlanScheduler
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	llm := generate.NewUpstreamClient(c.GenerateAPIURL, c.GenerateAPIKey)

	us := users.NewService(rm.Users(), c)
	es := entries.NewService(rm.Entries())
	gs := generate.NewService(llm, logger)
	ss := speech.NewService(speech.NewUpstreamClient(c.TTSAPIURL, c.TTSAPIKey), speech.NewS3Store(c), logger)
	ems := emotions.NewService(rm.Entries(), rm.Emotions(), llm, logger)

	return &App{
		config:           c,
		logger:           logger,
		userService:      us,
		entryService:     es,
		generateService:  gs,
		speechService:    ss,
		emotionService:   ems,
		emotionScheduler: emotions.NewScheduler(ems, logger),
		planScheduler:    users.NewPlanScheduler(us, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Handlers:       httpapi.NewHandlers(app.userService, app.entryService, app.generateService, app.speechService, app.emotionService),
		AuthMiddleware: httpapi.NewAuthMiddleware([]byte(app.config.SecretKey)),
	})

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(context.Background(), err.Error())
		}
	}()

	app.logger.Info(ctx, "HTTP API listening", "addr", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.emotionScheduler.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.planScheduler.Run(ctx)
	}()

	wg.Wait()

}
