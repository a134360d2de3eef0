package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/authorshaven/content/internal/cache"
	"github.com/authorshaven/content/internal/compress"
	"github.com/authorshaven/content/internal/config"
	"github.com/authorshaven/content/internal/jobs"
	"github.com/authorshaven/content/internal/notify"
	"github.com/authorshaven/content/internal/service"
	"github.com/authorshaven/content/internal/store"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server.
type Server struct {
	httpPort string
}

// NewServer creates a new server.
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server.
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start wires the stores, services, event bus and background jobs, then
// serves HTTP until interrupted.
func Start(httpPort string) error {
	httpPort = ":" + httpPort

	cnf := config.LoadConfig()
	db := config.GetDb(cnf)

	contentStore := store.NewGormStore(db)
	if err := contentStore.Migrate(); err != nil {
		return err
	}

	var articleCache cache.ArticleCache
	if cnf.RedisAddr != "" {
		articleCache = cache.NewRedis(cnf.RedisAddr, cnf.RedisPassword, cnf.RedisDB)
	} else {
		articleCache = cache.NewNoop()
	}

	bus := notify.NewBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := notify.NewDispatcher(bus, contentStore)
	go func() {
		if err := dispatcher.Run(ctx); err != nil {
			logrus.Errorf("notification dispatcher stopped: %v", err)
		}
	}()

	compressor := compress.NewGZip()

	api := &API{
		articles:      service.NewArticleService(compressor, contentStore, articleCache),
		likes:         service.NewLikeService(contentStore),
		profiles:      service.NewProfileService(contentStore, bus),
		notifications: service.NewNotificationService(contentStore),
	}

	background := []jobs.Job{
		jobs.NewNotificationCleanerTask("@daily", 30*24*time.Hour, contentStore),
	}
	if cnf.RedisAddr != "" {
		background = append(background, jobs.NewCacheWarmTask("@every 5m", contentStore, articleCache))
	}
	executor := jobs.NewTaskExecutor(background)
	executor.Start()
	defer executor.Stop()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PUT", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-User-Id"},
		AllowCredentials: true,
	})

	restServer := &http.Server{
		Addr:    httpPort,
		Handler: c.Handler(NewRouter(cnf.Env, api)),
	}

	go func() {
		logrus.Info("starting http server on: ", httpPort)
		if err := restServer.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting http server: %v", err)
			}
		}
		logrus.Infof("http server stopped")
	}()

	logrus.Infof("Press Ctrl+C to stop the server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return restServer.Shutdown(shutdownCtx)
}
