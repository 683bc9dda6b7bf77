package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"strategy-sandbox/internal/advisor"
	"strategy-sandbox/internal/cache"
	"strategy-sandbox/internal/config"
	"strategy-sandbox/internal/handler"
	"strategy-sandbox/internal/job"
	"strategy-sandbox/internal/service"
	"strategy-sandbox/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "strategy-sandbox/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newSessionServiceFunc  = service.NewSessionService
	newBacktestServiceFunc = service.NewBacktestService
	newReaperFunc          = job.NewSessionReaper
	startReaperFunc        = func(r *job.SessionReaper, ctx context.Context) { go r.Start(ctx) }
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Strategy Sandbox API
// @version         1.0
// @description     Deterministic trading-strategy configuration sandbox.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	sessionService := newSessionServiceFunc(tracer)
	backtestService := newBacktestServiceFunc(tracer, redisOrNil(), time.Duration(cfg.ResultDelayMs)*time.Millisecond)

	var advisorService *advisor.Service
	if cfg.OpenAIAPIKey != "" {
		advisorService = advisor.New(tracer, advisor.NewOpenAIClient(cfg.OpenAIAPIKey), cfg.OpenAIModel)
	}

	reaper := newReaperFunc(tracer, sessionService, cfg.SessionTTLMins, cfg.ReaperPollSecs)
	startReaperFunc(reaper, ctx)

	h := newHandlerFunc(tracer, sessionService, backtestService, advisorService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("strategy-sandbox"))
	r.Use(handler.APIKeyAuth(cfg.APIKey))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

// redisOrNil returns the shared client as the service-level interface, or a
// true nil when redis is down (a typed nil pointer would defeat the nil
// checks).
func redisOrNil() service.RedisClient {
	if cache.Client == nil {
		return nil
	}
	return cache.Client
}
