package main

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jayelcee/internhq/core"
	"github.com/jayelcee/internhq/infrastructure/communication"
	"github.com/jayelcee/internhq/infrastructure/devops"
	"github.com/jayelcee/internhq/web/handlers"
	"github.com/jayelcee/internhq/web/middlewares"
)

func main() {
	ctx := context.Background()

	cfg, err := devops.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("decode signing secret: %v", err)
	}

	dm, err := core.New(cfg.DSN, cfg.MaxConnections)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dm.Close()

	if cfg.Env == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	if cfg.Env != "release" {
		// Dev front-end runs on its own port.
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
		corsCfg.AllowCredentials = true
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		r.Use(cors.New(corsCfg))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	base := handlers.Handler{Dm: dm, Cfg: cfg}
	if token := os.Getenv("SLACK_BOT_TOKEN"); token != "" {
		base.Slack = communication.NewSlack(token, communication.SlackOption{
			InfoChannelID:  cfg.Slack.InfoChannel,
			ErrorChannelID: cfg.Slack.ErrorChannel,
		})
	}

	public := r.Group("/api/v1")
	handlers.RegisterAuth(public, base)

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret))

	admin := r.Group("/api/v1")
	admin.Use(middlewares.Authentication(jwtSecret), middlewares.RequireAdmin())

	handlers.RegisterTimeLogs(protected, admin, base)
	handlers.RegisterDTR(protected, base)
	handlers.RegisterInterns(protected, admin, base)
	handlers.RegisterOvertime(admin, base)
	handlers.RegisterEditRequests(protected, admin, base)
	handlers.RegisterCertificates(admin, base)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
