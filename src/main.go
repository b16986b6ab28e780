package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"bookingapi/src/boot"
	"bookingapi/src/config"
	"bookingapi/src/logger"
	"bookingapi/src/middlewares"
	"bookingapi/src/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	apiPrefix string = "/api/v1"
)

func setupRouter(app *boot.App) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middlewares.SecureHeaders)
	router.Use(middlewares.Metrics(app.Metrics))
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

func corsMiddleware(cfg *config.Config, log logger.Logger) gin.HandlerFunc {
	if cfg.APIEnv == "local" {
		return cors.Default()
	}
	cc := cors.DefaultConfig()
	cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
	cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
	cc.AllowOriginFunc = func(origin string) bool {
		if cfg.AppHost == "" {
			return false
		}
		match, _ := regexp.MatchString(cfg.AppHost, origin)
		log.Debug("cors origin checked", "origin", origin, "match", match)
		return match
	}
	cc.AllowCredentials = true
	cc.AllowAllOrigins = false
	return cors.New(cc)
}

func maintenanceModeMiddleware(g *gin.Engine, cfg *config.Config) *gin.Engine {
	g.Use(middlewares.Maintenance(func() bool { return cfg.MaintenanceMode }))
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

// registerRoutes mounts the public and token-protected API surface.
func registerRoutes(router *gin.Engine, app *boot.App) {
	public := apiv1Group(router)
	authHandlers(public, app)
	publicEnquiryHandlers(public, app)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware(app.Config.JWTSecret, app.Store.Users, app.Log))
	{
		userHandlers(authorized, app)
		bookingHandlers(authorized, app)
		placeHandlers(authorized, app)
		enquiryHandlers(authorized, app)
	}
}

func newEngine(app *boot.App) *gin.Engine {
	router := setupRouter(app)
	router.Use(corsMiddleware(app.Config, app.Log))
	router = maintenanceModeMiddleware(router, app.Config)
	registerRoutes(router, app)
	return router
}

func initLogger(cfg *config.Config) *logger.ZapLogger {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.ForceConsoleColor()
	}
	if cfg.LogDir != "" {
		gin.DefaultWriter = io.MultiWriter(os.Stdout, logger.RotatingWriter(cfg.LogDir, "api.log"))
	}
	return logger.NewLogger(cfg.LogDir, !cfg.IsProd())
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("", false).Fatal("invalid configuration", "error", err)
	}
	log := initLogger(cfg)
	defer log.Sync()

	if err := utils.RegisterValidations(); err != nil {
		log.Fatal("error registering validations", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := boot.Init(ctx, cfg, log)
	if err != nil {
		log.Fatal("error initializing app", "error", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newEngine(app),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.APIEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	if err := app.Shutdown(shutdownCtx); err != nil {
		log.Error("app shutdown", "error", err)
	}
}
