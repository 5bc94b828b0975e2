package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"regexp"
	"strconv"
	"syscall"
	"travelhub/src/boot"
	"travelhub/src/common"
	"travelhub/src/config"
	"travelhub/src/db"
	"travelhub/src/lib"
	"travelhub/src/middlewares"
	"travelhub/src/realtime"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiPrefix = "/api"

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders, middlewares.RequestMetrics)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm, err := strconv.ParseBool(os.Getenv("MAINTENANCE_MODE"))
		if err == nil && mm {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
	})
	return g
}

// allowedOrigin accepts the configured app host and the mobile client.
func allowedOrigin(appHost string) func(origin string) bool {
	return func(origin string) bool {
		if appHost != "" {
			if match, _ := regexp.MatchString(appHost, origin); match {
				return true
			}
		}
		return origin == "app:mobile"
	}
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	if cfg.IsLocal() {
		return cors.Default()
	}
	cc := cors.DefaultConfig()
	cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
	cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
	cc.AllowOriginFunc = allowedOrigin(cfg.AppHost)
	cc.AllowCredentials = true
	cc.AllowAllOrigins = false
	return cors.New(cc)
}

func apiRoutes(g *gin.Engine) *gin.RouterGroup {
	api := g.Group(apiPrefix)
	authHandlers(api)
	propertyHandlers(api)
	busHandlers(api)
	operatorHandlers(api)
	trainHandlers(api)
	homestayHandlers(api)
	supportHandlers(api)
	return api
}

func realtimeRoutes(g *gin.Engine, hub *realtime.Hub, cfg *config.Config) {
	var check func(string) bool
	if !cfg.IsLocal() {
		check = allowedOrigin(cfg.AppHost)
	}
	server := realtime.NewServer(hub, realtime.NewDispatcher(db.GetDb(), cfg.Realtime.SnapshotLimit), cfg.Realtime.SendBuffer, check)
	g.GET("/ws/realtime/", server.Handle)
}

func initLogger() {
	cwd, _ := os.Getwd()
	logsDir := path.Join(cwd, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		log.Printf("Could not create logs directory: %s\n", err.Error())
		return
	}
	gin.ForceConsoleColor()

	f, err := os.Create(path.Join(logsDir, "api.log"))
	if err == nil {
		gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   path.Join(logsDir, "server.log"),
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}))
}

func main() {
	if os.Getenv("API_ENV") == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			log.Printf("No .env file loaded: %s\n", err.Error())
		}
	}
	initLogger()

	cfg := config.Get()
	lib.RegisterMetrics()
	common.RegisterValidators()

	boot.InitDb()
	boot.InitScheduler(cfg)
	defer boot.StopScheduler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub, pub := boot.InitBroadcast(ctx, cfg)
	publisher = pub

	router := setupRouter()
	router.Use(corsMiddleware(cfg))
	router = maintenanceModeMiddleware(router)

	apiRoutes(router)
	realtimeRoutes(router, hub, cfg)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		srv.Shutdown(context.Background())
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %s", err)
	}
}
