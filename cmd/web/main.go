package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dukaan/internal/config"
	"dukaan/internal/database"
	"dukaan/internal/handlers"
	"dukaan/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	if cfg.MongoURL == "" {
		log.Fatal("mongo_url is not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("jwt_secret is not set")
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Connect(connectCtx, cfg.MongoURL)
	cancelConnect()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := db.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Index bootstrap failed: %v", err)
	}

	tokens := services.NewTokenService(cfg.JWTSecret)
	h := handlers.NewHandler(db, tokens)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "Cookie"},
		ExposeHeaders:   []string{"Set-Cookie"},
	}))

	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	stop, cancelStop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancelStop()
	<-stop.Done()

	log.Print("Shutting down...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Printf("Database close: %v", err)
	}
}
