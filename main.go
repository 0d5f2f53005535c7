package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerpath/internal"
	"careerpath/internal/artifact"
	"careerpath/internal/config"
	"careerpath/internal/errors"
	"careerpath/internal/predict"
	"careerpath/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	start := time.Now()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger.SetLevel(appConfig.Log.Level)
	gin.SetMode(appConfig.Server.GinMode)

	// The model is loaded once and shared by every request
	store := artifact.NewStore(appConfig.Artifacts.Dir)
	service, err := predict.Load(store, predict.Options{PersonaMode: appConfig.Model.PersonaMode})
	if err != nil {
		if errors.HasCode(err, errors.CodeArtifactMissing) {
			log.Printf("No trained model in %s, run `careerpath train` first", store.Dir)
		}
		log.Fatalf("Failed to load model: %v", err)
	}

	server, err := ui.NewServer(service, store)
	if err != nil {
		log.Fatalf("Failed to create UI server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Ready in %s (%d careers, persona mode %s)", time.Since(start).Round(time.Millisecond),
		len(service.Classes()), service.PersonaMode())
	if err := server.Start(ctx, ":"+appConfig.Server.Port); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
