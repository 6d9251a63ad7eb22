package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/genericusername1080/worldcom-sim/internal/config"
	"github.com/genericusername1080/worldcom-sim/internal/game"
	"github.com/google/generative-ai-go/genai"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("bad configuration", "err", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Without an API key the game runs fully offline on the fixed
	// consultant fallback text.
	var gen game.ContentGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			logger.Error("gemini client", "err", err)
			os.Exit(1)
		}
		defer client.Close()
		gen = client.GenerativeModel(cfg.GeminiModel)
		logger.Info("commentary enabled", "model", cfg.GeminiModel)
	} else {
		logger.Warn("GEMINI_API_KEY not set, consultant runs on fallback text")
	}

	ebiten.SetWindowTitle("The WorldCom Files")
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	if err := ebiten.RunGame(game.New(logger, gen)); err != nil {
		logger.Error("game exited", "err", err)
		os.Exit(1)
	}
}
