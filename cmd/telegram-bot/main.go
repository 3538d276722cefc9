package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-budget-planner/internal/app"
	"meal-budget-planner/internal/config"
	"meal-budget-planner/internal/database"
	"meal-budget-planner/internal/ghost"
	"meal-budget-planner/internal/llm"
	"meal-budget-planner/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required for the bot")
	}

	ctx := context.Background()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	application := app.NewApp(cfg, db)

	if cfg.HasLLM() {
		var textGen llm.TextGenerator
		var embedGen llm.EmbeddingGenerator

		if cfg.GeminiAPIKey != "" {
			geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
			if err != nil {
				log.Fatalf("Failed to create Gemini client: %v", err)
			}
			defer geminiClient.Close()
			textGen = geminiClient
			embedGen = geminiClient
		}
		if cfg.GroqAPIKey != "" {
			textGen = llm.NewGroqClient(cfg.GroqAPIKey)
		}

		application.WithLLM(textGen, embedGen)
	}
	if cfg.HasGhost() {
		application.WithGhost(ghost.NewClient(cfg.GhostURL, cfg.GhostContentKey, cfg.GhostAdminKey))
	}

	bot, err := telegram.NewBot(cfg, application)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	// Without a webhook URL, fall back to long polling. Useful for local runs
	// where the bot has no public address.
	if cfg.TelegramWebhookURL == "" {
		log.Println("No webhook URL configured, polling for updates...")
		bot.Poll()
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
