package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"davis-triage/internal/agent"
	"davis-triage/internal/config"
	"davis-triage/internal/consultation"
	"davis-triage/internal/platform/telegram"
	"davis-triage/internal/report"
	"davis-triage/internal/session"
	"davis-triage/internal/web"
)

func main() {
	// 1. Configuration
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.New()

	// 2. Clients
	aiClient := agent.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel, cfg.WhisperModel)

	var tgClient report.TelegramClient
	if cfg.NotifyEnabled() {
		tgClient = telegram.NewClient(cfg.TelegramBotToken)
		log.Println("Doctor notification channel enabled.")
	} else {
		log.Println("Warning: TELEGRAM_BOT_TOKEN or DOCTOR_CHAT_ID is not set. Urgent cases will not be forwarded.")
	}

	// 3. Services
	sessions := session.NewManager()
	reportSvc := report.NewService(tgClient, cfg.DoctorChatID)
	consultationSvc := consultation.NewService(aiClient, aiClient, reportSvc, cfg.Language, cfg.AudioFilePath)
	consultationHandler := consultation.NewHandler(consultationSvc, sessions, reportSvc)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for the form when served from elsewhere
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-Session-ID")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", web.Index)
	r.Route("/api", func(r chi.Router) {
		consultation.RegisterRoutes(r, consultationHandler)
	})

	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
