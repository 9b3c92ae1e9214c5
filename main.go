package main

import (
	"context"
	"log"
	"net/http"

	"echoes/config"
	"echoes/gemini"
	"echoes/handlers"
	"echoes/session"
	"echoes/speech"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Parse()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	story := gemini.NewStoryClient(client, cfg.StoryModel)
	images := gemini.NewImageClient(client, cfg.ImageModel)
	narrator := speech.New(cfg.SpeechProvider, cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoice)

	manager := session.NewManager(story, images, narrator)
	defer manager.Close()

	h := &handlers.Handler{Manager: manager}

	mux := http.NewServeMux()

	fs := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	mux.HandleFunc("/", h.Index)
	mux.HandleFunc("/config", h.Config)
	mux.HandleFunc("/start", h.Start)
	mux.HandleFunc("/turn", h.Turn)
	mux.HandleFunc("/wait", h.Wait)
	mux.HandleFunc("/draft", h.Draft)
	mux.HandleFunc("/state", h.State)
	mux.HandleFunc("/restart", h.Restart)
	mux.HandleFunc("/export", h.Export)
	mux.HandleFunc("/export.pdf", h.ExportPDF)
	mux.HandleFunc("/import", h.Import)
	mux.HandleFunc("/audio/", h.Audio)

	log.Printf("Listening on http://%s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, mux))
}
