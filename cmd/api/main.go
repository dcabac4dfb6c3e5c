package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"call-audit-go/internal/api"
	"call-audit-go/internal/audio"
	"call-audit-go/internal/config"
	"call-audit-go/internal/insights"
	"call-audit-go/internal/llm"
	"call-audit-go/internal/logger"
	"call-audit-go/internal/processor"
	"call-audit-go/internal/rubric"
	"call-audit-go/internal/whisper"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", api.ServiceName).Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	rb, err := rubric.ByVersion(cfg.RubricVersion)
	if err != nil {
		log.WithError(err).Fatal("invalid rubric version")
	}
	log.WithField("rubric", rb.Version).WithField("parameters", len(rb.Parameters)).Info("rubric loaded")

	driveClient, err := audio.NewDriveClient(context.Background(), cfg.GoogleCredentials)
	if err != nil {
		log.WithError(err).Fatal("failed to build drive client")
	}

	chat := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel)
	proc := processor.New(
		audio.NewSource(driveClient),
		audio.NewSegmenter(cfg.ChunkSeconds),
		whisper.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.TranscribeModel),
		chat,
		rb,
	)
	server := api.NewServer(proc, insights.NewGenerator(chat), rb)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
		// audits download, segment and transcribe before answering, so the
		// write timeout has to cover the whole pipeline
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
