package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"grievance-insights-go/internal/api"
	"grievance-insights-go/internal/classifier"
	"grievance-insights-go/internal/config"
	"grievance-insights-go/internal/intake"
	"grievance-insights-go/internal/logger"
	"grievance-insights-go/internal/pipeline"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "grievance-insights-go").Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	kw, err := cfg.Classifier()
	if err != nil {
		log.WithError(err).Fatal("failed to load keyword tables")
	}
	log.WithField("keywords_path", cfg.KeywordsPath).
		WithField("match_mode", kw.MatchMode).
		Info("keyword tables loaded")
	scorer := classifier.New(kw)

	// GET /analytics prefers the remote intake service over a local workbook.
	var src pipeline.Source
	switch {
	case cfg.SourceURL != "":
		src = intake.NewClient(cfg.SourceURL, cfg.IntakeTimeout)
		log.WithField("source_url", cfg.SourceURL).Info("using remote grievance source")
	case cfg.DatasetPath != "":
		src = pipeline.WorkbookSource{Path: cfg.DatasetPath}
		log.WithField("dataset_path", cfg.DatasetPath).Info("using workbook grievance source")
	default:
		log.Info("no grievance source configured; GET /analytics disabled")
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.New(scorer, src, log).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
