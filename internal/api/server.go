// Package api exposes classification and batch analytics over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"grievance-insights-go/internal/classifier"
	"grievance-insights-go/internal/logger"
	"grievance-insights-go/internal/pipeline"
	"grievance-insights-go/internal/processor"
	"grievance-insights-go/internal/types"
)

const maxBodyBytes = 4 << 20

type Server struct {
	scorer *classifier.Scorer
	source pipeline.Source
	log    *logger.Logger

	// SourceTimeout bounds a GET /analytics run against the configured source.
	SourceTimeout time.Duration
}

// New returns a Server. source may be nil, in which case GET /analytics
// reports 503.
func New(scorer *classifier.Scorer, source pipeline.Source, log *logger.Logger) *Server {
	return &Server{scorer: scorer, source: source, log: log, SourceTimeout: 60 * time.Second}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		s.log.WithRequest(r).Debug("health check")
		fmt.Fprint(w, "ok")
	})

	mux.HandleFunc("POST /classify", s.handleClassify)
	mux.HandleFunc("GET /classify", s.handleClassify)
	mux.HandleFunc("POST /analytics", s.handleAnalyticsBatch)
	mux.HandleFunc("GET /analytics", s.handleAnalyticsSource)
	return mux
}

// handleClassify accepts a JSON grievance body, or title/description query
// parameters on GET.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "classify")

	var rec types.GrievanceRecord
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		rec.Title = q.Get("title")
		rec.Description = q.Get("description")
	} else if err := decodeBody(w, r, &rec); err != nil {
		reqLog.WithError(err).Warn("bad classify request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := processor.Process(rec, s.scorer)
	reqLog.WithField("grievance_id", res.ID).
		WithField("severity", res.Classification.Severity).
		WithField("confidence", res.Classification.Confidence).
		Info("grievance classified")
	writeJSON(w, http.StatusOK, res, reqLog)
}

func (s *Server) handleAnalyticsBatch(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "analytics")

	var records []types.GrievanceRecord
	if err := decodeBody(w, r, &records); err != nil {
		reqLog.WithError(err).Warn("bad analytics request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := pipeline.Run(r.Context(), pipeline.StaticSource(records), s.scorer)
	if err != nil {
		reqLog.WithError(err).Error("pipeline failed")
		http.Error(w, "analytics failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rep, reqLog)
}

func (s *Server) handleAnalyticsSource(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "analytics")
	if s.source == nil {
		reqLog.Warn("no grievance source configured")
		http.Error(w, "no grievance source configured", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.SourceTimeout)
	defer cancel()
	rep, err := pipeline.Run(ctx, s.source, s.scorer)
	if err != nil {
		reqLog.WithError(err).Warn("source fetch failed")
		http.Error(w, "grievance source unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, rep, reqLog)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any, log *logrus.Entry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}
