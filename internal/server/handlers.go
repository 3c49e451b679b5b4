package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hyperjump/keiyaku/internal/analyzer"
	"github.com/hyperjump/keiyaku/internal/export"
	"github.com/hyperjump/keiyaku/internal/llm"
	"github.com/hyperjump/keiyaku/internal/models"
	"github.com/hyperjump/keiyaku/internal/qa"
)

// maxUploadSize caps uploaded contract files.
const maxUploadSize = 32 * 1024 * 1024 // 32MB

// credentialHeader carries the caller's API credential. It is read per
// request and never stored or logged.
const credentialHeader = "X-API-Key"

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	ext := filepath.Ext(header.Filename)
	text, err := s.extractor.ExtractBytes(content, ext)
	if err != nil {
		s.logger.Warn("extraction failed", zap.String("file", header.Filename), zap.Error(err))
		s.respondError(w, http.StatusUnprocessableEntity, "could not extract text: "+err.Error())
		return
	}

	sess := s.store.Create(header.Filename, text)
	s.logger.Info("document uploaded",
		zap.String("session_id", sess.ID),
		zap.String("source", sess.Source),
		zap.Int("characters", len(text)))
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": sess.ID,
		"source":     sess.Source,
		"characters": len(text),
	})
}

type analyzeRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess, ok := s.store.Get(req.SessionID)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}

	credential := r.Header.Get(credentialHeader)
	rec, rendered, err := s.analyzer.Analyze(r.Context(), sess.Text, credential)
	if err != nil {
		s.respondAnalysisError(w, err)
		return
	}
	s.store.SetAnalysis(sess.ID, rec, rendered)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": sess.ID,
		"record":     rec,
		"report":     rendered,
	})
}

func (s *Server) respondAnalysisError(w http.ResponseWriter, err error) {
	var malformed *analyzer.MalformedResponseError
	var capErr *llm.CapabilityError
	switch {
	case errors.Is(err, analyzer.ErrMissingCredential):
		s.respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, analyzer.ErrDocumentTooShort):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &malformed):
		s.respondError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &capErr):
		s.logger.Error("capability failure", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error("analysis failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

type askRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// An unknown session means no document; the question check still runs
	// first inside the service.
	var text string
	if sess, ok := s.store.Get(req.SessionID); ok {
		text = sess.Text
	}

	credential := r.Header.Get(credentialHeader)
	answer, err := s.qa.Ask(r.Context(), req.Question, text, credential)
	if err != nil {
		s.respondAskError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, models.QAExchange{
		Question: req.Question,
		Answer:   answer,
	})
}

func (s *Server) respondAskError(w http.ResponseWriter, err error) {
	var capErr *llm.CapabilityError
	switch {
	case errors.Is(err, qa.ErrNoQuestion):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, qa.ErrNoDocument):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, qa.ErrMissingCredential):
		s.respondError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &capErr):
		s.logger.Error("capability failure", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error("ask failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

type exportRequest struct {
	SessionID string `json:"session_id"`
	Format    string `json:"format"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess, ok := s.store.Get(req.SessionID)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}

	var path string
	var err error
	switch req.Format {
	case "json":
		path, err = s.exporter.JSON(sess.Record)
	case "text":
		path, err = s.exporter.Text(sess.Record)
	default:
		s.respondError(w, http.StatusBadRequest, "format must be json or text")
		return
	}
	if err != nil {
		if errors.Is(err, export.ErrNoAnalysis) {
			s.respondError(w, http.StatusConflict, err.Error())
			return
		}
		s.logger.Error("export failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"path":   path,
		"format": req.Format,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.store.Get(r.URL.Query().Get("session_id"))
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if sess.Report == nil {
		s.respondError(w, http.StatusConflict, "no analysis available, analyze the contract first")
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(sess.Report.Markdown))
	case "plain":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(sess.Report.Plain))
	default:
		s.respondError(w, http.StatusBadRequest, "format must be markdown or plain")
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"sessions": s.store.Count(),
	}
	if diskBytes, err := export.DirSizeBytes(s.exportDir); err == nil {
		resp["export_disk_usage_bytes"] = diskBytes
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
