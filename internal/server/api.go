package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"backdrop/internal/settings"
)

const (
	// maxAdvance bounds the frames a single preview request may simulate.
	maxAdvance      = 600
	maxSettingsBody = 64 << 10
)

type capabilitiesResponse struct {
	Signals  settings.Signals  `json:"signals"`
	Tier     settings.Tier     `json:"tier"`
	Settings settings.Settings `json:"settings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handlePutSettings applies a partial update: fields absent from the body
// keep their current value. Decoding happens inside the store's update so
// concurrent requests cannot drop each other's fields.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSettingsBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read settings: " + err.Error()})
		return
	}
	var decodeErr error
	next, err := s.store.Modify(func(cur *settings.Settings) error {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cur); err != nil {
			decodeErr = fmt.Errorf("decode settings: %w", err)
			return decodeErr
		}
		return nil
	})
	switch {
	case decodeErr != nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: decodeErr.Error()})
	case err != nil:
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusOK, next)
	}
}

// handleCapabilities derives the initial settings a client with the given
// signals would start from. The user agent defaults to the request header.
func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sig := settings.Signals{UserAgent: q.Get("ua")}
	if sig.UserAgent == "" {
		sig.UserAgent = r.UserAgent()
	}
	if v := q.Get("memory"); v != "" {
		mem, err := strconv.ParseFloat(v, 64)
		if err != nil || mem < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "memory must be a non-negative number"})
			return
		}
		sig.DeviceMemoryGB = mem
	}
	if v := q.Get("reduced"); v != "" {
		reduced, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "reduced must be a boolean"})
			return
		}
		sig.PrefersReducedMotion = reduced
	}
	writeJSON(w, http.StatusOK, capabilitiesResponse{
		Signals:  sig,
		Tier:     settings.DetectCapabilities(sig),
		Settings: settings.Initial(sig),
	})
}

// handleFrame renders the preview engine to PNG. The advance parameter
// simulates that many animation frames first.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	advance := 0
	if v := r.URL.Query().Get("advance"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxAdvance {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "advance must be in [0, 600]"})
			return
		}
		advance = n
	}

	var buf bytes.Buffer
	var renderErr error
	err := s.loop.Call(r.Context(), func() {
		s.engine.SetVisible(true)
		defer s.engine.SetVisible(false)
		for range advance {
			s.loop.RunFrame()
		}
		s.engine.Render()
		if s.surface == nil {
			renderErr = errNoSurface
			return
		}
		renderErr = s.surface.EncodePNG(&buf)
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		s.log.Warn("frame render failed", "err", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

var errNoSurface = errors.New("no drawing surface")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
