package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/kolam/pkg/design"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/pipeline"
)

// Response headers describing a render.
const (
	HeaderCache    = "X-Kolam-Cache"
	HeaderFallback = "X-Kolam-Fallback"
)

type renderRequest struct {
	Params    kolam.Params `json:"params"`
	Width     int          `json:"width,omitempty"`
	Height    int          `json:"height,omitempty"`
	Transform string       `json:"transform,omitempty"`
	Markup    string       `json:"markup,omitempty"`
	Format    string       `json:"format,omitempty"`
	Scale     float64      `json:"scale,omitempty"`
	MaxSize   int          `json:"maxSize,omitempty"`
	Title     string       `json:"title,omitempty"`
	Refresh   bool         `json:"refresh,omitempty"`
}

type generateRequest struct {
	Params  kolam.Params `json:"params"`
	Design  *design.Spec `json:"design,omitempty"`
	Refresh bool         `json:"refresh,omitempty"`
}

type imageRequest struct {
	Image   string `json:"image"`
	Refresh bool   `json:"refresh,omitempty"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.healthy.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req := renderRequest{Params: kolam.DefaultParams(), Format: pipeline.FormatSVG}
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Params:    req.Params,
		Width:     req.Width,
		Height:    req.Height,
		Transform: req.Transform,
		Markup:    req.Markup,
		Formats:   []string{req.Format},
		Scale:     req.Scale,
		MaxSize:   req.MaxSize,
		Title:     req.Title,
		Refresh:   req.Refresh,
		Logger:    s.logger.With("id", RequestIDFromContext(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentType(req.Format))
	h.Set(HeaderCache, cacheStatus(res.CacheInfo.RenderHit))
	if res.Fallback() {
		h.Set(HeaderFallback, "true")
	}
	data := res.Artifacts[req.Format]
	h.Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.remote == nil {
		s.writeError(w, r, errNoRemote)
		return
	}
	req := generateRequest{Params: kolam.DefaultParams()}
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var cfg design.Config
	if req.Design != nil {
		c, err := req.Design.Config()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		cfg = c
	}
	markup, err := s.remote.Generate(r.Context(), req.Params.WithDefaults(), cfg, req.Refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMarkup(w, markup)
}

func (s *Server) handleGenerateFromImage(w http.ResponseWriter, r *http.Request) {
	if s.remote == nil {
		s.writeError(w, r, errNoRemote)
		return
	}
	var req imageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	markup, err := s.remote.GenerateFromImage(r.Context(), req.Image, req.Refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMarkup(w, markup)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.remote == nil {
		s.writeError(w, r, errNoRemote)
		return
	}
	var req imageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.remote.Analyze(r.Context(), req.Image, req.Refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

var errNoRemote = errors.New(errors.ErrCodeUnsupported, "no design service configured")

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeMarkup(w http.ResponseWriter, markup string) {
	w.Header().Set("Content-Type", pipeline.ContentType(pipeline.FormatSVG))
	io.WriteString(w, markup)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request error", "id", RequestIDFromContext(r.Context()), "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGrid, errors.ErrCodeInvalidStroke,
		errors.ErrCodeInvalidSymmetry, errors.ErrCodeInvalidDesign, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRemote, errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
