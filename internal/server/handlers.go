package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/growthchart/pkg/buildinfo"
	"github.com/matzehuels/growthchart/pkg/chart/layout"
	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/config"
	"github.com/matzehuels/growthchart/pkg/errors"
	"github.com/matzehuels/growthchart/pkg/httputil"
	"github.com/matzehuels/growthchart/pkg/pipeline"
)

// chartRequest is the body of the layout and render endpoints.
type chartRequest struct {
	Data   *table.Raw      `json:"data"`
	Config json.RawMessage `json:"config,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), *opts.Data, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	log.FromContext(r.Context()).Debug("layout", "cached", hit, "columns", len(l.Columns))

	data, err := layout.Marshal(l)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(layoutStatus(l))
	_, _ = w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidFormat, "%v", err))
		return
	}

	opts, err := s.decode(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Title = r.URL.Query().Get("title")
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number"))
			return
		}
		opts.Scale = scale
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	log.FromContext(r.Context()).Debug("render", "format", format,
		"layout_cached", res.CacheInfo.LayoutHit, "render_cached", res.CacheInfo.RenderHit)

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(layoutStatus(res.Layout))
	_, _ = w.Write(res.Artifacts[format])
}

// decode reads a chart request and merges its options over the server
// configuration.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var req chartRequest
	if err := httputil.DecodeJSON(w, r, s.maxBodyBytes(), &req); err != nil {
		return pipeline.Options{}, err
	}
	if req.Data == nil {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "request has no data")
	}

	cfg, err := mergeLayout(s.cfg, req.Config)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Data:   req.Data,
		Config: cfg,
		Logger: log.FromContext(r.Context()),
	}, nil
}

// mergeLayout overlays a partial JSON layout configuration on base.
func mergeLayout(base config.File, partial json.RawMessage) (config.File, error) {
	if len(partial) == 0 {
		return base, nil
	}
	cfg := base
	if cfg.Version == 0 {
		cfg = config.Default()
	}
	lc := cfg.Layout
	dec := json.NewDecoder(bytes.NewReader(partial))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&lc); err != nil {
		return config.File{}, errors.New(errors.ErrCodeInvalidConfig, "decode layout config: %v", err)
	}
	if err := lc.Validate(); err != nil {
		return config.File{}, err
	}
	cfg.Layout = lc
	return cfg, nil
}

func layoutStatus(l *layout.Layout) int {
	if l.Error != nil {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}
