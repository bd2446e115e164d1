package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maskforge/maskforge/pkg/buildinfo"
	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/library"
	"github.com/maskforge/maskforge/pkg/netlist"
	"github.com/maskforge/maskforge/pkg/pipeline"
)

// componentInfo describes one registered factory.
type componentInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Defaults    any    `json:"defaults"`
}

// buildRequest is the body of POST /v1/builds.
type buildRequest struct {
	Component string         `json:"component"`
	Params    map[string]any `json:"params,omitempty"`
	Refresh   bool           `json:"refresh,omitempty"`
}

// buildResponse returns the extracted design plus build metadata. ID is
// set when the server persists builds to a design store.
type buildResponse struct {
	ID       string         `json:"id,omitempty"`
	Cell     string         `json:"cell"`
	Factory  string         `json:"factory"`
	Digest   string         `json:"digest"`
	Cells    int            `json:"cells"`
	Polygons int            `json:"polygons"`
	Ports    int            `json:"ports"`
	Cached   bool           `json:"cached"`
	Design   netlist.Design `json:"design"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	names := s.runner.Registry.Names()
	infos := make([]componentInfo, 0, len(names))
	for _, name := range names {
		f, err := s.runner.Registry.Get(name)
		if err != nil {
			continue
		}
		infos = append(infos, componentInfo{Name: f.Name, Description: f.Description, Defaults: f.Defaults()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"components": infos})
}

func (s *Server) handleComponent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	f, err := s.runner.Registry.Get(name)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeNotFound, err, "component %q", name))
		return
	}
	writeJSON(w, http.StatusOK, componentInfo{Name: f.Name, Description: f.Description, Defaults: f.Defaults()})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeConfiguration, err, "decode build request"))
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Factory: req.Component,
		Params:  req.Params,
		Refresh: req.Refresh,
		Formats: []string{pipeline.FormatNetlist},
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := buildResponse{
		Cell:     res.Component.Name(),
		Factory:  res.Key.Factory(),
		Digest:   res.Key.Digest(),
		Cells:    res.Stats.Cells,
		Polygons: res.Stats.Polygons,
		Ports:    res.Stats.Ports,
		Cached:   res.CacheInfo.NetlistHit,
		Design:   res.Design,
	}
	if s.store != nil {
		rec := library.NewRecord(res.Key, res.Design)
		if err := s.store.Put(r.Context(), rec); err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.ID = rec.ID
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDesigns(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"designs": recs})
}

func (s *Server) handleDesign(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDesignDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDesignSVG rebuilds the stored design through the pipeline and
// returns the rendered mask. The rebuild is digest-stable, so a warm
// cache serves this without recomputing geometry.
func (s *Server) handleDesignSVG(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var params map[string]any
	if rec.Params != "" {
		if err := json.Unmarshal([]byte(rec.Params), &params); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "decode stored parameters"))
			return
		}
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Factory: rec.Factory,
		Params:  params,
		Formats: []string{pipeline.FormatSVG},
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[pipeline.FormatSVG])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: string(errors.GetCode(err))})
}

// statusFor maps error families to HTTP statuses: missing resources are
// 404, configuration and parameter errors are the caller's fault (400),
// everything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.IsConfiguration(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
