package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jvalaj/gridai/pkg/cache"
	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/errors"
	"github.com/jvalaj/gridai/pkg/layout"
	"github.com/jvalaj/gridai/pkg/render"
	"github.com/jvalaj/gridai/pkg/store"
)

// LayoutResponse is the body returned by layout and diagram endpoints.
type LayoutResponse struct {
	ID     string        `json:"id,omitempty"`
	Spec   diagram.Spec  `json:"spec"`
	Layout layout.Result `json:"layout"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLayout computes a layout for the posted spec without persisting it.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	spec, err := decodeSpec(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res := s.computeCached(r, spec)
	writeJSON(w, http.StatusOK, LayoutResponse{ID: spec.ID, Spec: spec, Layout: res})
}

// handlePutDiagram stores a spec under the given id and computes its layout.
func (s *Server) handlePutDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateDiagramID(id); err != nil {
		s.writeError(w, r, err)
		return
	}

	spec, err := decodeSpec(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	spec.ID = id

	res := s.computeCached(r, spec)

	rec := store.NewRecord(spec)
	rec.Layout = &res
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "store diagram %s", id))
		return
	}

	writeJSON(w, http.StatusOK, LayoutResponse{ID: id, Spec: spec, Layout: res})
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadDiagram(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := LayoutResponse{ID: rec.ID, Spec: rec.Spec}
	if rec.Layout != nil {
		resp.Layout = *rec.Layout
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateDiagramID(id); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			s.writeError(w, r, errors.New(errors.ErrCodeDiagramNotFound, "diagram %s not found", id))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "delete diagram %s", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "list diagrams"))
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

func (s *Server) handleDiagramSVG(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadDiagram(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res := s.computeCached(r, rec.Spec)
	theme := render.ThemeByName(r.URL.Query().Get("theme"))
	svg := render.RenderSVG(rec.Spec, res, render.WithTheme(theme), render.WithConfig(s.cfg))

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) loadDiagram(r *http.Request) (*store.Record, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateDiagramID(id); err != nil {
		return nil, err
	}

	rec, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		return nil, errors.New(errors.ErrCodeDiagramNotFound, "diagram %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load diagram %s", id)
	}
	return rec, nil
}

// computeCached runs layout with a cache in front. Cache failures are
// logged and ignored: layout always succeeds.
func (s *Server) computeCached(r *http.Request, spec diagram.Spec) layout.Result {
	ctx := r.Context()
	key := s.layoutKey(spec)

	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		var res layout.Result
		if err := json.Unmarshal(data, &res); err == nil {
			return res
		}
	} else if err != nil {
		s.logger.Warn("layout cache get failed", "err", err)
	}

	res := s.engine.Compute(ctx, spec)

	if data, err := json.Marshal(res); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			s.logger.Warn("layout cache set failed", "err", err)
		}
	}
	return res
}

func (s *Server) layoutKey(spec diagram.Spec) string {
	data, _ := diagram.MarshalSpec(spec)
	return s.keyer.LayoutKey(cache.Hash(data), cache.LayoutKeyOpts{
		DiagramType: string(spec.Type),
		Engine:      s.engineName,
		ConfigHash:  s.cfgHash,
	})
}

func configHash(cfg layout.Config) string {
	data, _ := json.Marshal(cfg)
	return cache.Hash(data)
}

func decodeSpec(r *http.Request) (diagram.Spec, error) {
	defer r.Body.Close()

	// Unknown fields pass through: producers may attach metadata the
	// layout engine does not know about, and that is not a client error.
	var spec diagram.Spec
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&spec); err != nil {
		return diagram.Spec{}, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode spec")
	}
	return spec.Clean(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSpec, errors.ErrCodeInvalidType,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeDiagramNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	if status >= 500 {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
