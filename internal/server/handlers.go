package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/fsgraph/pkg/errors"
	"github.com/matzehuels/fsgraph/pkg/observability"
	"github.com/matzehuels/fsgraph/pkg/scan"
	"github.com/matzehuels/fsgraph/pkg/snapshot"
	"github.com/matzehuels/fsgraph/pkg/store"
)

// scanRequest is the body accepted by POST /api/scan.
type scanRequest struct {
	Path           string   `json:"path"`
	MaxDepth       int      `json:"max_depth,omitempty"`
	IncludeHidden  bool     `json:"include_hidden,omitempty"`
	FollowSymlinks bool     `json:"follow_symlinks,omitempty"`
	Ignore         []string `json:"ignore,omitempty"`
	UseGitignore   bool     `json:"use_gitignore,omitempty"`
}

// snapshotSummary is the list representation of a snapshot, without the graph.
type snapshotSummary struct {
	ID        string     `json:"id"`
	Path      string     `json:"path"`
	CreatedAt time.Time  `json:"created_at"`
	Stats     scan.Stats `json:"stats"`
}

func summarize(s *snapshot.Snapshot) snapshotSummary {
	return snapshotSummary{ID: s.ID, Path: s.Path, CreatedAt: s.CreatedAt, Stats: s.Stats}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "fsgraph-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := errors.ValidateScanPath(req.Path); err != nil {
		writeError(w, err)
		return
	}

	observability.Scan().OnScanStart(r.Context(), req.Path)
	start := time.Now()
	res, err := scan.Scan(r.Context(), req.Path, scan.Options{
		MaxDepth:       req.MaxDepth,
		IncludeHidden:  req.IncludeHidden,
		FollowSymlinks: req.FollowSymlinks,
		Ignore:         req.Ignore,
		UseGitignore:   req.UseGitignore,
	})
	nodes := 0
	if res != nil {
		nodes = res.Graph.NodeCount()
	}
	observability.Scan().OnScanComplete(r.Context(), req.Path, nodes, time.Since(start), err)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidPath, err, "scan %s", req.Path))
		return
	}

	snap, err := snapshot.Take(req.Path, res)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "capture snapshot"))
		return
	}
	if err := s.store.Save(r.Context(), snap); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "save snapshot"))
		return
	}

	s.logger.Info("scan complete",
		"path", req.Path,
		"snapshot", snap.ID,
		"files", snap.Stats.Files,
		"dirs", snap.Stats.Dirs,
	)
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "list snapshots"))
		return
	}
	summaries := make([]snapshotSummary, 0, len(snaps))
	for _, snap := range snaps {
		summaries = append(summaries, summarize(snap))
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		writeError(w, errors.New(errors.ErrCodeSnapshotNotFound, "no snapshot with id %s", id))
		return
	}
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "get snapshot %s", id))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		writeError(w, errors.New(errors.ErrCodeSnapshotNotFound, "no snapshot with id %s", id))
		return
	}
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "delete snapshot %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// errorBody is the JSON shape of all error responses.
type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidDepth:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSnapshotNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	var body errorBody
	body.Error.Code = code
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, statusFor(code), body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
