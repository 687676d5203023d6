// Package api serves the result page and its JSON and image companions.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/quantumfamily/archetype/internal/httputil"
	"github.com/quantumfamily/archetype/internal/monitoring"
	"github.com/quantumfamily/archetype/internal/render"
	"github.com/quantumfamily/archetype/internal/roles"
	"github.com/quantumfamily/archetype/internal/scene"
	"github.com/quantumfamily/archetype/internal/survey"
	"github.com/quantumfamily/archetype/internal/version"
)

const (
	msgMissingUser = "No user_id provided in the URL."
	msgNoResults   = "No results found for user: "
	msgFetchFailed = "An error occurred while fetching data from the API: "
	msgProcessing  = "There was an error processing your data. Please check the sheet for correct column headers. Details: "
)

type Server struct {
	source       survey.Source
	catalog      *roles.Catalog
	scene        *scene.Scene
	renderer     *render.Renderer
	parentOrigin string
}

func NewServer(src survey.Source, catalog *roles.Catalog, sc *scene.Scene, r *render.Renderer, parentOrigin string) *Server {
	return &Server{
		source:       src,
		catalog:      catalog,
		scene:        sc,
		renderer:     r,
		parentOrigin: parentOrigin,
	}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.showResult)
	mux.HandleFunc("/api/result", s.resultJSON)
	mux.HandleFunc("/api/scores.png", s.scoresPNG)
	mux.HandleFunc("/health", s.health)
	return mux
}

// Handler wraps mux with request logging and the frame headers that let the
// parent site embed every response.
func (s *Server) Handler(mux http.Handler) http.Handler {
	return LoggingMiddleware(FrameHeaders(s.parentOrigin)(mux))
}

// lookupError carries the user-facing message and JSON status for a failed
// lookup.
type lookupError struct {
	status int
	msg    string
	err    error
}

func (e *lookupError) Error() string { return e.msg }

func (e *lookupError) Unwrap() error { return e.err }

// resolve fetches the latest response for userID and maps it to a role.
func (s *Server) resolve(ctx context.Context, userID string) (roles.Result, error) {
	if userID == "" {
		return roles.Result{}, &lookupError{status: http.StatusBadRequest, msg: msgMissingUser}
	}

	resp, err := survey.Lookup(ctx, s.source, userID)
	if err != nil {
		var fe *survey.FetchError
		switch {
		case errors.As(err, &fe):
			return roles.Result{}, &lookupError{status: http.StatusBadGateway, msg: msgFetchFailed + fe.Err.Error(), err: err}
		case errors.Is(err, survey.ErrNoRows):
			return roles.Result{}, &lookupError{status: http.StatusNotFound, msg: msgNoResults + userID, err: err}
		default:
			return roles.Result{}, &lookupError{status: http.StatusUnprocessableEntity, msg: msgProcessing + err.Error(), err: err}
		}
	}

	res, err := roles.Resolve(s.catalog, resp.Scores, resp.Band)
	if err != nil {
		return roles.Result{}, &lookupError{status: http.StatusUnprocessableEntity, msg: msgProcessing + err.Error(), err: err}
	}
	return res, nil
}

func userID(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("user_id"))
}

func isRead(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

// showResult serves the HTML page. Every lookup failure is reported as a
// short message with status 200 so the embedding iframe always shows it.
func (s *Server) showResult(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !isRead(r) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var buf bytes.Buffer
	id := userID(r)
	res, err := s.resolve(r.Context(), id)
	if err != nil {
		msg := msgProcessing + err.Error()
		var le *lookupError
		if errors.As(err, &le) {
			msg = le.msg
		}
		monitoring.Logf("result for %q: %s", id, msg)
		if err := s.renderer.RenderMessage(&buf, msg); err != nil {
			s.renderFailed(w, err)
			return
		}
		httputil.WriteHTML(w, buf.Bytes())
		return
	}

	if err := s.renderer.RenderResult(&buf, res, s.scene); err != nil {
		s.renderFailed(w, err)
		return
	}
	httputil.WriteHTML(w, buf.Bytes())
}

func (s *Server) renderFailed(w http.ResponseWriter, err error) {
	monitoring.Logf("render failed: %v", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func writeLookupError(w http.ResponseWriter, err error) {
	var le *lookupError
	if errors.As(err, &le) {
		httputil.WriteJSONError(w, le.status, le.msg)
		return
	}
	httputil.WriteJSONError(w, http.StatusInternalServerError, err.Error())
}

type resultResponse struct {
	UserID          string       `json:"user_id"`
	Band            int          `json:"band"`
	Role            string       `json:"role"`
	GameName        string       `json:"game_name"`
	LeadershipTitle string       `json:"leadership_title"`
	Color           string       `json:"color"`
	Scores          roles.Scores `json:"scores"`
}

func (s *Server) resultJSON(w http.ResponseWriter, r *http.Request) {
	if !isRead(r) {
		httputil.MethodNotAllowed(w)
		return
	}
	id := userID(r)
	res, err := s.resolve(r.Context(), id)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	httputil.WriteJSONOK(w, resultResponse{
		UserID:          id,
		Band:            int(res.Band),
		Role:            res.Role.Name,
		GameName:        res.Role.GameName,
		LeadershipTitle: res.Role.LeadershipTitle,
		Color:           res.Role.Color,
		Scores:          res.Scores,
	})
}

func (s *Server) scoresPNG(w http.ResponseWriter, r *http.Request) {
	if !isRead(r) {
		httputil.MethodNotAllowed(w)
		return
	}
	res, err := s.resolve(r.Context(), userID(r))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	img, err := render.ScorePlot(res)
	if err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("score plot: %v", err))
		return
	}
	httputil.WritePNG(w, img)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if !isRead(r) {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, map[string]string{
		"status":     "ok",
		"version":    version.Version,
		"git_sha":    version.GitSHA,
		"build_time": version.BuildTime,
	})
}
