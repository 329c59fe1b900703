package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/ntbapp/ntb-server/internal/http/response"
)

//go:embed templates/*.html
var templates embed.FS

// CacheNoStore disables caching for per-session content like the stat
// table image.
const CacheNoStore = "no-cache"

// handleIndex serves the game page.
// GET /
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		s.logger.Error("Failed to parse index template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, nil); err != nil {
		s.logger.Error("Failed to execute index template", "error", err)
	}
}

// handleStatsImage serves the current round's stat table as a PNG. The
// player name appears in the title only after the reveal.
// GET /stats_image
func (s *Server) handleStatsImage(w http.ResponseWriter, r *http.Request) {
	token := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		token = c.Value
	}

	sess, err := s.manager.GetOrCreate(token)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if sess.ID != token {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	img, err := sess.Image()
	if err != nil {
		s.logger.Error("Failed to render stat table", "error", err, "session", sess.ID)
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", CacheNoStore)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		s.logger.Debug("Failed to write image response", "error", err)
	}
}
