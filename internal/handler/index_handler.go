package handler

import (
	"html/template"
	"net/http"
	"time"

	"pantry/internal/model"

	"github.com/rs/zerolog"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Pantry</title></head>
<body>
<h1>Pantry</h1>
<p>Today is {{.Today}}.</p>
<ul>
<li><a href="/products">/products</a></li>
<li><a href="/recipes">/recipes</a></li>
<li><a href="/expired">/expired</a></li>
<li><a href="/expiring">/expiring</a></li>
<li><a href="/makeable">/makeable</a></li>
</ul>
</body>
</html>
`))

// IndexHandler serves the landing page.
type IndexHandler struct {
	now    func() time.Time
	logger zerolog.Logger
}

// NewIndexHandler creates a new landing page handler.
func NewIndexHandler(logger zerolog.Logger) *IndexHandler {
	return &IndexHandler{
		now:    time.Now,
		logger: logger.With().Str("handler", "index").Logger(),
	}
}

// Index handles GET / requests. Any other unmatched path is a 404.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "not found", h.logger)
		return
	}
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Today string }{Today: h.now().Format("Monday, January 2, 2006")}
	if err := indexTemplate.Execute(w, data); err != nil {
		h.logger.Error().Err(err).Msg("failed to render index page")
	}
}
