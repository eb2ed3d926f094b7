package home

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"bookreco-backend/models/books"
	"bookreco-backend/services/catalog"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexPage struct {
	Books []books.Book
}

// Handler serves the catalog listing.
type Handler struct {
	store  catalog.BookStore
	logger *zap.Logger
}

func NewHandler(store catalog.BookStore, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.ListAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list books", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Render into a buffer so a template error can still become a 500.
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, indexPage{Books: all}); err != nil {
		h.logger.Error("Failed to render catalog", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
