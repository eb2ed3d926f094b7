package recommendations

import (
	"errors"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"go.uber.org/zap"

	"bookreco-backend/controllers/respond"
	"bookreco-backend/models/recommend"
	"bookreco-backend/services/catalog"
	"bookreco-backend/services/similarity"
)

// ErrBadRequest is returned by DecodeRequest for a missing or malformed
// book_id.
var ErrBadRequest = errors.New("invalid book_id")

// maxFormMemory bounds the in-memory part of a multipart body.
const maxFormMemory = 1 << 20

// Handler serves POST /recommend.
type Handler struct {
	store    catalog.BookStore
	ranker   similarity.Ranker
	limit    int
	logger   *zap.Logger
	decoder  *schema.Decoder
	validate *validator.Validate
}

func NewHandler(store catalog.BookStore, ranker similarity.Ranker, limit int, logger *zap.Logger) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		store:    store,
		ranker:   ranker,
		limit:    limit,
		logger:   logger,
		decoder:  decoder,
		validate: validator.New(),
	}
}

// DecodeRequest reads book_id from a urlencoded or multipart body. The query
// string is ignored and only the first book_id value counts.
func (h *Handler) DecodeRequest(r *http.Request) (recommend.RecommendationRequest, error) {
	var req recommend.RecommendationRequest
	if err := parseBody(r); err != nil {
		return req, errors.Join(ErrBadRequest, err)
	}

	form := url.Values{}
	if values := r.PostForm["book_id"]; len(values) > 0 {
		form.Set("book_id", values[0])
	}
	if err := h.decoder.Decode(&req, form); err != nil {
		return req, errors.Join(ErrBadRequest, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return req, errors.Join(ErrBadRequest, err)
	}
	return req, nil
}

func parseBody(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.ParseForm()
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

// Recommend handles POST /recommend
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	req, err := h.DecodeRequest(r)
	if err != nil {
		h.logger.Debug("Rejected recommend request", zap.Error(err))
		respond.Error(w, http.StatusBadRequest, "Invalid book_id")
		return
	}

	ctx := r.Context()
	book, err := h.store.Get(ctx, req.BookID)
	if errors.Is(err, catalog.ErrBookNotFound) {
		respond.Error(w, http.StatusNotFound, "Book not found")
		return
	}
	if err != nil {
		h.internalError(w, "Failed to get book", err, req.BookID)
		return
	}

	all, err := h.store.ListAll(ctx)
	if err != nil {
		h.internalError(w, "Failed to list books", err, req.BookID)
		return
	}

	ranked, err := h.ranker.Rank(book.ID, all, h.limit)
	if errors.Is(err, similarity.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "Book not found")
		return
	}
	if err != nil {
		h.internalError(w, "Failed to rank books", err, req.BookID)
		return
	}

	resp := recommend.RecommendationResponse{
		Recommendations: make([]recommend.Recommendation, 0, len(ranked)),
	}
	for _, s := range ranked {
		resp.Recommendations = append(resp.Recommendations, recommend.FromBook(s.Book))
	}

	h.logger.Debug("Computed recommendations",
		zap.Uint("bookID", book.ID),
		zap.Int("catalogSize", len(all)),
		zap.Int("count", len(ranked)),
	)
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error, bookID uint) {
	h.logger.Error(msg, zap.Uint("bookID", bookID), zap.Error(err))
	respond.Error(w, http.StatusInternalServerError, "Internal server error")
}
