package recommend

import "bookreco-backend/models/books"

// Recommendation is the public view of a recommended book; the description
// stays server side.
type Recommendation struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

type RecommendationResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// RecommendationRequest is the form payload of POST /recommend.
type RecommendationRequest struct {
	BookID uint `schema:"book_id,required" validate:"required,gt=0"`
}

func FromBook(b books.Book) Recommendation {
	return Recommendation{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.Genre,
	}
}
