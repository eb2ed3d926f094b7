package catalog

import "bookreco-backend/models/books"

// SampleBooks returns the records inserted into an empty catalog on first
// startup.
func SampleBooks() []books.Book {
	return []books.Book{
		{
			Title:       "The Great Gatsby",
			Author:      "F. Scott Fitzgerald",
			Genre:       "Classic",
			Description: "A story of decadence and excess in Jazz Age America",
		},
		{
			Title:       "To Kill a Mockingbird",
			Author:      "Harper Lee",
			Genre:       "Classic",
			Description: "A novel about racial injustice and loss of innocence in the American South",
		},
		{
			Title:       "1984",
			Author:      "George Orwell",
			Genre:       "Science Fiction",
			Description: "A dystopian novel set in a totalitarian society",
		},
		{
			Title:       "The Hobbit",
			Author:      "J.R.R. Tolkien",
			Genre:       "Fantasy",
			Description: "A fantasy novel about a hobbit's journey to win a share of treasure guarded by a dragon",
		},
		{
			Title:       "Pride and Prejudice",
			Author:      "Jane Austen",
			Genre:       "Romance",
			Description: "A romantic novel of manners set in Georgian England",
		},
	}
}
