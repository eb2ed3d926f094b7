package books

import "fmt"

// Book is a catalog entry. Description is the only input to similarity.
type Book struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:100;not null" json:"title"`
	Author      string `gorm:"size:100;not null" json:"author"`
	Genre       string `gorm:"size:50;not null" json:"genre"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (Book) TableName() string {
	return "books"
}

func (b Book) String() string {
	return fmt.Sprintf("<Book %s>", b.Title)
}
