package models

import (
	"strconv"
	"strings"
)

// BookRecord is the canonical representation of one importable book,
// independent of whether it arrived as a CSV row or a JSON object. Field
// names match the catalog backend's book schema.
type BookRecord struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Genre       string   `json:"genre"`
	Slug        string   `json:"slug"`
	Publisher   string   `json:"publisher"`
	Price       string   `json:"price"`
	PublishDate string   `json:"publishDate,omitempty"`
	Image       []string `json:"image"`
	ISBN        string   `json:"isbn,omitempty"`
	Pages       *int     `json:"pages,omitempty"`
	Language    string   `json:"language,omitempty"`
	Edition     string   `json:"edition,omitempty"`
	BookFormat  string   `json:"bookFormat,omitempty"`
	Characters  []string `json:"characters,omitempty"`
	Awards      []string `json:"awards,omitempty"`
}

// Importable reports whether the record passes the batch inclusion filter:
// a non-empty title and a price strictly greater than zero.
func (b *BookRecord) Importable() bool {
	if strings.TrimSpace(b.Title) == "" {
		return false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(b.Price), 64)
	if err != nil {
		return false
	}
	return price > 0
}
