package entity

import "time"

type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Description     string    `json:"description"`
	CoverImage      string    `json:"coverImage"`
	ISBN            string    `json:"isbn"`
	PublishYear     int       `json:"publishYear"`
	Category        string    `json:"category"`
	Available       bool      `json:"available"`
	TotalCopies     int       `json:"totalCopies"`
	AvailableCopies int       `json:"availableCopies"`
	AddedAt         time.Time `json:"addedAt"`
}

// BookInfo is the trimmed book shape embedded in loan views.
type BookInfo struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	CoverImage string `json:"coverImage"`
}
