package model

import "time"

// Product is a catalog entry. Price is in paise.
type Product struct {
	ID           string
	Name         string
	Image        string
	Category     string
	Description  string
	Price        int64
	CountInStock int
	Rating       float64
	NumReviews   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductFilter narrows catalog listings. Limit of zero means no cap.
type ProductFilter struct {
	Category string
	Search   string
	Limit    int
}
