package dto

import "time"

// ProductRequest describes admin create/update payloads. Price is in paise.
type ProductRequest struct {
	Name         string `json:"name"`
	Image        string `json:"image"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	CountInStock int    `json:"count_in_stock"`
}

// ProductResponse is a catalog entry. Price is in paise; price_display is
// the formatted rupee string for presentation.
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	PriceDisplay string    `json:"price_display"`
	CountInStock int       `json:"count_in_stock"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"num_reviews"`
	CreatedAt    time.Time `json:"created_at"`
}
