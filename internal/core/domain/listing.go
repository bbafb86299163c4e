package domain

import "time"

// Listing is the subset of a property listing the API needs for ownership
// checks and account cleanup.
type Listing struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserRef   string    `json:"userRef"`
	CreatedAt time.Time `json:"created_at"`
}

// Buying is an offer made by a buyer on a listing.
type Buying struct {
	ID              string    `json:"id"`
	ListingID       string    `json:"listingId"`
	BuyerID         string    `json:"buyerId"`
	OfferPrice      float64   `json:"offerPrice"`
	TransactionType string    `json:"transactionType"`
	Duration        *int      `json:"duration,omitempty"`
	Status          string    `json:"status,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
