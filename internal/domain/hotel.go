package domain

// HotelRecord is one hotel as returned by the metadata endpoint.
// Immutable within a fetch cycle.
type HotelRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Address     string   `json:"address"`
	Stars       int      `json:"stars"`
	GuestRating *float64 `json:"rating,omitempty"`
	Photo       string   `json:"main_photo,omitempty"`
}

// Price is a selling price in a single currency.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// RoomRate is one room type inside a rate quote. Only the first entry's
// suggested selling price is ever consulted.
type RoomRate struct {
	SuggestedSellingPrice *Price `json:"suggestedSellingPrice,omitempty"`
}

// RateQuote references a HotelRecord by id and carries its room rates.
type RateQuote struct {
	HotelID   string     `json:"hotelId"`
	RoomTypes []RoomRate `json:"roomTypes"`
}

// PricedHotel is a hotel successfully joined with a rate quote.
// Created fresh each reconciliation pass, never mutated.
type PricedHotel struct {
	HotelRecord
	Price Price
}
