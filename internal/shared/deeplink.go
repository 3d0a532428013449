package shared

import (
	"encoding/base64"
	"encoding/json"
	"net/url"

	"hotelmap/internal/domain"
)

// DefaultBookingDomain is where deep links point unless the widget is
// configured with a whitelabel override.
const DefaultBookingDomain = "https://whitelabel.nuitee.link"

type DeepLinkParams struct {
	HotelID       string
	Checkin       string
	Checkout      string
	Adults        int
	Children      []int
	Currency      string
	BookingDomain string
}

// BuildBookingURL assembles the whitelabel deep link for one hotel.
// Occupancies travel as base64-encoded JSON, one room entry.
func BuildBookingURL(p DeepLinkParams) string {
	dom := p.BookingDomain
	if dom == "" {
		dom = DefaultBookingDomain
	}
	currency := p.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	occ := []domain.Occupancy{{Adults: p.Adults}}
	if len(p.Children) > 0 {
		occ[0].Children = p.Children
	}
	raw, _ := json.Marshal(occ)
	encoded := base64.StdEncoding.EncodeToString(raw)

	q := url.Values{}
	q.Set("checkin", p.Checkin)
	q.Set("checkout", p.Checkout)
	q.Set("currency", currency)
	q.Set("occupancies", encoded)

	return dom + "/hotels/" + url.PathEscape(p.HotelID) + "?" + q.Encode()
}
