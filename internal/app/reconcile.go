package app

import "hotelmap/internal/domain"

// Reconcile joins hotel metadata with rate quotes by hotel id. Only the
// first room type's suggested selling price counts; a quote with a
// missing amount or currency is skipped, never defaulted. For a hotel id
// quoted more than once, the first valid quote wins. Hotels without a
// resolvable price are dropped; output preserves hotel order.
//
// Pure and deterministic: same inputs, same output, no side effects.
func Reconcile(hotels []domain.HotelRecord, rates []domain.RateQuote) []domain.PricedHotel {
	prices := make(map[string]domain.Price, len(rates))
	for _, r := range rates {
		if _, seen := prices[r.HotelID]; seen {
			continue
		}
		if len(r.RoomTypes) == 0 {
			continue
		}
		p := r.RoomTypes[0].SuggestedSellingPrice
		if p == nil || p.Amount == 0 || p.Currency == "" {
			continue
		}
		prices[r.HotelID] = *p
	}

	out := make([]domain.PricedHotel, 0, len(prices))
	for _, h := range hotels {
		if p, ok := prices[h.ID]; ok {
			out = append(out, domain.PricedHotel{HotelRecord: h, Price: p})
		}
	}
	return out
}
