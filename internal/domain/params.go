package domain

// Search parameter defaults, consulted once when resolving effective
// parameters at widget construction.
const (
	DefaultCurrency    = "USD"
	DefaultAdults      = 2
	DefaultNationality = "US"
	DefaultHotelLimit  = 200
)

// SearchParameters is the mutable widget configuration. It is owned by
// the map adapter and replaced wholesale (shallow merge) on every
// config update; callers never hold a shared mutable reference.
type SearchParameters struct {
	Currency         string
	Adults           int
	ChildAges        []int
	GuestNationality string
	MinRating        *float64
	Checkin          string // ISO-8601 calendar date
	Checkout         string
}

// ConfigPatch is a partial SearchParameters update. Nil fields are left
// untouched; non-nil fields replace the previous value entirely.
type ConfigPatch struct {
	Currency         *string
	Adults           *int
	ChildAges        *[]int
	GuestNationality *string
	MinRating        *float64
	Checkin          *string
	Checkout         *string
}

// Merge applies the patch to a copy of p and returns the result. The
// receiver is never mutated, so earlier snapshots stay valid.
func (p SearchParameters) Merge(patch ConfigPatch) SearchParameters {
	out := p
	if patch.Currency != nil {
		out.Currency = *patch.Currency
	}
	if patch.Adults != nil {
		out.Adults = *patch.Adults
	}
	if patch.ChildAges != nil {
		ages := make([]int, len(*patch.ChildAges))
		copy(ages, *patch.ChildAges)
		out.ChildAges = ages
	}
	if patch.GuestNationality != nil {
		out.GuestNationality = *patch.GuestNationality
	}
	if patch.MinRating != nil {
		out.MinRating = patch.MinRating
	}
	if patch.Checkin != nil {
		out.Checkin = *patch.Checkin
	}
	if patch.Checkout != nil {
		out.Checkout = *patch.Checkout
	}
	return out
}
