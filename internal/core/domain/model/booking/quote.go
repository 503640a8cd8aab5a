package booking

// Quote is the price of a booking, derived from the bike pricing and the
// rental period. It is recomputed on demand and never stored on its own.
type Quote struct {
	Days        int   `json:"days"`
	PerDay      int64 `json:"perDay"`
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}
