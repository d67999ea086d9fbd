package pricing

import (
	"math"
	"time"
)

// Fixed per-stay fees, in the display currency's major unit.
const (
	CleaningFee int64 = 2000
	ServiceFee  int64 = 3000
	Taxes       int64 = 1500
)

const day = 24 * time.Hour

// Quote is the display breakdown of a stay.
type Quote struct {
	Nights      int   `json:"nights"`
	Subtotal    int64 `json:"subtotal"`
	CleaningFee int64 `json:"cleaningFee"`
	ServiceFee  int64 `json:"serviceFee"`
	Taxes       int64 `json:"taxes"`
	Total       int64 `json:"total"`
}

// PriceForStay computes the cost of staying from checkIn to checkOut at nightlyRate.
// A partial day counts as a full night. Missing dates or a non-positive range yield a zero quote;
// fees apply only once there is at least one night.
func PriceForStay(nightlyRate int64, checkIn, checkOut *time.Time) Quote {
	if checkIn == nil || checkOut == nil {
		return Quote{}
	}
	nights := Nights(*checkIn, *checkOut)
	if nights <= 0 {
		return Quote{}
	}
	q := Quote{
		Nights:      nights,
		Subtotal:    nightlyRate * int64(nights),
		CleaningFee: CleaningFee,
		ServiceFee:  ServiceFee,
		Taxes:       Taxes,
	}
	q.Total = q.Subtotal + q.CleaningFee + q.ServiceFee + q.Taxes
	return q
}

// Nights returns ceil((checkOut - checkIn) / 1 day).
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(float64(checkOut.Sub(checkIn)) / float64(day)))
}
