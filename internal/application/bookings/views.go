package bookings

import (
	"stayhub-backend/internal/domain"
)

type GuestCard struct {
	FullName *string `json:"full_name"`
	Email    string  `json:"email"`
}

// View is a booking joined with its listing row and the guest projection.
type View struct {
	domain.Booking
	Listing *domain.Listing `json:"listing"`
	Guest   *GuestCard      `json:"guest"`
}

func toView(b domain.Booking) View {
	v := View{Booking: b, Listing: b.Listing}
	if b.Guest != nil {
		v.Guest = &GuestCard{FullName: b.Guest.FullName, Email: b.Guest.Email}
	}
	return v
}

func toViews(rows []domain.Booking) []View {
	out := make([]View, 0, len(rows))
	for _, b := range rows {
		out = append(out, toView(b))
	}
	return out
}
