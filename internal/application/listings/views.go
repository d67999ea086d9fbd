package listings

import (
	"time"

	"stayhub-backend/internal/domain"

	"github.com/google/uuid"
)

// HostCard is the host projection shown with listing search results.
type HostCard struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// HostContact adds the phone number shown on the listing detail page.
type HostContact struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Phone     *string `json:"phone"`
}

type RatingOnly struct {
	Rating int `json:"rating"`
}

type ReviewDetail struct {
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Reviewer  *HostCard `json:"reviewer"`
}

// Summary is a listing as returned by search: columns, host card, raw ratings and the derived aggregate.
type Summary struct {
	domain.Listing
	Host        *HostCard    `json:"host"`
	Reviews     []RatingOnly `json:"reviews"`
	Rating      float64      `json:"rating"`
	ReviewCount int          `json:"reviewCount"`
}

// Detail is a single listing with host contact and full reviews.
type Detail struct {
	domain.Listing
	Host        *HostContact   `json:"host"`
	Reviews     []ReviewDetail `json:"reviews"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"reviewCount"`
}

func toSummary(l domain.Listing) Summary {
	out := Summary{Listing: l, Reviews: make([]RatingOnly, 0, len(l.Reviews))}
	if l.Host != nil {
		out.Host = &HostCard{FullName: l.Host.FullName, AvatarURL: l.Host.AvatarURL}
	}
	for _, r := range l.Reviews {
		out.Reviews = append(out.Reviews, RatingOnly{Rating: r.Rating})
	}
	out.Rating, out.ReviewCount = AverageRating(l.Reviews)
	return out
}

func toDetail(l domain.Listing) *Detail {
	out := &Detail{Listing: l, Reviews: make([]ReviewDetail, 0, len(l.Reviews))}
	if l.Host != nil {
		out.Host = &HostContact{FullName: l.Host.FullName, AvatarURL: l.Host.AvatarURL, Phone: l.Host.Phone}
	}
	for _, r := range l.Reviews {
		rd := ReviewDetail{Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt}
		if r.Reviewer != nil {
			rd.Reviewer = &HostCard{FullName: r.Reviewer.FullName, AvatarURL: r.Reviewer.AvatarURL}
		}
		out.Reviews = append(out.Reviews, rd)
	}
	out.Rating, out.ReviewCount = AverageRating(l.Reviews)
	return out
}

func summaries(rows []domain.Listing) []Summary {
	out := make([]Summary, 0, len(rows))
	for _, l := range rows {
		out = append(out, toSummary(l))
	}
	return out
}

// ParseID parses a listing id; malformed ids are reported as not found.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.ErrListingNotFound
	}
	return id, nil
}
