package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeBookings(t *testing.T) {
	rows := []BookingRow{
		{ID: "b1", ListingID: "l1", ListingTitle: "Loft", Status: "confirmed",
			PaymentStatus: "paid", TotalPrice: 200, Guests: 2, Nights: 2},
		{ID: "b2", ListingID: "l1", ListingTitle: "Loft", Status: "pending",
			PaymentStatus: "pending", TotalPrice: 300, Guests: 4, Nights: 3},
		{ID: "b3", ListingID: "l2", ListingTitle: "Kayak Tour", Status: "cancelled",
			PaymentStatus: "refunded", TotalPrice: 80, Guests: 1, Nights: 0},
		{ID: "b4", ListingID: "l1", ListingTitle: "Loft", Status: "confirmed",
			PaymentStatus: "paid", TotalPrice: 150, Guests: 2, Nights: 1},
	}

	s := SummarizeBookings(rows)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Confirmed)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 1, s.Cancelled)
	assert.Equal(t, 2, s.Paid)
	assert.Equal(t, 1, s.Unpaid)
	// Revenue counts paid bookings only; cancelled/refunded money never lands.
	assert.Equal(t, 350.0, s.Revenue)
	assert.Equal(t, 9, s.Guests)
	assert.Equal(t, 6, s.Nights)
	assert.Equal(t, "l1", s.TopListingID)
	assert.Equal(t, "Loft", s.TopListing)
	assert.Equal(t, 3, s.TopListingN)
}

func TestSummarizeBookingsEmpty(t *testing.T) {
	s := SummarizeBookings(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.Revenue)
	assert.Equal(t, "", s.TopListingID)
	assert.NotNil(t, s.StatusCounts)
}

func TestSummarizeBookingsTopListingTieBreaksByRowOrder(t *testing.T) {
	rows := []BookingRow{
		{ID: "b1", ListingID: "la", ListingTitle: "A"},
		{ID: "b2", ListingID: "lb", ListingTitle: "B"},
		{ID: "b3", ListingID: "la", ListingTitle: "A"},
		{ID: "b4", ListingID: "lb", ListingTitle: "B"},
	}
	s := SummarizeBookings(rows)
	assert.Equal(t, "la", s.TopListingID)
	assert.Equal(t, 2, s.TopListingN)
}

func TestSummarizeListingsWeightedRating(t *testing.T) {
	rows := []ListingRow{
		{ID: "l1", Status: "published", Category: "Homes", Price: 100,
			RatingAvg: 5.0, RatingCount: 3, BookingCount: 4},
		{ID: "l2", Status: "published", Category: "Experiences", Price: 60,
			RatingAvg: 4.0, RatingCount: 2, BookingCount: 1},
		{ID: "l3", Status: "draft", Category: "Homes", Price: 200,
			RatingAvg: 0, RatingCount: 0},
	}

	s := SummarizeListings(rows)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Published)
	assert.Equal(t, 1, s.Drafts)
	assert.Equal(t, 5, s.Bookings)
	assert.InDelta(t, 120.0, s.AvgPrice, 1e-9)
	// (5.0*3 + 4.0*2) / 5 = 4.6; the unreviewed listing stays out of both
	// numerator and denominator.
	assert.InDelta(t, 4.6, s.WeightedRating, 1e-9)
	assert.Equal(t, 2, s.RatedListings)
	assert.Equal(t, "Homes", s.TopCategory)
	assert.Equal(t, 2, s.TopCategoryN)
}

func TestSummarizeListingsNoReviews(t *testing.T) {
	rows := []ListingRow{
		{ID: "l1", Status: "published", Category: "Homes"},
		{ID: "l2", Status: "published", Category: "Homes"},
	}
	s := SummarizeListings(rows)
	assert.Equal(t, 0.0, s.WeightedRating)
	assert.Equal(t, 0, s.RatedListings)
}
