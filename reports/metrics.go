package reports

// BookingSummary feeds the dashboard tiles. All reductions are single-pass
// and order independent over the full (unfiltered) row set; exports recompute
// the same shape over the filtered set.
type BookingSummary struct {
	Total          int            `json:"total"`
	Confirmed      int            `json:"confirmed"`
	Pending        int            `json:"pending"`
	Cancelled      int            `json:"cancelled"`
	Paid           int            `json:"paid"`
	Unpaid         int            `json:"unpaid"`
	Revenue        float64        `json:"revenue"`
	Guests         int            `json:"guests"`
	Nights         int            `json:"nights"`
	TopListingID   string         `json:"topListingId"`
	TopListing     string         `json:"topListing"`
	TopListingN    int            `json:"topListingCount"`
	StatusCounts   map[string]int `json:"statusCounts"`
	PaymentCounts  map[string]int `json:"paymentCounts"`
	CategoryCounts map[string]int `json:"categoryCounts"`
}

func SummarizeBookings(rows []BookingRow) BookingSummary {
	s := BookingSummary{
		StatusCounts:   map[string]int{},
		PaymentCounts:  map[string]int{},
		CategoryCounts: map[string]int{},
	}

	perListing := map[string]int{}
	listingTitles := map[string]string{}
	for _, row := range rows {
		s.Total++
		s.StatusCounts[row.Status]++
		s.PaymentCounts[row.PaymentStatus]++
		s.CategoryCounts[row.Category]++
		s.Guests += row.Guests
		s.Nights += row.Nights
		if row.PaymentStatus == "paid" {
			s.Revenue += row.TotalPrice
		}
		if row.ListingID != "" {
			perListing[row.ListingID]++
			listingTitles[row.ListingID] = row.ListingTitle
		}
	}

	// Named buckets read off the grouped counts with zero-default.
	s.Confirmed = s.StatusCounts["confirmed"]
	s.Pending = s.StatusCounts["pending"]
	s.Cancelled = s.StatusCounts["cancelled"]
	s.Paid = s.PaymentCounts["paid"]
	s.Unpaid = s.PaymentCounts["pending"]

	// Most-booked listing: linear scan, first maximum wins. Iterate rows
	// rather than the map so ties resolve by row order, not map order.
	seen := map[string]bool{}
	for _, row := range rows {
		if row.ListingID == "" || seen[row.ListingID] {
			continue
		}
		seen[row.ListingID] = true
		if n := perListing[row.ListingID]; n > s.TopListingN {
			s.TopListingN = n
			s.TopListingID = row.ListingID
			s.TopListing = listingTitles[row.ListingID]
		}
	}
	return s
}

type ListingSummary struct {
	Total          int            `json:"total"`
	Published      int            `json:"published"`
	Drafts         int            `json:"drafts"`
	Bookings       int            `json:"bookings"`
	AvgPrice       float64        `json:"avgPrice"`
	WeightedRating float64        `json:"weightedRating"`
	RatedListings  int            `json:"ratedListings"`
	TopCategory    string         `json:"topCategory"`
	TopCategoryN   int            `json:"topCategoryCount"`
	StatusCounts   map[string]int `json:"statusCounts"`
	CategoryCounts map[string]int `json:"categoryCounts"`
}

func SummarizeListings(rows []ListingRow) ListingSummary {
	s := ListingSummary{
		StatusCounts:   map[string]int{},
		CategoryCounts: map[string]int{},
	}

	var priceSum float64
	var weightedSum float64
	var weightTotal int
	for _, row := range rows {
		s.Total++
		s.StatusCounts[row.Status]++
		s.CategoryCounts[row.Category]++
		s.Bookings += row.BookingCount
		priceSum += row.Price
		// Listings with no reviews stay out of both numerator and
		// denominator; they are not rating zero.
		if row.RatingCount > 0 {
			weightedSum += row.RatingAvg * float64(row.RatingCount)
			weightTotal += row.RatingCount
			s.RatedListings++
		}
	}

	s.Published = s.StatusCounts["published"]
	s.Drafts = s.StatusCounts["draft"]
	if s.Total > 0 {
		s.AvgPrice = priceSum / float64(s.Total)
	}
	if weightTotal > 0 {
		s.WeightedRating = weightedSum / float64(weightTotal)
	}

	// Top category: first-encountered maximum, scanning row order.
	counted := map[string]bool{}
	for _, row := range rows {
		if counted[row.Category] {
			continue
		}
		counted[row.Category] = true
		if n := s.CategoryCounts[row.Category]; n > s.TopCategoryN {
			s.TopCategoryN = n
			s.TopCategory = row.Category
		}
	}
	return s
}
