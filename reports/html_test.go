package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingsHTMLEscapesUserContent(t *testing.T) {
	rows := []BookingRow{{
		ID:           "b1",
		GuestName:    `<script>alert("x")</script>`,
		ListingTitle: "Loft & View",
		Category:     "Homes",
		Status:       "confirmed",
	}}

	doc := BookingsHTML(rows, SummarizeBookings(rows), time.Now())

	assert.NotContains(t, doc, "<script>alert")
	assert.Contains(t, doc, "&lt;script&gt;")
	assert.Contains(t, doc, "Loft &amp; View")
}

func TestListingsHTMLIsSelfContained(t *testing.T) {
	doc := ListingsHTML(nil, SummarizeListings(nil), time.Now())

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<style>")
	assert.Contains(t, doc, "</html>")
	for _, h := range listingCSVHeader {
		assert.Contains(t, doc, h)
	}
}
