package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingsCSVRoundTripsSpecialCharacters(t *testing.T) {
	checkIn := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	rows := []BookingRow{
		{
			ID:           "b1",
			GuestName:    `Smith, "Bob"`,
			GuestEmail:   "bob@example.com",
			ListingTitle: "Loft\nwith view",
			Category:     "Homes",
			CheckIn:      &checkIn,
			Status:       "confirmed",
			TotalPrice:   199.5,
		},
	}

	data, err := BookingsCSV(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, bookingCSVHeader, records[0])
	got := records[1]
	assert.Equal(t, `Smith, "Bob"`, got[1])
	assert.Equal(t, "Loft\nwith view", got[3])
	assert.Equal(t, "2026-08-20", got[5])
	assert.Equal(t, PlaceholderText, got[6])
	assert.Equal(t, "199.50", got[11])
}

func TestListingsCSVHeaderAndWidth(t *testing.T) {
	data, err := ListingsCSV([]ListingRow{{ID: "l1", Title: "Loft", Category: "Homes"}})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, listingCSVHeader, records[0])
	assert.Len(t, records[1], len(listingCSVHeader))
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "bookings-report-2026-08-28-week.csv",
		ExportFilename("bookings", "csv", "week", now))
	assert.Equal(t, "listings-report-2026-08-28-all.pdf",
		ExportFilename("listings", "pdf", "", now))
}
