package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tp(t time.Time) *time.Time { return &t }

// Wednesday 2026-08-26 12:00 UTC. The containing Sunday-anchored week is
// Aug 23 through Aug 29.
var testNow = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

func baseQuery() ReportQuery {
	return ReportQuery{
		Bucket:   "all",
		SortDir:  "desc",
		Page:     1,
		PageSize: 10,
		Now:      testNow,
		Loc:      time.UTC,
	}
}

func sampleBookings() []BookingRow {
	return []BookingRow{
		{ID: "b1", Category: "Homes", Status: "confirmed", GuestName: "Alice Smith",
			CreatedAt: tp(time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC))},
		{ID: "b2", Category: "Homes", Status: "pending", GuestName: "Bob Jones",
			CreatedAt: tp(time.Date(2026, 7, 2, 9, 0, 0, 0, time.UTC))},
		{ID: "b3", Category: "Experiences", Status: "confirmed", GuestName: "Carol Smith",
			CreatedAt: tp(time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC))},
		{ID: "b4", Category: "Homes", Status: "confirmed", GuestName: "Dan Brown",
			CreatedAt: nil},
		{ID: "b5", Category: "Services", Status: "cancelled", GuestName: "Eve Smith",
			CreatedAt: tp(time.Date(2026, 8, 26, 8, 0, 0, 0, time.UTC))},
	}
}

func rowIDs(rows []BookingRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestFilterBookingsAllPredicatesAND(t *testing.T) {
	q := baseQuery()
	q.Category = "Homes"
	q.Status = "confirmed"
	q.Search = "smith"

	got := FilterBookings(sampleBookings(), q)
	assert.Equal(t, []string{"b1"}, rowIDs(got))
}

func TestFilterBookingsIdempotent(t *testing.T) {
	q := baseQuery()
	q.Status = "confirmed"

	once := FilterBookings(sampleBookings(), q)
	twice := FilterBookings(once, q)
	assert.Equal(t, once, twice)
}

func TestFilterBookingsSearchIsCaseInsensitive(t *testing.T) {
	q := baseQuery()
	q.Search = "SMITH"
	got := FilterBookings(sampleBookings(), q)
	assert.Equal(t, []string{"b1", "b3", "b5"}, rowIDs(got))
}

func TestBucketOverridesDateRange(t *testing.T) {
	// The explicit range only admits the July booking; the week bucket must
	// ignore it entirely and return this week's rows.
	withRange := baseQuery()
	withRange.Bucket = "week"
	withRange.From = tp(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	withRange.To = tp(time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC))

	bucketOnly := baseQuery()
	bucketOnly.Bucket = "week"

	rows := sampleBookings()
	assert.Equal(t, FilterBookings(rows, bucketOnly), FilterBookings(rows, withRange))
	assert.Equal(t, []string{"b1", "b3", "b5"}, rowIDs(FilterBookings(rows, withRange)))
}

func TestBucketExcludesUndatedRows(t *testing.T) {
	q := baseQuery()
	q.Bucket = "week"
	for _, r := range FilterBookings(sampleBookings(), q) {
		require.NotNil(t, r.CreatedAt)
	}
}

func TestDateRangeToIsInclusive(t *testing.T) {
	q := baseQuery()
	q.From = tp(time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	q.To = tp(time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC))

	// b1 was created at 09:00 on the To date and must still match.
	got := FilterBookings(sampleBookings(), q)
	assert.Equal(t, []string{"b1", "b3"}, rowIDs(got))
}

func TestDateRangeExcludesUndatedRows(t *testing.T) {
	q := baseQuery()
	q.From = tp(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	got := FilterBookings(sampleBookings(), q)
	assert.NotContains(t, rowIDs(got), "b4")
}

func TestBucketBounds(t *testing.T) {
	start, end, ok := bucketBounds("week", testNow, time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), end)

	start, end, ok = bucketBounds("month", testNow, time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, ok = bucketBounds("all", testNow, time.UTC)
	assert.False(t, ok)
}

func TestSortBookingsDefaultNewestFirst(t *testing.T) {
	rows := sampleBookings()
	SortBookings(rows, "", "desc")
	// Newest first; the undated row compares lowest and lands last.
	assert.Equal(t, []string{"b5", "b1", "b3", "b2", "b4"}, rowIDs(rows))
}

func TestSortBookingsNilFirstAscending(t *testing.T) {
	rows := sampleBookings()
	SortBookings(rows, "createdAt", "asc")
	assert.Equal(t, "b4", rows[0].ID)

	SortBookings(rows, "createdAt", "desc")
	assert.Equal(t, "b4", rows[len(rows)-1].ID)
}

func TestSortBookingsDirectionToggle(t *testing.T) {
	rows := sampleBookings()
	SortBookings(rows, "guestName", "asc")
	asc := rowIDs(rows)

	SortBookings(rows, "guestName", "desc")
	desc := rowIDs(rows)

	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestSortBookingsCollatesAccentedNames(t *testing.T) {
	rows := []BookingRow{
		{ID: "b1", GuestName: "Zoé Laurent"},
		{ID: "b2", GuestName: "Émile Durand"},
		{ID: "b3", GuestName: "adam black"},
	}
	SortBookings(rows, "guestName", "asc")
	// Byte-wise comparison would push É past z; collation keeps it with E.
	assert.Equal(t, []string{"b3", "b2", "b1"}, rowIDs(rows))
}

func TestSortBookingsStableOnTies(t *testing.T) {
	rows := []BookingRow{
		{ID: "x1", Status: "confirmed"},
		{ID: "x2", Status: "confirmed"},
		{ID: "x3", Status: "confirmed"},
	}
	SortBookings(rows, "status", "asc")
	assert.Equal(t, []string{"x1", "x2", "x3"}, rowIDs(rows))
}

func TestPaginate(t *testing.T) {
	rows := make([]int, 25)
	for i := range rows {
		rows[i] = i
	}

	page, cur, total := Paginate(rows, 1, 10)
	assert.Len(t, page, 10)
	assert.Equal(t, 1, cur)
	assert.Equal(t, 3, total)

	page, cur, _ = Paginate(rows, 3, 10)
	assert.Len(t, page, 5)
	assert.Equal(t, 3, cur)
	assert.Equal(t, 20, page[0])
}

func TestPaginateOutOfRangeResetsToFirstPage(t *testing.T) {
	rows := []int{1, 2, 3}
	page, cur, total := Paginate(rows, 7, 10)
	assert.Equal(t, 1, cur)
	assert.Equal(t, 1, total)
	assert.Equal(t, []int{1, 2, 3}, page)
}

func TestPaginateEmpty(t *testing.T) {
	page, cur, total := Paginate([]int{}, 1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 1, cur)
	assert.Equal(t, 1, total)
}
