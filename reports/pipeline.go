package reports

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSizes are the selectable page sizes; anything else falls back to the
// first entry.
var PageSizes = []int{10, 25, 50, 100}

// ReportQuery is the full user-controlled predicate/sort/page state. The
// visible row set is a pure function of (rows, query). Now and Loc are
// carried explicitly so time-bucket boundaries are testable and the timezone
// dependence of "today" is a parameter instead of ambient state.
type ReportQuery struct {
	Search   string
	Category string
	Status   string
	Bucket   string // all, today, week, month, year
	From     *time.Time
	To       *time.Time
	SortKey  string
	SortDir  string // asc, desc
	Page     int
	PageSize int
	Now      time.Time
	Loc      *time.Location
}

func ParseReportQuery(r *http.Request) ReportQuery {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	valid := false
	for _, s := range PageSizes {
		if pageSize == s {
			valid = true
			break
		}
	}
	if !valid {
		pageSize = PageSizes[0]
	}

	bucket := q.Get("bucket")
	switch bucket {
	case "today", "week", "month", "year":
	default:
		bucket = "all"
	}

	dir := q.Get("sortDir")
	if dir != "asc" {
		dir = "desc"
	}

	return ReportQuery{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Bucket:   bucket,
		From:     parseDate(q.Get("from")),
		To:       parseDate(q.Get("to")),
		SortKey:  q.Get("sortKey"),
		SortDir:  dir,
		Page:     page,
		PageSize: pageSize,
		Now:      time.Now(),
		Loc:      time.Local,
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// bucketBounds returns the half-open [start, end) window for a named time
// bucket in loc. Weeks are Sunday anchored from local midnight.
func bucketBounds(bucket string, now time.Time, loc *time.Location) (time.Time, time.Time, bool) {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	switch bucket {
	case "today":
		return midnight, midnight.AddDate(0, 0, 1), true
	case "week":
		start := midnight.AddDate(0, 0, -int(midnight.Weekday()))
		return start, start.AddDate(0, 0, 7), true
	case "month":
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0), true
	case "year":
		start := time.Date(local.Year(), 1, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// timeMatches applies the bucket-XOR-range rule: a non-"all" bucket wins and
// the explicit range is ignored entirely; otherwise the range (either bound
// optional) applies. Rows without a timestamp only pass when no time filter
// is active.
func timeMatches(t *time.Time, q ReportQuery) bool {
	if start, end, ok := bucketBounds(q.Bucket, q.Now, q.Loc); ok {
		return t != nil && !t.Before(start) && t.Before(end)
	}
	if q.From == nil && q.To == nil {
		return true
	}
	if t == nil {
		return false
	}
	if q.From != nil && t.Before(*q.From) {
		return false
	}
	// To is a date; the whole day is included.
	if q.To != nil && !t.Before(q.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func searchMatches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// FilterBookings applies the AND of all active predicates, in the fixed
// order: category → time → status → free-text search.
func FilterBookings(rows []BookingRow, q ReportQuery) []BookingRow {
	out := make([]BookingRow, 0, len(rows))
	for _, row := range rows {
		if q.Category != "" && row.Category != q.Category {
			continue
		}
		if !timeMatches(row.CreatedAt, q) {
			continue
		}
		if q.Status != "" && row.Status != q.Status {
			continue
		}
		if !searchMatches(q.Search,
			row.ID, row.GuestName, row.GuestEmail, row.ListingTitle,
			row.Category, row.Status, row.PaymentStatus) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func FilterListings(rows []ListingRow, q ReportQuery) []ListingRow {
	out := make([]ListingRow, 0, len(rows))
	for _, row := range rows {
		if q.Category != "" && row.Category != q.Category {
			continue
		}
		if !timeMatches(row.CreatedAt, q) {
			continue
		}
		if q.Status != "" && row.Status != q.Status {
			continue
		}
		if !searchMatches(q.Search,
			row.ID, row.Title, row.Category, row.Status, row.HostName) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// compareTimes orders nil before any defined value, then by instant.
func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	}
	return 0
}

// newCollator builds the case-insensitive, locale-aware comparer the string
// sort keys use. Collators carry internal buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SortBookings sorts in place. With no explicit key the default is newest
// first; an explicit key replaces the default entirely and honors the
// direction toggle.
func SortBookings(rows []BookingRow, key, dir string) {
	if key == "" {
		sort.SliceStable(rows, func(i, j int) bool {
			return compareTimes(rows[i].CreatedAt, rows[j].CreatedAt) > 0
		})
		return
	}

	col := newCollator()
	cmp := func(a, b BookingRow) int {
		switch key {
		case "guestName":
			return col.CompareString(a.GuestName, b.GuestName)
		case "listingTitle":
			return col.CompareString(a.ListingTitle, b.ListingTitle)
		case "category":
			return col.CompareString(a.Category, b.Category)
		case "status":
			return col.CompareString(a.Status, b.Status)
		case "paymentStatus":
			return col.CompareString(a.PaymentStatus, b.PaymentStatus)
		case "totalPrice":
			return compareFloats(a.TotalPrice, b.TotalPrice)
		case "nights":
			return compareFloats(float64(a.Nights), float64(b.Nights))
		case "guests":
			return compareFloats(float64(a.Guests), float64(b.Guests))
		case "checkIn":
			return compareTimes(a.CheckIn, b.CheckIn)
		case "checkOut":
			return compareTimes(a.CheckOut, b.CheckOut)
		default:
			return compareTimes(a.CreatedAt, b.CreatedAt)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if dir == "desc" {
			return cmp(rows[i], rows[j]) > 0
		}
		return cmp(rows[i], rows[j]) < 0
	})
}

func SortListings(rows []ListingRow, key, dir string) {
	if key == "" {
		sort.SliceStable(rows, func(i, j int) bool {
			return compareTimes(rows[i].CreatedAt, rows[j].CreatedAt) > 0
		})
		return
	}

	col := newCollator()
	cmp := func(a, b ListingRow) int {
		switch key {
		case "title":
			return col.CompareString(a.Title, b.Title)
		case "category":
			return col.CompareString(a.Category, b.Category)
		case "status":
			return col.CompareString(a.Status, b.Status)
		case "hostName":
			return col.CompareString(a.HostName, b.HostName)
		case "price":
			return compareFloats(a.Price, b.Price)
		case "ratingAvg":
			return compareFloats(a.RatingAvg, b.RatingAvg)
		case "bookingCount":
			return compareFloats(float64(a.BookingCount), float64(b.BookingCount))
		default:
			return compareTimes(a.CreatedAt, b.CreatedAt)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if dir == "desc" {
			return cmp(rows[i], rows[j]) > 0
		}
		return cmp(rows[i], rows[j]) < 0
	})
}

// Paginate slices one page out of the filtered+sorted set. A page index past
// the end resets to page 1; totalPages is never below 1.
func Paginate[T any](rows []T, page, pageSize int) (pageRows []T, currentPage, totalPages int) {
	if pageSize < 1 {
		pageSize = PageSizes[0]
	}
	totalPages = (len(rows) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		page = 1
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], page, totalPages
}
