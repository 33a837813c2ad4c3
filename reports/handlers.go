package reports

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"bookify/db"
	"bookify/globals"
	"bookify/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// listingInfo is what the booking report pulls from the listings collection.
type listingInfo struct {
	Title    string
	Category string
}

type reviewAgg struct {
	Avg   float64
	Count int
}

// findRaw runs an unbounded scan and decodes raw documents. Admin reports
// load whole collections and shape them client-side, matching the store's
// query surface (no server-side pagination on reports).
func findRaw(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]bson.M, error) {
	cur, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func fetchListingInfo(ctx context.Context, ids []string) (map[string]listingInfo, error) {
	docs, err := findRaw(ctx, db.ListingsCollection, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	out := make(map[string]listingInfo, len(docs))
	for _, doc := range docs {
		out[docID(doc)] = listingInfo{
			Title:    stringOr(doc["title"], PlaceholderText),
			Category: ResolveCategory(doc),
		}
	}
	return out, nil
}

func fetchReviewAggs(ctx context.Context, ids []string) (map[string]reviewAgg, error) {
	docs, err := findRaw(ctx, db.ReviewsCollection, bson.M{"listingId": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	sums := make(map[string]float64, len(ids))
	counts := make(map[string]int, len(ids))
	for _, doc := range docs {
		id := asString(doc["listingId"])
		sums[id] += asFloat(doc["rating"])
		counts[id]++
	}
	out := make(map[string]reviewAgg, len(counts))
	for id, n := range counts {
		out[id] = reviewAgg{Avg: sums[id] / float64(n), Count: n}
	}
	return out, nil
}

func fetchBookingCounts(ctx context.Context, ids []string) (map[string]int, error) {
	docs, err := findRaw(ctx, db.BookingsCollection, bson.M{"listingId": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(ids))
	for _, doc := range docs {
		out[asString(doc["listingId"])]++
	}
	return out, nil
}

func fetchHostNames(ctx context.Context, ids []string) (map[string]string, error) {
	docs, err := findRaw(ctx, db.HostsCollection, bson.M{"uid": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(docs))
	for _, doc := range docs {
		name := asString(doc["displayName"])
		if name == "" {
			first, last := asString(doc["firstName"]), asString(doc["lastName"])
			switch {
			case first != "" && last != "":
				name = first + " " + last
			case first != "":
				name = first
			default:
				name = PlaceholderText
			}
		}
		out[asString(doc["uid"])] = name
	}
	return out, nil
}

// loadBookingRows loads every booking, normalizes, and enriches rows with
// listing title/category via the chunked join.
func loadBookingRows(ctx context.Context) ([]BookingRow, error) {
	docs, err := findRaw(ctx, db.BookingsCollection, bson.M{})
	if err != nil {
		return nil, err
	}

	rows := make([]BookingRow, 0, len(docs))
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		row := NormalizeBooking(doc)
		rows = append(rows, row)
		ids = append(ids, row.ListingID)
	}

	info := JoinByID(ctx, ids, ChunkSize, fetchListingInfo)
	for i := range rows {
		if li, ok := info[rows[i].ListingID]; ok {
			rows[i].ListingTitle = li.Title
			rows[i].Category = li.Category
		}
	}
	return rows, nil
}

// loadListingRows loads every listing and runs the three enrichment joins
// (reviews, booking counts, host names) as independent fan-outs, the way the
// reporting page issues them.
func loadListingRows(ctx context.Context) ([]ListingRow, error) {
	docs, err := findRaw(ctx, db.ListingsCollection, bson.M{})
	if err != nil {
		return nil, err
	}

	rows := make([]ListingRow, 0, len(docs))
	listingIDs := make([]string, 0, len(docs))
	hostIDs := make([]string, 0, len(docs))
	for _, doc := range docs {
		row := NormalizeListing(doc)
		rows = append(rows, row)
		listingIDs = append(listingIDs, row.ID)
		hostIDs = append(hostIDs, row.HostID)
	}

	var (
		wg       sync.WaitGroup
		ratings  map[string]reviewAgg
		bookings map[string]int
		hosts    map[string]string
	)
	wg.Add(3)
	go func() { defer wg.Done(); ratings = JoinByID(ctx, listingIDs, ChunkSize, fetchReviewAggs) }()
	go func() { defer wg.Done(); bookings = JoinByID(ctx, listingIDs, ChunkSize, fetchBookingCounts) }()
	go func() { defer wg.Done(); hosts = JoinByID(ctx, hostIDs, ChunkSize, fetchHostNames) }()
	wg.Wait()

	for i := range rows {
		if agg, ok := ratings[rows[i].ID]; ok {
			rows[i].RatingAvg = agg.Avg
			rows[i].RatingCount = agg.Count
		}
		rows[i].BookingCount = bookings[rows[i].ID]
		if name, ok := hosts[rows[i].HostID]; ok {
			rows[i].HostName = name
		}
	}
	return rows, nil
}

// adminWalletTotal sums the admin wallet's service-fee ledger. It is loaded
// alongside booking revenue but reported as its own figure; the two are not
// reconciled.
func adminWalletTotal(ctx context.Context) float64 {
	docs, err := findRaw(ctx, db.WalletTxnsCollection, bson.M{"walletId": globals.AdminWalletID})
	if err != nil {
		log.Printf("wallet txns load failed: %v", err)
		return 0
	}
	var total float64
	for _, doc := range docs {
		total += asFloat(doc["amount"])
	}
	return total
}

// BookingsReport serves the admin bookings dashboard: unfiltered summary
// tiles plus the filtered/sorted/paginated visible rows. A load failure
// degrades to the empty state rather than an error page.
func BookingsReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	rows, err := loadBookingRows(ctx)
	if err != nil {
		log.Printf("bookings report load failed: %v", err)
		rows = nil
	}

	q := ParseReportQuery(r)
	summary := SummarizeBookings(rows)

	filtered := FilterBookings(rows, q)
	SortBookings(filtered, q.SortKey, q.SortDir)
	pageRows, page, totalPages := Paginate(filtered, q.Page, q.PageSize)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"summary":     summary,
		"serviceFees": adminWalletTotal(ctx),
		"rows":        pageRows,
		"total":       len(filtered),
		"page":        page,
		"totalPages":  totalPages,
	})
}

func ListingsReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	rows, err := loadListingRows(ctx)
	if err != nil {
		log.Printf("listings report load failed: %v", err)
		rows = nil
	}

	q := ParseReportQuery(r)
	summary := SummarizeListings(rows)

	filtered := FilterListings(rows, q)
	SortListings(filtered, q.SortKey, q.SortDir)
	pageRows, page, totalPages := Paginate(filtered, q.Page, q.PageSize)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"summary":    summary,
		"rows":       pageRows,
		"total":      len(filtered),
		"page":       page,
		"totalPages": totalPages,
	})
}

// filteredBookings is the shared load+filter+sort path for exports, which
// serialize the whole filtered set, not the visible page.
func filteredBookings(r *http.Request) ([]BookingRow, ReportQuery) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	rows, err := loadBookingRows(ctx)
	if err != nil {
		log.Printf("bookings export load failed: %v", err)
		rows = nil
	}
	q := ParseReportQuery(r)
	filtered := FilterBookings(rows, q)
	SortBookings(filtered, q.SortKey, q.SortDir)
	return filtered, q
}

func filteredListings(r *http.Request) ([]ListingRow, ReportQuery) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	rows, err := loadListingRows(ctx)
	if err != nil {
		log.Printf("listings export load failed: %v", err)
		rows = nil
	}
	q := ParseReportQuery(r)
	filtered := FilterListings(rows, q)
	SortListings(filtered, q.SortKey, q.SortDir)
	return filtered, q
}

func BookingsReportCSV(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filtered, q := filteredBookings(r)
	data, err := BookingsCSV(filtered)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "CSV export failed: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		"attachment; filename="+ExportFilename("bookings", "csv", q.Bucket, q.Now))
	w.Write(data)
}

func ListingsReportCSV(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filtered, q := filteredListings(r)
	data, err := ListingsCSV(filtered)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "CSV export failed: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		"attachment; filename="+ExportFilename("listings", "csv", q.Bucket, q.Now))
	w.Write(data)
}

// BookingsReportPDF renders the filtered set to PDF; if rendering fails the
// response silently falls back to the print document, mirroring the
// client-side PDF-library fallback.
func BookingsReportPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filtered, q := filteredBookings(r)
	summary := SummarizeBookings(filtered)

	data, err := BookingsPDF(filtered, summary, q.Now)
	if err != nil {
		log.Printf("bookings PDF render failed, falling back to print view: %v", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(BookingsHTML(filtered, summary, q.Now)))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		"attachment; filename="+ExportFilename("bookings", "pdf", q.Bucket, q.Now))
	w.Write(data)
}

func ListingsReportPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filtered, q := filteredListings(r)
	summary := SummarizeListings(filtered)

	data, err := ListingsPDF(filtered, summary, q.Now)
	if err != nil {
		log.Printf("listings PDF render failed, falling back to print view: %v", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(ListingsHTML(filtered, summary, q.Now)))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		"attachment; filename="+ExportFilename("listings", "pdf", q.Bucket, q.Now))
	w.Write(data)
}

// Print views return the same self-contained HTML the PDF fallback uses.
func BookingsReportPrint(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filtered, q := filteredBookings(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(BookingsHTML(filtered, SummarizeBookings(filtered), q.Now)))
}

func ListingsReportPrint(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filtered, q := filteredListings(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(ListingsHTML(filtered, SummarizeListings(filtered), q.Now)))
}
