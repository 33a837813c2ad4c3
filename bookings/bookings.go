package bookings

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"bookify/db"
	"bookify/globals"
	"bookify/models"
	"bookify/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func genID() string {
	return utils.GenerateRandomDigitString(22)
}

// serviceFeeRate is the marketplace cut recorded on the admin wallet when a
// booking is marked paid.
const serviceFeeRate = 0.10

// CreateBooking validates dates, computes nights, and writes the booking with
// defaulted statuses. The listing must exist and be published.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var b models.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if b.ListingID == "" || b.GuestName == "" || b.GuestEmail == "" {
		http.Error(w, "missing fields", http.StatusBadRequest)
		return
	}
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() || !b.CheckIn.Before(b.CheckOut) {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}
	if b.Guests <= 0 {
		b.Guests = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var listing models.Listing
	err := db.ListingsCollection.FindOne(ctx, bson.M{"id": b.ListingID, "status": "published"}).Decode(&listing)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": false, "reason": "listing-missing"})
		return
	}

	b.ID = genID()
	b.Status = "pending"
	b.PaymentStatus = "pending"
	b.Nights = int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	if b.Nights < 1 {
		b.Nights = 1
	}
	if b.TotalPrice == 0 {
		b.TotalPrice = listing.Price * float64(b.Nights)
	}
	b.CreatedAt = time.Now()

	if _, err := db.BookingsCollection.InsertOne(ctx, b); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "booking": b})
}

// ListBookings filters by listingId and/or guestEmail equality, matching the
// store's query surface.
func ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if listingID := r.URL.Query().Get("listingId"); listingID != "" {
		filter["listingId"] = listingID
	}
	if email := r.URL.Query().Get("guestEmail"); email != "" {
		filter["guestEmail"] = email
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.BookingsCollection.Find(ctx, filter)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err == nil {
			bookings = append(bookings, b)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

// UpdateBookingStatus moves a booking between pending/confirmed/cancelled.
func UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if body.Status != "pending" && body.Status != "confirmed" && body.Status != "cancelled" {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": bookingID},
		bson.M{"$set": bson.M{"status": body.Status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "booking": updated})
}

// UpdatePaymentStatus records payment transitions. Marking a booking paid also
// appends the marketplace service fee to the admin wallet; the fee ledger is
// kept separate from booking revenue.
func UpdatePaymentStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")
	var body struct {
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	switch body.PaymentStatus {
	case "pending", "paid", "cancelled", "refunded":
	default:
		http.Error(w, "invalid payment status", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": bookingID},
		bson.M{"$set": bson.M{"paymentStatus": body.PaymentStatus}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if body.PaymentStatus == "paid" {
		fee := models.WalletTxn{
			ID:        genID(),
			WalletID:  globals.AdminWalletID,
			Amount:    updated.TotalPrice * serviceFeeRate,
			Type:      "fee",
			Timestamp: time.Now(),
		}
		if _, err := db.WalletTxnsCollection.InsertOne(ctx, fee); err != nil {
			// fee recording is best effort; the payment update already landed
			log.Printf("wallet fee insert failed for booking %s: %v", bookingID, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "booking": updated})
}

// cancel booking (shortcut, idempotent)
func CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": bookingID},
		bson.M{"$set": bson.M{"status": "cancelled"}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "booking": updated})
}
