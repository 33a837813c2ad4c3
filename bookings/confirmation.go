package bookings

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"bookify/db"
	"bookify/models"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// ConfirmationPDF renders a booking confirmation with a QR code holding the
// booking reference, so hosts can scan it at check-in.
func ConfirmationPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}

	listingTitle := "—"
	var listing models.Listing
	if err := db.ListingsCollection.FindOne(ctx, bson.M{"id": booking.ListingID}).Decode(&listing); err == nil {
		listingTitle = listing.Title
	}

	qrData := fmt.Sprintf("bid=%s&lid=%s&ts=%d", booking.ID, booking.ListingID, time.Now().Unix())
	qrCode, _ := qrcode.Encode(qrData, qrcode.Medium, 128)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	pdf.SetFillColor(245, 245, 255)

	// Title
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 15, "Bookify Booking Confirmation", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 10, fmt.Sprintf(
		"Guest: %s\nListing: %s\nCheck-in: %s\nCheck-out: %s\nNights: %d\nGuests: %d\nTotal: $%.2f\nStatus: %s / %s\nIssued: %s",
		booking.GuestName,
		listingTitle,
		booking.CheckIn.Format("02 Jan 2006"),
		booking.CheckOut.Format("02 Jan 2006"),
		booking.Nights,
		booking.Guests,
		booking.TotalPrice,
		booking.Status,
		booking.PaymentStatus,
		time.Now().Format("02 Jan 2006 15:04"),
	), "", "L", false)

	// QR Code Image
	imgOpts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrCode))
	pdf.ImageOptions("qr", 150, 60, 40, 40, false, imgOpts, 0, "")

	// Footer
	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 10, "Show this confirmation at check-in.", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate confirmation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+booking.ID+".pdf")
	w.Write(buf.Bytes())
}
