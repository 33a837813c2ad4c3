package reports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Placeholder values rendered when a field is absent or a referenced document
// is missing. Enrichment misses fall back to these, never to an error.
const (
	PlaceholderCategory = "Uncategorized"
	PlaceholderText     = "—"
)

// BookingRow is the flat shape the report table and exports work with. Every
// field is present and defaulted; raw documents may be missing any of them.
type BookingRow struct {
	ID            string     `json:"id"`
	ListingID     string     `json:"listingId"`
	ListingTitle  string     `json:"listingTitle"`
	Category      string     `json:"category"`
	GuestName     string     `json:"guestName"`
	GuestEmail    string     `json:"guestEmail"`
	CheckIn       *time.Time `json:"checkIn"`
	CheckOut      *time.Time `json:"checkOut"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	TotalPrice    float64    `json:"totalPrice"`
	Guests        int        `json:"guests"`
	Nights        int        `json:"nights"`
	CreatedAt     *time.Time `json:"createdAt"`
}

type ListingRow struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	Price        float64    `json:"price"`
	HostID       string     `json:"hostId"`
	HostName     string     `json:"hostName"`
	RatingAvg    float64    `json:"ratingAvg"`
	RatingCount  int        `json:"ratingCount"`
	BookingCount int        `json:"bookingCount"`
	CreatedAt    *time.Time `json:"createdAt"`
}

// NormalizeBooking converts one raw booking document into a row. It never
// fails: malformed values coerce to zero values or placeholders. Listing
// title and category start at placeholders and are filled by enrichment.
func NormalizeBooking(doc bson.M) BookingRow {
	return BookingRow{
		ID:            docID(doc),
		ListingID:     asString(doc["listingId"]),
		ListingTitle:  PlaceholderText,
		Category:      PlaceholderCategory,
		GuestName:     stringOr(doc["guestName"], PlaceholderText),
		GuestEmail:    asString(doc["guestEmail"]),
		CheckIn:       asTime(doc["checkIn"]),
		CheckOut:      asTime(doc["checkOut"]),
		Status:        stringOr(doc["status"], "pending"),
		PaymentStatus: stringOr(doc["paymentStatus"], "pending"),
		TotalPrice:    asFloat(doc["totalPrice"]),
		Guests:        asInt(doc["guests"]),
		Nights:        asInt(doc["nights"]),
		CreatedAt:     asTime(doc["createdAt"]),
	}
}

// NormalizeListing converts one raw listing document into a row. Rating,
// booking count, and host name are enrichment outputs and start defaulted.
func NormalizeListing(doc bson.M) ListingRow {
	return ListingRow{
		ID:        docID(doc),
		Title:     stringOr(doc["title"], PlaceholderText),
		Category:  ResolveCategory(doc),
		Status:    stringOr(doc["status"], "draft"),
		Price:     asFloat(doc["price"]),
		HostID:    asString(doc["uid"]),
		HostName:  PlaceholderText,
		CreatedAt: asTime(doc["createdAt"]),
	}
}

// ResolveCategory is the priority-ordered fallback chain for the polymorphic
// category field. Older documents carry the category under different shapes,
// and some only reveal their kind through type-indicating fields.
func ResolveCategory(doc bson.M) string {
	if s := asString(doc["category"]); s != "" {
		return s
	}
	if nested, ok := doc["category"].(bson.M); ok {
		if s := asString(nested["name"]); s != "" {
			return s
		}
	}
	if _, ok := doc["experienceType"]; ok {
		return "Experiences"
	}
	if asString(doc["pricingType"]) != "" || asString(doc["serviceType"]) != "" {
		return "Services"
	}
	if asInt(doc["bedrooms"]) > 0 || asInt(doc["beds"]) > 0 {
		return "Homes"
	}
	return PlaceholderCategory
}

// docID prefers the app-level id field and falls back to the store's _id.
func docID(doc bson.M) string {
	if s := asString(doc["id"]); s != "" {
		return s
	}
	switch v := doc["_id"].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	}
	return ""
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func stringOr(v any, fallback string) string {
	if s := asString(v); s != "" {
		return s
	}
	return fallback
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// asTime accepts the shapes timestamps arrive in from a schemaless store:
// the driver's native DateTime, a decoded time.Time, a date string, or an
// epoch-millis number. Anything else is treated as absent.
func asTime(v any) *time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		out := t.Time()
		return &out
	case time.Time:
		return &t
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return &parsed
			}
		}
	case int64:
		out := time.UnixMilli(t)
		return &out
	case float64:
		out := time.UnixMilli(int64(t))
		return &out
	}
	return nil
}
