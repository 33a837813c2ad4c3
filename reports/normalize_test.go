package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveCategory(t *testing.T) {
	cases := []struct {
		name string
		doc  bson.M
		want string
	}{
		{"plain string", bson.M{"category": "Homes"}, "Homes"},
		{"nested object", bson.M{"category": bson.M{"name": "Experiences"}}, "Experiences"},
		{"string wins over type fields", bson.M{"category": "Homes", "experienceType": "hike"}, "Homes"},
		{"experience type field", bson.M{"experienceType": "cooking"}, "Experiences"},
		{"pricing type field", bson.M{"pricingType": "hourly"}, "Services"},
		{"service type field", bson.M{"serviceType": "cleaning"}, "Services"},
		{"bedrooms imply homes", bson.M{"bedrooms": 2}, "Homes"},
		{"beds imply homes", bson.M{"beds": int32(1)}, "Homes"},
		{"empty doc", bson.M{}, PlaceholderCategory},
		{"empty nested name", bson.M{"category": bson.M{"name": ""}}, PlaceholderCategory},
		{"zero bedrooms", bson.M{"bedrooms": 0}, PlaceholderCategory},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveCategory(tc.doc))
		})
	}
}

func TestNormalizeBookingDefaults(t *testing.T) {
	row := NormalizeBooking(bson.M{})
	assert.Equal(t, "", row.ID)
	assert.Equal(t, PlaceholderText, row.GuestName)
	assert.Equal(t, PlaceholderCategory, row.Category)
	assert.Equal(t, "pending", row.Status)
	assert.Equal(t, "pending", row.PaymentStatus)
	assert.Equal(t, 0.0, row.TotalPrice)
	assert.Nil(t, row.CreatedAt)
}

func TestNormalizeBookingCoercions(t *testing.T) {
	oid := primitive.NewObjectID()
	row := NormalizeBooking(bson.M{
		"_id":        oid,
		"listingId":  "l9",
		"guestName":  "Alice",
		"totalPrice": int32(250),
		"guests":     int64(3),
		"createdAt":  primitive.NewDateTimeFromTime(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
	})

	assert.Equal(t, oid.Hex(), row.ID)
	assert.Equal(t, "l9", row.ListingID)
	assert.Equal(t, 250.0, row.TotalPrice)
	assert.Equal(t, 3, row.Guests)
	require.NotNil(t, row.CreatedAt)
	assert.Equal(t, 2026, row.CreatedAt.Year())
}

func TestNormalizeBookingPrefersAppLevelID(t *testing.T) {
	row := NormalizeBooking(bson.M{"_id": primitive.NewObjectID(), "id": "bk123"})
	assert.Equal(t, "bk123", row.ID)
}

func TestAsTimeShapes(t *testing.T) {
	require.NotNil(t, asTime("2026-08-28"))
	require.NotNil(t, asTime("2026-08-28T10:00:00Z"))
	require.NotNil(t, asTime(int64(1756363200000)))
	require.NotNil(t, asTime(time.Now()))
	assert.Nil(t, asTime("not a date"))
	assert.Nil(t, asTime(nil))
	assert.Nil(t, asTime(true))

	got := asTime("2026-08-28")
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), *got)
}

func TestNormalizeListing(t *testing.T) {
	row := NormalizeListing(bson.M{
		"id":       "l1",
		"title":    "Cozy Loft",
		"bedrooms": 2,
		"status":   "published",
		"price":    120.0,
		"uid":      "host1",
	})

	assert.Equal(t, "l1", row.ID)
	assert.Equal(t, "Homes", row.Category)
	assert.Equal(t, "published", row.Status)
	assert.Equal(t, "host1", row.HostID)
	assert.Equal(t, PlaceholderText, row.HostName)
	assert.Equal(t, 0, row.RatingCount)
}
