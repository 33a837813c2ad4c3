package reviews

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bookify/db"
	"bookify/models"
	"bookify/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateReview adds a review for a listing. Ratings are clamped to 1..5.
func CreateReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	uid := utils.GetUserIDFromRequest(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if review.ListingID == "" {
		http.Error(w, "missing listingId", http.StatusBadRequest)
		return
	}
	if review.Rating < 1 {
		review.Rating = 1
	}
	if review.Rating > 5 {
		review.Rating = 5
	}

	review.ID = utils.GenerateRandomDigitString(22)
	review.UserID = uid
	review.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"review": review})
}

// GetListingReviews returns a listing's reviews, newest first, with the
// aggregate the listing cards show.
func GetListingReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := db.ReviewsCollection.Find(ctx, bson.M{"listingId": listingID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	defer cur.Close(ctx)

	var reviews []models.Review
	var sum float64
	for cur.Next(ctx) {
		var rv models.Review
		if err := cur.Decode(&rv); err == nil {
			reviews = append(reviews, rv)
			sum += rv.Rating
		}
	}

	avg := 0.0
	if len(reviews) > 0 {
		avg = sum / float64(len(reviews))
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"reviews":     reviews,
		"ratingAvg":   avg,
		"ratingCount": len(reviews),
	})
}
