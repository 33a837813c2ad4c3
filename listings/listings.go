package listings

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

func genID() string {
	return utils.GenerateRandomDigitString(22)
}

var validCategories = map[string]bool{
	"Homes":       true,
	"Experiences": true,
	"Services":    true,
}

// validateDraft mirrors the wizard's "Next" gating: required fields must be
// non-empty before a draft can be saved, and experience age ranges must be
// ordered.
func validateDraft(l *models.Listing) string {
	if !validCategories[l.Category] {
		return "invalid category"
	}
	if l.Title == "" {
		return "missing title"
	}
	if l.Price < 0 {
		return "invalid price"
	}
	if l.AgeRestriction != nil && l.AgeRestriction.Min > l.AgeRestriction.Max {
		return "invalid age range"
	}
	return ""
}

// SaveDraft is the wizard's "Save to Drafts": the first save creates the
// document, subsequent saves go through UpdateDraft with the returned id.
func SaveDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	uid := utils.GetUserIDFromRequest(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var listing models.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if msg := validateDraft(&listing); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	now := time.Now()
	listing.ID = genID()
	listing.UID = uid
	listing.Status = "draft"
	listing.CreatedAt = now
	listing.SavedAt = &now
	listing.PublishedAt = nil

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.ListingsCollection.InsertOne(ctx, listing); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"listing": listing})
}

// UpdateDraft saves a subsequent wizard step onto an existing draft. Only the
// owning host may edit, and only while the listing is a draft.
func UpdateDraft(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	uid := utils.GetUserIDFromRequest(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := ps.ByName("id")

	var listing models.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if msg := validateDraft(&listing); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"category":           listing.Category,
		"title":              listing.Title,
		"description":        listing.Description,
		"price":              listing.Price,
		"photos":             listing.Photos,
		"location":           listing.Location,
		"bedrooms":           listing.Bedrooms,
		"beds":               listing.Beds,
		"bathrooms":          listing.Bathrooms,
		"guests":             listing.Guests,
		"maxParticipants":    listing.MaxParticipants,
		"ageRestriction":     listing.AgeRestriction,
		"schedule":           listing.Schedule,
		"languages":          listing.Languages,
		"pricingType":        listing.PricingType,
		"qualifications":     listing.Qualifications,
		"clientRequirements": listing.ClientRequirements,
		"savedAt":            now,
	}}

	res := db.ListingsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": id, "uid": uid, "status": "draft"},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Listing
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "draft not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"listing": updated})
}

// PublishListing transitions a draft to published on final submit.
func PublishListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	uid := utils.GetUserIDFromRequest(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	res := db.ListingsCollection.FindOneAndUpdate(ctx,
		bson.M{"id": id, "uid": uid},
		bson.M{"$set": bson.M{"status": "published", "publishedAt": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Listing
	if err := res.Decode(&updated); err != nil {
		http.Error(w, "listing not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"listing": updated})
}

// browseFilter builds the store filter for the browse endpoint. Published
// listings are public; any other status is scoped to the caller's own
// listings, so drafts never leak to other users.
func browseFilter(opts utils.QueryOptions, requestedUID, callerUID string) (bson.M, string) {
	status := opts.Status
	if status == "" {
		status = "published"
	}
	filter := bson.M{"status": status}
	if status != "published" {
		if callerUID == "" {
			return nil, "authentication required"
		}
		filter["uid"] = callerUID
	} else if requestedUID != "" {
		filter["uid"] = requestedUID
	}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	return filter, ""
}

// ListListings is the public browse endpoint. Filters are equality matches
// done by the store; search and paging happen in the handler.
func ListListings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)

	filter, denied := browseFilter(opts, r.URL.Query().Get("uid"), utils.GetUserIDFromRequest(r))
	if denied != "" {
		http.Error(w, denied, http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.ListingsCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var all []models.Listing
	for cur.Next(ctx) {
		var l models.Listing
		if err := cur.Decode(&l); err != nil {
			continue
		}
		if opts.Search != "" &&
			!utils.ContainsIgnoreCase(l.Title, opts.Search) &&
			!utils.ContainsIgnoreCase(l.Description, opts.Search) &&
			!utils.ContainsIgnoreCase(l.Location, opts.Search) {
			continue
		}
		all = append(all, l)
	}

	start := (opts.Page - 1) * opts.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + opts.Limit
	if end > len(all) {
		end = len(all)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"listings": all[start:end],
		"total":    len(all),
		"page":     opts.Page,
	})
}

func GetListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var listing models.Listing
	if err := db.ListingsCollection.FindOne(ctx, bson.M{"id": id}).Decode(&listing); err != nil {
		http.Error(w, "listing not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"listing": listing})
}

func DeleteListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	uid := utils.GetUserIDFromRequest(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ListingsCollection.DeleteOne(ctx, bson.M{"id": id, "uid": uid})
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "listing not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
