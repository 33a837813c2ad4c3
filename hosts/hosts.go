package hosts

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

// UpsertHost ensures a host record exists for the caller. The listing wizard
// calls this on start and on resume, so the write is an upsert by uid.
func UpsertHost(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	uid := utils.GetUserIDFromRequest(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var host models.Host
	if err := json.NewDecoder(r.Body).Decode(&host); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	host.UID = uid
	host.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"email":       host.Email,
			"firstName":   host.FirstName,
			"lastName":    host.LastName,
			"photoURL":    host.PhotoURL,
			"displayName": host.DisplayName,
			"isVerified":  host.IsVerified,
			"updatedAt":   host.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"uid":       uid,
			"createdAt": time.Now(),
		},
	}
	_, err := db.HostsCollection.UpdateOne(ctx, bson.M{"uid": uid}, update, options.Update().SetUpsert(true))
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	var saved models.Host
	if err := db.HostsCollection.FindOne(ctx, bson.M{"uid": uid}).Decode(&saved); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"host": saved})
}

func GetHost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	uid := ps.ByName("uid")
	if uid == "" {
		http.Error(w, "missing uid", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var host models.Host
	if err := db.HostsCollection.FindOne(ctx, bson.M{"uid": uid}).Decode(&host); err != nil {
		http.Error(w, "host not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"host": host})
}
