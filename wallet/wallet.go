package wallet

import (
	"context"
	"encoding/json"
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

// RecordTxn appends a transaction to a wallet's ledger.
func RecordTxn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	walletID := ps.ByName("walletId")

	var txn models.WalletTxn
	if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if txn.Type == "" {
		http.Error(w, "missing type", http.StatusBadRequest)
		return
	}

	txn.ID = utils.GenerateRandomDigitString(22)
	txn.WalletID = walletID
	if txn.Timestamp.IsZero() {
		txn.Timestamp = time.Now()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.WalletTxnsCollection.InsertOne(ctx, txn); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"txn": txn})
}

// canReadWallet limits ledger reads to the wallet owner; admins may read any
// wallet, including the service-fee ledger.
func canReadWallet(walletID, uid string, roles []string) bool {
	if walletID != "" && walletID == uid {
		return true
	}
	for _, role := range roles {
		if role == "admin" {
			return true
		}
	}
	return false
}

// ListTxns returns a wallet's transactions, newest first, with the summed
// total. For the admin wallet this is the service-fee ledger; it is a revenue
// figure distinct from booking totals and deliberately not merged with them.
func ListTxns(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	walletID := ps.ByName("walletId")

	uid := utils.GetUserIDFromRequest(r)
	roles, _ := r.Context().Value(globals.RoleKey).([]string)
	if !canReadWallet(walletID, uid, roles) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := db.WalletTxnsCollection.Find(ctx, bson.M{"walletId": walletID}, opts)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer cur.Close(ctx)

	var txns []models.WalletTxn
	var total float64
	for cur.Next(ctx) {
		var t models.WalletTxn
		if err := cur.Decode(&t); err == nil {
			txns = append(txns, t)
			total += t.Amount
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"txns":  txns,
		"total": total,
	})
}
