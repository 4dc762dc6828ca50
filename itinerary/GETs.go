package itinerary

import (
	"context"
	"net/http"
	"time"

	"voyagerie/db"
	"voyagerie/models"
	"voyagerie/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/itineraries
func GetItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID, "deleted": bson.M{"$ne": true}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	itineraries, err := utils.FindAndDecode[models.Itinerary](ctx, db.ItineraryCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching itineraries")
		return
	}

	if itineraries == nil {
		itineraries = []models.Itinerary{}
	}

	utils.RespondWithJSON(w, http.StatusOK, itineraries)
}

// GET /api/itineraries/search
func SearchItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()

	filter := bson.M{"user_id": userID, "deleted": bson.M{"$ne": true}}
	if client := query.Get("client"); client != "" {
		filter["client_name"] = bson.M{"$regex": client, "$options": "i"}
	}
	if villa := query.Get("villa"); villa != "" {
		filter["villa_name"] = bson.M{"$regex": villa, "$options": "i"}
	}
	if arrival := query.Get("arrival_date"); arrival != "" {
		filter["arrival_date"] = arrival
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	itineraries, err := utils.FindAndDecode[models.Itinerary](ctx, db.ItineraryCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching itineraries")
		return
	}

	if itineraries == nil {
		itineraries = []models.Itinerary{}
	}

	utils.RespondWithJSON(w, http.StatusOK, itineraries)
}
