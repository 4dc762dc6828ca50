// itinerary.go
package itinerary

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"voyagerie/db"
	"voyagerie/live"
	"voyagerie/middleware"
	"voyagerie/models"
	"voyagerie/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Utility function to extract user ID from JWT
func GetRequestingUserID(w http.ResponseWriter, r *http.Request) string {
	tokenString := r.Header.Get("Authorization")
	claims, err := middleware.ValidateJWT(tokenString)
	if err != nil {
		log.Printf("JWT validation error: %v", err)
		return ""
	}
	return claims.UserID
}

// POST /api/itineraries
func CreateItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload models.ItineraryWithItems
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	it := payload.Itinerary
	it.UserID = userID
	it.ItineraryID = utils.GenerateRandomString(13)
	it.ShareToken = utils.GetUUID()
	it.CreatedAt = now
	it.UpdatedAt = now
	it.Deleted = false

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ItineraryCollection.InsertOne(ctx, it); err != nil {
		http.Error(w, "Error inserting itinerary", http.StatusInternalServerError)
		return
	}

	if len(payload.Items) > 0 {
		docs := normalizeItems(it.ItineraryID, payload.Items, now)
		if _, err := db.ItineraryItemsCollection.InsertMany(ctx, docs); err != nil {
			// roll back the itinerary so no half-created record survives
			if _, derr := db.ItineraryCollection.DeleteOne(ctx, bson.M{"itineraryid": it.ItineraryID}); derr != nil {
				log.Printf("Rollback failed for itinerary %s: %v", it.ItineraryID, derr)
			}
			http.Error(w, "Error inserting itinerary items", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(it)
}

// GET /api/itineraries/all/:id
func GetItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	itineraryID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var it models.Itinerary
	filter := bson.M{"itineraryid": itineraryID, "deleted": bson.M{"$ne": true}}
	if err := db.ItineraryCollection.FindOne(ctx, filter).Decode(&it); err != nil {
		http.Error(w, "Itinerary not found", http.StatusNotFound)
		return
	}

	if it.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	items, err := FetchItems(ctx, it.ItineraryID)
	if err != nil {
		http.Error(w, "Error fetching itinerary items", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.ItineraryWithItems{Itinerary: it, Items: items})
}

// PUT /api/itineraries/:id
func UpdateItinerary(hub *live.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := GetRequestingUserID(w, r)
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		itineraryID := ps.ByName("id")
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var existing models.Itinerary
		err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryid": itineraryID}).Decode(&existing)
		if err != nil {
			http.Error(w, "Itinerary not found", http.StatusNotFound)
			return
		}

		if existing.UserID != userID {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		var payload models.ItineraryWithItems
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		now := time.Now()
		update := bson.M{"$set": bson.M{
			"client_name":    payload.ClientName,
			"villa_name":     payload.VillaName,
			"arrival_date":   payload.ArrivalDate,
			"departure_date": payload.DepartureDate,
			"updated_at":     now,
		}}

		if _, err := db.ItineraryCollection.UpdateOne(ctx, bson.M{"itineraryid": itineraryID}, update); err != nil {
			http.Error(w, "Error updating itinerary", http.StatusInternalServerError)
			return
		}

		// items are replaced wholesale: delete then insert
		if _, err := db.ItineraryItemsCollection.DeleteMany(ctx, bson.M{"itineraryid": itineraryID}); err != nil {
			http.Error(w, "Error replacing itinerary items", http.StatusInternalServerError)
			return
		}
		if len(payload.Items) > 0 {
			docs := normalizeItems(itineraryID, payload.Items, now)
			if _, err := db.ItineraryItemsCollection.InsertMany(ctx, docs); err != nil {
				http.Error(w, "Error replacing itinerary items", http.StatusInternalServerError)
				return
			}
		}

		invalidateShareCache(existing.ShareToken)
		hub.Notify(itineraryID, "updated")

		utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Itinerary updated successfully"})
	}
}

// DELETE /api/itineraries/:id
func DeleteItinerary(hub *live.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := GetRequestingUserID(w, r)
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		itineraryID := ps.ByName("id")
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var it models.Itinerary
		err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryid": itineraryID}).Decode(&it)
		if err != nil {
			http.Error(w, "Itinerary not found", http.StatusNotFound)
			return
		}

		if it.UserID != userID {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		// items first, then the itinerary record
		if _, err := db.ItineraryItemsCollection.DeleteMany(ctx, bson.M{"itineraryid": itineraryID}); err != nil {
			http.Error(w, "Error deleting itinerary items", http.StatusInternalServerError)
			return
		}

		update := bson.M{"$set": bson.M{"deleted": true}}
		if _, err := db.ItineraryCollection.UpdateOne(ctx, bson.M{"itineraryid": itineraryID}, update); err != nil {
			http.Error(w, "Error deleting itinerary", http.StatusInternalServerError)
			return
		}

		invalidateShareCache(it.ShareToken)
		hub.Notify(itineraryID, "deleted")

		utils.RespondWithJSON(w, http.StatusOK, bson.M{"message": "Itinerary deleted successfully"})
	}
}

// normalizeItems stamps server-owned fields; sort order restarts per day
// and follows payload order within it.
func normalizeItems(itineraryID string, items []models.ItineraryItem, now time.Time) []interface{} {
	perDay := make(map[string]int)
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		item.ItemID = utils.GenerateRandomString(13)
		item.ItineraryID = itineraryID
		item.SortOrder = perDay[item.DayDate]
		item.CreatedAt = now
		perDay[item.DayDate]++
		docs = append(docs, item)
	}
	return docs
}
