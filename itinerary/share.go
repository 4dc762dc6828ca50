package itinerary

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"voyagerie/db"
	"voyagerie/models"
	"voyagerie/rdx"
	"voyagerie/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

const shareCacheTTL = 5 * time.Minute

func shareCacheKey(token string) string {
	return "share:" + token
}

func invalidateShareCache(token string) {
	if token == "" {
		return
	}
	if err := rdx.RdxDel(shareCacheKey(token)); err != nil {
		log.Printf("Share cache invalidation failed: %v", err)
	}
}

// LoadShared resolves a share token to the itinerary and its items,
// consulting the Redis cache first.
func LoadShared(ctx context.Context, token string) (*models.ItineraryWithItems, error) {
	if cached, err := rdx.RdxGet(shareCacheKey(token)); err == nil && cached != "" {
		var result models.ItineraryWithItems
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	var it models.Itinerary
	filter := bson.M{"share_token": token, "deleted": bson.M{"$ne": true}}
	if err := db.ItineraryCollection.FindOne(ctx, filter).Decode(&it); err != nil {
		return nil, err
	}

	items, err := FetchItems(ctx, it.ItineraryID)
	if err != nil {
		return nil, err
	}

	result := &models.ItineraryWithItems{Itinerary: it, Items: items}
	if data, err := json.Marshal(result); err == nil {
		if err := rdx.RdxSetWithTTL(shareCacheKey(token), string(data), shareCacheTTL); err != nil {
			log.Printf("Share cache store failed: %v", err)
		}
	}
	return result, nil
}

// GET /api/share/:token
func GetSharedItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	token := ps.ByName("token")
	if token == "" {
		http.Error(w, "Invalid share token", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := LoadShared(ctx, token)
	if err != nil {
		http.Error(w, "Shared itinerary not found. The link may be invalid or expired.", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// ShareURL builds the public link for a share token.
func ShareURL(token string) string {
	base := os.Getenv("SHARE_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base + "/share/" + token
}

// GET /api/itineraries/all/:id/share
func GetShareInfo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var it models.Itinerary
	filter := bson.M{"itineraryid": ps.ByName("id"), "deleted": bson.M{"$ne": true}}
	if err := db.ItineraryCollection.FindOne(ctx, filter).Decode(&it); err != nil {
		http.Error(w, "Itinerary not found", http.StatusNotFound)
		return
	}

	if it.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"share_token": it.ShareToken,
		"share_url":   ShareURL(it.ShareToken),
	})
}

// GET /api/itineraries/all/:id/share/qr
func GetShareQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := GetRequestingUserID(w, r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var it models.Itinerary
	filter := bson.M{"itineraryid": ps.ByName("id"), "deleted": bson.M{"$ne": true}}
	if err := db.ItineraryCollection.FindOne(ctx, filter).Decode(&it); err != nil {
		http.Error(w, "Itinerary not found", http.StatusNotFound)
		return
	}

	if it.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	png, err := qrcode.Encode(ShareURL(it.ShareToken), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
