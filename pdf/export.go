package pdf

import (
	"context"
	"net/http"
	"time"

	"voyagerie/db"
	"voyagerie/itinerary"
	"voyagerie/models"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/itineraries/all/:id/pdf
func ExportItinerary(g *Generator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := itinerary.GetRequestingUserID(w, r)
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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

		items, err := itinerary.FetchItems(ctx, it.ItineraryID)
		if err != nil {
			http.Error(w, "Error fetching itinerary items", http.StatusInternalServerError)
			return
		}

		writePDF(w, g, it, items)
	}
}

// GET /api/share/:token/pdf
func ExportShared(g *Generator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		shared, err := itinerary.LoadShared(ctx, ps.ByName("token"))
		if err != nil {
			http.Error(w, "Shared itinerary not found", http.StatusNotFound)
			return
		}

		writePDF(w, g, shared.Itinerary, shared.Items)
	}
}

func writePDF(w http.ResponseWriter, g *Generator, it models.Itinerary, items []models.ItineraryItem) {
	days := itinerary.BuildDays(it, items)

	doc, err := g.Generate(it, days)
	if err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}
	if doc == nil {
		// nothing to render is not an error
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+doc.Filename)
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Bytes)
}
