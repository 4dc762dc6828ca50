package itinerary

import (
	"context"
	"time"

	"voyagerie/db"
	"voyagerie/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dateLayout = "2006-01-02"

// BuildDays assembles the renderer input: exactly one Day per calendar
// date from arrival to departure inclusive, in ascending order, each
// holding its items in stored order. Items whose day_date falls outside
// the range are dropped. Returns nil when either date is missing or
// malformed, or the range is inverted.
func BuildDays(it models.Itinerary, items []models.ItineraryItem) []models.Day {
	arrival, err := time.Parse(dateLayout, it.ArrivalDate)
	if err != nil {
		return nil
	}
	departure, err := time.Parse(dateLayout, it.DepartureDate)
	if err != nil {
		return nil
	}
	if departure.Before(arrival) {
		return nil
	}

	byDate := make(map[string][]models.Item)
	for _, item := range items {
		byDate[item.DayDate] = append(byDate[item.DayDate], models.Item{
			Time:     item.Time,
			Event:    item.Event,
			Location: item.Location,
		})
	}

	var days []models.Day
	for d := arrival; !d.After(departure); d = d.AddDate(0, 0, 1) {
		days = append(days, models.Day{
			Date:  d,
			Items: byDate[d.Format(dateLayout)],
		})
	}
	return days
}

// FetchItems loads an itinerary's items ordered by day then sort order.
func FetchItems(ctx context.Context, itineraryID string) ([]models.ItineraryItem, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "day_date", Value: 1},
		{Key: "sort_order", Value: 1},
	})
	cursor, err := db.ItineraryItemsCollection.Find(ctx, bson.M{"itineraryid": itineraryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.ItineraryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ItineraryItem{}
	}
	return items, nil
}
