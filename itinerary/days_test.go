package itinerary

import (
	"testing"
	"time"

	"voyagerie/models"
)

func testTrip() models.Itinerary {
	return models.Itinerary{
		ItineraryID:   "it_test",
		VillaName:     "Oceanview Villa",
		ArrivalDate:   "2024-06-01",
		DepartureDate: "2024-06-03",
	}
}

func TestBuildDaysRange(t *testing.T) {
	items := []models.ItineraryItem{
		{DayDate: "2024-06-02", Time: "09:00", Event: "Breakfast", Location: "Villa", SortOrder: 0},
	}

	days := BuildDays(testTrip(), items)
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}

	for i, day := range days {
		want := time.Date(2024, 6, i+1, 0, 0, 0, 0, time.UTC)
		if !day.Date.Equal(want) {
			t.Errorf("day %d date = %v, want %v", i, day.Date, want)
		}
	}

	if len(days[0].Items) != 0 || len(days[2].Items) != 0 {
		t.Error("expected days 1 and 3 to have no items")
	}
	if len(days[1].Items) != 1 {
		t.Fatalf("expected 1 item on day 2, got %d", len(days[1].Items))
	}
	if days[1].Items[0].Event != "Breakfast" {
		t.Errorf("unexpected item %+v", days[1].Items[0])
	}
}

func TestBuildDaysPreservesItemOrder(t *testing.T) {
	items := []models.ItineraryItem{
		{DayDate: "2024-06-01", Event: "Arrival transfer", SortOrder: 0},
		{DayDate: "2024-06-01", Event: "Lunch", SortOrder: 1},
		{DayDate: "2024-06-01", Event: "Spa", SortOrder: 2},
	}

	days := BuildDays(testTrip(), items)
	if len(days[0].Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(days[0].Items))
	}

	wantOrder := []string{"Arrival transfer", "Lunch", "Spa"}
	for i, want := range wantOrder {
		if days[0].Items[i].Event != want {
			t.Errorf("item %d = %q, want %q", i, days[0].Items[i].Event, want)
		}
	}
}

func TestBuildDaysDropsOutOfRangeItems(t *testing.T) {
	items := []models.ItineraryItem{
		{DayDate: "2024-07-15", Event: "Stray"},
	}

	days := BuildDays(testTrip(), items)
	for _, day := range days {
		if len(day.Items) != 0 {
			t.Fatalf("expected out-of-range item to be dropped, found %+v", day.Items)
		}
	}
}

func TestBuildDaysInvalidInput(t *testing.T) {
	it := testTrip()
	it.ArrivalDate = ""
	if days := BuildDays(it, nil); days != nil {
		t.Error("expected nil for missing arrival date")
	}

	it = testTrip()
	it.DepartureDate = "garbage"
	if days := BuildDays(it, nil); days != nil {
		t.Error("expected nil for malformed departure date")
	}

	it = testTrip()
	it.ArrivalDate, it.DepartureDate = it.DepartureDate, it.ArrivalDate
	if days := BuildDays(it, nil); days != nil {
		t.Error("expected nil for inverted range")
	}
}

func TestBuildDaysSingleDay(t *testing.T) {
	it := testTrip()
	it.DepartureDate = it.ArrivalDate

	days := BuildDays(it, nil)
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
}

func TestNormalizeItemsSortOrderPerDay(t *testing.T) {
	now := time.Now()
	items := []models.ItineraryItem{
		{DayDate: "2024-06-01", Event: "a"},
		{DayDate: "2024-06-01", Event: "b"},
		{DayDate: "2024-06-02", Event: "c"},
		{DayDate: "2024-06-02", Event: "d"},
	}

	docs := normalizeItems("it_test", items, now)
	if len(docs) != 4 {
		t.Fatalf("expected 4 docs, got %d", len(docs))
	}

	wantOrders := []int{0, 1, 0, 1}
	for i, doc := range docs {
		item, ok := doc.(models.ItineraryItem)
		if !ok {
			t.Fatalf("doc %d has unexpected type %T", i, doc)
		}
		if item.SortOrder != wantOrders[i] {
			t.Errorf("doc %d sort order = %d, want %d", i, item.SortOrder, wantOrders[i])
		}
		if item.ItemID == "" || item.ItineraryID != "it_test" {
			t.Errorf("doc %d missing server-owned fields: %+v", i, item)
		}
	}
}
