package models

import "time"

// Itinerary represents one trip record (client, villa, date range).
// Dates are stored as "2006-01-02" strings.
type Itinerary struct {
	ItineraryID   string    `json:"itineraryid" bson:"itineraryid,omitempty"`
	UserID        string    `json:"user_id" bson:"user_id"`
	ClientName    string    `json:"client_name" bson:"client_name"`
	VillaName     string    `json:"villa_name" bson:"villa_name"`
	ArrivalDate   string    `json:"arrival_date" bson:"arrival_date"`
	DepartureDate string    `json:"departure_date" bson:"departure_date"`
	ShareToken    string    `json:"share_token" bson:"share_token"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	Deleted       bool      `json:"-" bson:"deleted,omitempty"` // Internal use only
}

// ItineraryItem is one scheduled entry persisted against an itinerary.
// SortOrder drives row order within a day.
type ItineraryItem struct {
	ItemID      string    `json:"itemid" bson:"itemid,omitempty"`
	ItineraryID string    `json:"itineraryid" bson:"itineraryid"`
	DayDate     string    `json:"day_date" bson:"day_date"`
	Time        string    `json:"time" bson:"time"`
	Event       string    `json:"event" bson:"event"`
	Location    string    `json:"location" bson:"location"`
	SortOrder   int       `json:"sort_order" bson:"sort_order"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// ItineraryWithItems is the read shape handed back to clients.
type ItineraryWithItems struct {
	Itinerary `bson:",inline"`
	Items     []ItineraryItem `json:"items" bson:"items"`
}

// Item is one row of a rendered day table.
type Item struct {
	Time     string `json:"time"`
	Event    string `json:"event"`
	Location string `json:"location"`
}

// Day is the assembled render input: one per calendar date from
// arrival to departure inclusive.
type Day struct {
	Date  time.Time `json:"date"`
	Items []Item    `json:"items"`
}
