package live

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterNotifyUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send: make(chan []byte, 10),
		Room: "it_abc",
	}

	// register client
	hub.register <- client

	hub.Notify("it_abc", "updated")

	select {
	case got := <-client.Send:
		var event Event
		if err := json.Unmarshal(got, &event); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		if event.Action != "updated" || event.ItineraryID != "it_abc" {
			t.Fatalf("unexpected event %+v", event)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	// unregister client
	hub.unregister <- client
}

func TestHubRoomsAreIsolated(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	viewer := &Client{Send: make(chan []byte, 10), Room: "it_one"}
	other := &Client{Send: make(chan []byte, 10), Room: "it_two"}
	hub.register <- viewer
	hub.register <- other

	hub.Notify("it_one", "deleted")

	select {
	case <-viewer.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("event leaked to another room: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
