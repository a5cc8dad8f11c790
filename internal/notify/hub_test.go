package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHub_SendToEmployerRoutesByAccount(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	employerA := uuid.New()
	employerB := uuid.New()

	a := &Client{ID: "a", EmployerID: employerA, Send: make(chan []byte, 1)}
	b := &Client{ID: "b", EmployerID: employerB, Send: make(chan []byte, 1)}
	hub.RegisterClient(a)
	hub.RegisterClient(b)

	waitForCount(t, hub, employerA, 1)

	ev := Event{Type: "vacancy_status", VacancyID: uuid.New(), EmployerID: employerA, Status: "awaiting_approval"}
	hub.SendToEmployer(employerA, ev)

	select {
	case payload := <-a.Send:
		var got Event
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatalf("payload not JSON: %v", err)
		}
		if got.Status != "awaiting_approval" {
			t.Errorf("Status = %q, want awaiting_approval", got.Status)
		}
	case <-time.After(time.Second):
		t.Fatal("employer A never received the event")
	}

	select {
	case <-b.Send:
		t.Error("employer B must not receive employer A's event")
	default:
	}
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	employer := uuid.New()
	c := &Client{ID: "c", EmployerID: employer, Send: make(chan []byte, 1)}
	hub.RegisterClient(c)
	waitForCount(t, hub, employer, 1)

	hub.UnregisterClient(c)
	waitForCount(t, hub, employer, 0)
}

func waitForCount(t *testing.T, hub *Hub, employerID uuid.UUID, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount(employerID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count for %s never reached %d", employerID, want)
}
