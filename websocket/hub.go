package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/dquispe/tutoria_online/services"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Client is one admitted classroom participant.
type Client struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	IsTeacher bool
	Day       string
	TimeSlot  string
	Conn      *websocket.Conn
}

// Tick is pushed to every participant a few times a minute so clients can render
// countdowns and the imminent-end warning without polling.
type Tick struct {
	SecondsUntilStart int  `json:"seconds_until_start"`
	SecondsUntilEnd   int  `json:"seconds_until_end"`
	ShowEndWarning    bool `json:"show_end_warning"`
	Ended             bool `json:"ended"`
}

var rooms = make(map[uuid.UUID]map[uuid.UUID]*Client)
var roomsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)

// RunHub owns the room map. Participants are grouped per booking; every tick interval
// each one gets its countdown recomputed for its own role, and connections whose class
// has ended are told so and dropped.
func RunHub() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-Register:
			log.Printf("Classroom join: booking=%s user=%s", client.BookingID, client.UserID)
			roomsMu.Lock()
			if rooms[client.BookingID] == nil {
				rooms[client.BookingID] = make(map[uuid.UUID]*Client)
			}
			rooms[client.BookingID][client.UserID] = client
			roomsMu.Unlock()

		case client := <-Unregister:
			log.Printf("Classroom leave: booking=%s user=%s", client.BookingID, client.UserID)
			roomsMu.Lock()
			if room, ok := rooms[client.BookingID]; ok {
				if existing, ok := room[client.UserID]; ok && existing.Conn == client.Conn {
					delete(room, client.UserID)
				}
				if len(room) == 0 {
					delete(rooms, client.BookingID)
				}
			}
			roomsMu.Unlock()

		case <-ticker.C:
			pushTicks(time.Now().UTC())
		}
	}
}

func pushTicks(now time.Time) {
	roomsMu.Lock()
	defer roomsMu.Unlock()

	for bookingID, room := range rooms {
		for userID, client := range room {
			decision := services.EvaluateAccess(client.Day, client.TimeSlot, now, client.IsTeacher)
			ended := !decision.CanAccess && decision.SecondsUntilEnd < 0
			tick := Tick{
				SecondsUntilStart: decision.SecondsUntilStart,
				SecondsUntilEnd:   decision.SecondsUntilEnd,
				ShowEndWarning:    services.ShouldShowEndWarning(decision.MinutesUntilEnd),
				Ended:             ended,
			}
			if err := client.Conn.WriteJSON(tick); err != nil || ended {
				client.Conn.Close()
				delete(room, userID)
			}
		}
		if len(room) == 0 {
			delete(rooms, bookingID)
		}
	}
}
