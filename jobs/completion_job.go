package jobs

import (
	"log"
	"time"

	"github.com/dquispe/tutoria_online/database"
	"github.com/dquispe/tutoria_online/models"
	"github.com/dquispe/tutoria_online/services"
	"github.com/dquispe/tutoria_online/utils"
)

// CompleteFinishedClasses sweeps confirmed bookings whose scheduled end has passed and
// flips them to completed. This is the session-completion collaborator behind the
// CONFIRMED→COMPLETED transition.
func CompleteFinishedClasses() {
	log.Println("Running job: CompleteFinishedClasses...")

	now := time.Now().UTC()
	today := now.Format("2006-01-02")

	var candidates []models.ClassBooking
	err := database.DB.
		Where("status = ? AND day <= ?", models.BookingStatusConfirmed, today).
		Find(&candidates).Error
	if err != nil {
		log.Printf("Error loading candidate bookings: %v", err)
		return
	}

	completed := 0
	for i := range candidates {
		booking := &candidates[i]
		_, endAt, err := utils.SlotInstants(booking.Day, booking.TimeSlot)
		if err != nil {
			log.Printf("Skipping booking %s with bad slot %q: %v", booking.ID, booking.TimeSlot, err)
			continue
		}
		if endAt.After(now) {
			continue
		}

		// The transition re-checks status under a row lock; a booking cancelled
		// since the candidate query just fails the gate and is skipped.
		if _, err := services.CompleteBooking(database.DB, booking.ID, now); err != nil {
			log.Printf("Failed to complete booking %s: %v", booking.ID, err)
			continue
		}
		completed++
	}

	if completed > 0 {
		log.Printf("Marked %d booking(s) as completed.", completed)
	}
}
