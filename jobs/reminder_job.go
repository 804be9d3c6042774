package jobs

import (
	"log"
	"time"

	"github.com/dquispe/tutoria_online/database"
	"github.com/dquispe/tutoria_online/models"
	"github.com/dquispe/tutoria_online/notifications"
	"github.com/dquispe/tutoria_online/utils"
)

// SendClassReminders emails both participants of every confirmed booking starting in
// roughly one hour. The job runs every five minutes, so the window is five minutes
// wide to hit each booking exactly once.
func SendClassReminders() {
	log.Println("Running job: SendClassReminders...")

	now := time.Now().UTC()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	// Bookings that start in an hour are today or, near midnight, tomorrow.
	days := []string{lowerBound.Format("2006-01-02"), upperBound.Format("2006-01-02")}

	var upcoming []models.ClassBooking
	err := database.DB.
		Where("status = ? AND day IN ?", models.BookingStatusConfirmed, days).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error checking for upcoming classes: %v", err)
		return
	}

	for i := range upcoming {
		booking := &upcoming[i]
		startAt, _, err := utils.SlotInstants(booking.Day, booking.TimeSlot)
		if err != nil {
			continue
		}
		if startAt.Before(lowerBound) || !startAt.Before(upperBound) {
			continue
		}

		log.Printf("Sending reminder for booking ID: %s", booking.ID)
		go notifications.NotifyClassReminder(booking)
	}
}
