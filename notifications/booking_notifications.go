package notifications

import (
	"fmt"
	"log"

	"github.com/dquispe/tutoria_online/database"
	"github.com/dquispe/tutoria_online/models"
)

func loadParticipants(booking *models.ClassBooking) (*models.User, *models.User, error) {
	var student, teacher models.User
	if err := database.DB.First(&student, "id = ?", booking.StudentID).Error; err != nil {
		return nil, nil, err
	}
	if err := database.DB.First(&teacher, "id = ?", booking.TeacherID).Error; err != nil {
		return nil, nil, err
	}
	return &student, &teacher, nil
}

func NotifyBookingConfirmed(booking *models.ClassBooking) {
	student, teacher, err := loadParticipants(booking)
	if err != nil {
		log.Printf("Could not load booking participants for notification: %v", err)
		return
	}

	body := fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your class on %s (%s UTC) is confirmed.</p>", booking.Day, booking.TimeSlot)
	SendEmail(student.FullName, student.Email, "Your Booking is Confirmed!", body)
	SendEmail(teacher.FullName, teacher.Email, "You Have a New Booking!", body)
}

func NotifyBookingCancelled(booking *models.ClassBooking) {
	student, teacher, err := loadParticipants(booking)
	if err != nil {
		log.Printf("Could not load booking participants for notification: %v", err)
		return
	}

	body := fmt.Sprintf("<h1>Booking Cancelled</h1><p>The class on %s (%s UTC) has been cancelled.</p>", booking.Day, booking.TimeSlot)
	SendEmail(student.FullName, student.Email, "Booking Cancelled", body)
	SendEmail(teacher.FullName, teacher.Email, "Booking Cancelled", body)
}

func NotifyClassReminder(booking *models.ClassBooking) {
	student, teacher, err := loadParticipants(booking)
	if err != nil {
		log.Printf("Could not load booking participants for reminder: %v", err)
		return
	}

	body := fmt.Sprintf("<h1>Class Reminder</h1><p>This is a friendly reminder that your class on %s (%s UTC) starts in one hour.</p>", booking.Day, booking.TimeSlot)
	SendEmail(student.FullName, student.Email, "Reminder: Your Class Starts in 1 Hour!", body)
	SendEmail(teacher.FullName, teacher.Email, "Reminder: Your Class Starts in 1 Hour!", body)
}
