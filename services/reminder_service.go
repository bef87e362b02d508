// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"golffit-backend/models"
	"golffit-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService texts customers the day before their scheduled fitting.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	var client *twilio.RestClient
	if accountSid != "" && authToken != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}

	return &ReminderService{
		db:     db,
		client: client,
		from:   os.Getenv("TWILIO_PHONE_NUMBER"),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Fitting reminder scheduler started")
}

// SendDailyReminders notifies every customer with a fitting scheduled
// for tomorrow. Skipped entirely when Twilio is not configured.
func (s *ReminderService) SendDailyReminders() {
	if s.client == nil || s.from == "" {
		log.Println("Twilio not configured, skipping fitting reminders")
		return
	}

	log.Println("Starting daily fitting reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var fittings []models.Fitting
	if err := s.db.
		Where("scheduled_date >= ? AND scheduled_date < ? AND status = ?",
			tomorrow, dayAfter, models.StatusScheduled).
		Preload("Customer").
		Find(&fittings).Error; err != nil {
		log.Printf("Failed to fetch tomorrow's fittings: %v", err)
		return
	}

	for _, fitting := range fittings {
		s.sendReminder(fitting)
	}

	log.Println("Daily fitting reminder processing completed")
}

func (s *ReminderService) sendReminder(fitting models.Fitting) {
	customer := fitting.Customer
	if customer.Phone == "" {
		log.Printf("Fitting %s: customer has no phone on file, skipping", fitting.ID)
		return
	}

	label := "swing analysis"
	if fitting.Type == models.TypeClubFitting {
		label = "club fitting"
	}
	when := fitting.ScheduledDate.Format("Monday, January 2")
	if fitting.Time != "" {
		when = fmt.Sprintf("%s at %s", when, fitting.Time)
	}

	message := fmt.Sprintf("Hi %s, this is a reminder of your %s on %s. See you on the course!",
		customer.FirstName, label, when)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(customer.Phone)
	params.SetFrom(s.from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", customer.Phone)
	}
}
