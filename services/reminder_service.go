// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"cleanops-backend/models"
	"cleanops-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService chases pending invoices that have gone past their due
// date with an SMS/WhatsApp notice to the client.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendOverdueReminders(time.Now())
	})

	c.Start()
	log.Println("Overdue invoice reminder scheduler started")
}

// SendOverdueReminders notifies clients of every pending invoice whose
// due date has passed. Skips silently when Twilio is not configured.
func (s *ReminderService) SendOverdueReminders(now time.Time) {
	if os.Getenv("TWILIO_ACCOUNT_SID") == "" {
		log.Println("Twilio not configured, skipping overdue reminders")
		return
	}

	log.Println("Starting overdue invoice reminder processing...")

	startOfDay := utils.BeginningOfDay(now)

	var invoices []models.Invoice
	if err := s.db.
		Where("status = ? AND due_date < ?", models.InvoicePending, startOfDay).
		Find(&invoices).Error; err != nil {
		log.Printf("Failed to fetch overdue invoices: %v", err)
		return
	}

	for i := range invoices {
		s.remindInvoice(&invoices[i], now)
	}

	log.Println("Overdue invoice reminder processing completed")
}

// overdueMessage names how many days the invoice has gone unpaid so the
// client sees the age, not just the original due date.
func overdueMessage(client *models.Client, invoice *models.Invoice, now time.Time) string {
	days := utils.DaysBetween(invoice.DueDate, now)
	return fmt.Sprintf(
		"Hi %s, invoice %s for £%.2f was due on %s and is now %d day(s) overdue. Please arrange payment at your earliest convenience.",
		client.Name, invoice.InvoiceNumber, invoice.Total, invoice.DueDate.Format("02 Jan 2006"), days)
}

func (s *ReminderService) remindInvoice(invoice *models.Invoice, now time.Time) {
	var client models.Client
	if err := s.db.First(&client, "id = ?", invoice.ClientID).Error; err != nil {
		log.Printf("Invoice %s: failed to fetch client: %v", invoice.InvoiceNumber, err)
		return
	}
	if client.Phone == "" {
		return
	}

	// Skip if a reminder already went out for this invoice today.
	var sentToday int64
	s.db.Model(&models.ReminderLog{}).
		Where("invoice_id = ? AND status = ? AND sent_at >= ?", invoice.ID, "sent", utils.BeginningOfDay(now)).
		Count(&sentToday)
	if sentToday > 0 {
		return
	}

	message := overdueMessage(&client, invoice, now)

	// WhatsApp if the phone is in E.164 format, else SMS
	channel := "sms"
	to := client.Phone
	if strings.HasPrefix(client.Phone, "+") {
		to = "whatsapp:" + client.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder for %s: %v", invoice.InvoiceNumber, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent for %s, SID: %s", invoice.InvoiceNumber, *resp.Sid)
	} else {
		log.Printf("Reminder sent for %s, but no SID returned", invoice.InvoiceNumber)
	}

	reminderLog := models.ReminderLog{
		ID:           uuid.New(),
		InvoiceID:    invoice.ID,
		ClientID:     client.ID,
		Message:      message,
		Channel:      channel,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       now,
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for invoice %s: %v", invoice.InvoiceNumber, err)
	}
}
