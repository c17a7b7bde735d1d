package service

import (
	"context"
	"log"
	"time"

	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/notify"
)

// ReminderService tells customers when their vehicle is due for service
type ReminderService struct {
	serviceRepo repository.ServiceRecordRepository
	sender      notify.Sender
	template    string
	location    *time.Location
	now         func() time.Time
}

// NewReminderService creates a reminder service. Due dates are compared
// against the calendar day in loc.
func NewReminderService(serviceRepo repository.ServiceRecordRepository, sender notify.Sender, template string, loc *time.Location) *ReminderService {
	if template == "" {
		template = notify.DefaultReminderTemplate
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderService{
		serviceRepo: serviceRepo,
		sender:      sender,
		template:    template,
		location:    loc,
		now:         time.Now,
	}
}

// ReminderRun summarises one pass over due visits
type ReminderRun struct {
	Due    int `json:"due"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// SendDueReminders messages every customer whose visit is due today and has
// not been reminded yet. A visit is stamped only after the sender accepts
// the message, so failures are retried on the next run.
func (s *ReminderService) SendDueReminders(ctx context.Context) (*ReminderRun, error) {
	local := s.now().In(s.location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	from, to := dayStart.UTC(), dayStart.AddDate(0, 0, 1).UTC()

	records, err := s.serviceRepo.ListDueBetween(ctx, from, to)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load due services", err)
	}

	run := &ReminderRun{Due: len(records)}
	for _, record := range records {
		if record.Customer == nil || record.NextDueDate == nil {
			run.Failed++
			continue
		}
		message := notify.FormatTemplate(s.template, map[string]string{
			"name":       record.Customer.Name,
			"vehicle_no": record.Customer.VehicleNo,
			"due_date":   record.NextDueDate.In(s.location).Format("02 Jan 2006"),
		})
		if err := s.sender.Send(ctx, record.Customer.Mobile, message); err != nil {
			log.Printf("[reminders] service %s: %v", record.ID, err)
			run.Failed++
			continue
		}
		if err := s.serviceRepo.MarkReminderSent(ctx, record.ID, s.now().UTC()); err != nil {
			log.Printf("[reminders] marking service %s: %v", record.ID, err)
			run.Failed++
			continue
		}
		run.Sent++
	}

	log.Printf("[reminders] %d due, %d sent, %d failed", run.Due, run.Sent, run.Failed)
	return run, nil
}
