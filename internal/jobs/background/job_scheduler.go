package background

import (
	"context"
	"log"
	"time"

	"lexbook/internal/repositories"
	"lexbook/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the daily email jobs: booking reminders for the next
// day and a digest of contact submissions still awaiting a response.
// Every job is best-effort; a failed run is logged and retried on the
// next tick.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	bookingRepo repositories.BookingRepository
	serviceRepo repositories.ServiceRepository
	contactRepo repositories.ContactRepository
	notifier    services.NotificationService
}

func NewJobScheduler(
	bookingRepo repositories.BookingRepository,
	serviceRepo repositories.ServiceRepository,
	contactRepo repositories.ContactRepository,
	notifier services.NotificationService,
) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		contactRepo: contactRepo,
		notifier:    notifier,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(18, 0, 0))),
		gocron.NewTask(js.sendBookingReminders, context.Background()),
		gocron.WithName("booking-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	_, err = js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(js.sendPendingContactDigest, context.Background()),
		gocron.WithName("pending-contact-digest"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

// sendBookingReminders mails everyone booked for tomorrow.
func (js *JobScheduler) sendBookingReminders(ctx context.Context) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	bookings, err := js.bookingRepo.ListByDate(ctx, tomorrow)
	if err != nil {
		log.Printf("Failed to load bookings for %s: %v", tomorrow, err)
		return
	}

	for _, booking := range bookings {
		if svc, err := js.serviceRepo.GetByID(ctx, booking.ServiceID); err == nil {
			booking.Service = svc
		}
		js.notifier.SendBookingReminder(ctx, booking)
	}
	log.Printf("Sent %d booking reminders for %s", len(bookings), tomorrow)
}

// sendPendingContactDigest mails the firm a summary of unresponded
// submissions.
func (js *JobScheduler) sendPendingContactDigest(ctx context.Context) {
	pending, err := js.contactRepo.ListUnresponded(ctx)
	if err != nil {
		log.Printf("Failed to load unresponded contact submissions: %v", err)
		return
	}
	js.notifier.SendPendingContactDigest(ctx, pending)
}
