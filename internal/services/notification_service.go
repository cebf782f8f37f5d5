package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"lexbook/internal/models"
)

// Mailer delivers a single message. Delivery internals are deliberately
// behind this interface; the default implementation only logs.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer logs outbound mail instead of delivering it. Used whenever
// SMTP is not configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	log.Printf("[EMAIL] To=%s, Subject=%s, Body=%s", to, subject, body)
	return nil
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	Addr string // host:port
	From string
	Auth smtp.Auth
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	return smtp.SendMail(m.Addr, m.Auth, m.From, []string{to}, []byte(msg))
}

// NotificationService sends operator and client email for contact
// submissions and bookings. Every method is best-effort: failures are
// logged and swallowed, never returned.
type NotificationService interface {
	NotifyContactSubmission(ctx context.Context, submission *models.ContactSubmission)
	ConfirmContactSubmission(ctx context.Context, submission *models.ContactSubmission)
	SendBookingReminder(ctx context.Context, booking *models.Booking)
	SendPendingContactDigest(ctx context.Context, submissions []*models.ContactSubmission)
}

type notificationService struct {
	mailer    Mailer
	firmEmail string
	firmName  string
}

func NewNotificationService(mailer Mailer, firmEmail, firmName string) NotificationService {
	return &notificationService{
		mailer:    mailer,
		firmEmail: firmEmail,
		firmName:  firmName,
	}
}

func (s *notificationService) NotifyContactSubmission(ctx context.Context, submission *models.ContactSubmission) {
	area := models.PracticeAreaDisplay(deref(submission.PracticeArea))
	subject := fmt.Sprintf("New Contact Form Submission - %s", area)
	body := fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nPractice area: %s\nPreferred contact: %s\n\n%s\n",
		submission.Name,
		submission.Email,
		deref(submission.PhoneNumber),
		area,
		deref(submission.PreferredContact),
		submission.Message,
	)
	if err := s.mailer.Send(ctx, s.firmEmail, subject, body); err != nil {
		log.Printf("Failed to send notification email: %v", err)
	}
}

func (s *notificationService) ConfirmContactSubmission(ctx context.Context, submission *models.ContactSubmission) {
	subject := fmt.Sprintf("Thank you for contacting %s", s.firmName)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for your message. We will contact you within 24 hours.\n\n%s\n",
		submission.Name, s.firmName,
	)
	if err := s.mailer.Send(ctx, submission.Email, subject, body); err != nil {
		log.Printf("Failed to send confirmation email: %v", err)
	}
}

func (s *notificationService) SendBookingReminder(ctx context.Context, booking *models.Booking) {
	serviceName := "your appointment"
	if booking.Service != nil {
		serviceName = booking.Service.Name
	}
	subject := fmt.Sprintf("Reminder: %s on %s at %s", serviceName, booking.Date, booking.TimeSlot)
	body := fmt.Sprintf(
		"Dear %s,\n\nThis is a reminder of your booking (%s) on %s at %s.\n\n%s\n",
		booking.Name, serviceName, booking.Date, booking.TimeSlot, s.firmName,
	)
	if err := s.mailer.Send(ctx, booking.Email, subject, body); err != nil {
		log.Printf("Failed to send booking reminder: %v", err)
	}
}

func (s *notificationService) SendPendingContactDigest(ctx context.Context, submissions []*models.ContactSubmission) {
	if len(submissions) == 0 {
		return
	}
	subject := fmt.Sprintf("%d contact submissions awaiting a response", len(submissions))
	var b strings.Builder
	for _, sub := range submissions {
		fmt.Fprintf(&b, "- %s <%s> (%s): %s\n",
			sub.Name, sub.Email,
			sub.CreatedAt.Format("2006-01-02"),
			truncate(sub.Message, 80),
		)
	}
	if err := s.mailer.Send(ctx, s.firmEmail, subject, b.String()); err != nil {
		log.Printf("Failed to send pending contact digest: %v", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
