// Package dispatch_notifications runs the scheduled mail jobs: post-flight
// thank-you mail (which also completes the reservation) and pre-flight
// reminders. Every send leaves a durable record, so re-running a job never
// mails anyone twice.
package dispatch_notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	notificationRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/notification"
	"github.com/daiki-lova/Privateskytour-sub000/internal/integrations/mailer"
)

// UseCase runs notification jobs.
type UseCase struct {
	reservationRepo  ReservationRepository
	notificationRepo NotificationRepository
	auditRepo        AuditRepository
	mailerClient     MailerClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	reservationRepo ReservationRepository,
	notificationRepo NotificationRepository,
	auditRepo AuditRepository,
	mailerClient MailerClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		notificationRepo: notificationRepo,
		auditRepo:        auditRepo,
		mailerClient:     mailerClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute runs one job and reports what it did. A single reservation
// failing never aborts the batch.
func (uc *UseCase) Execute(ctx context.Context, jobType string) (*Summary, error) {
	switch jobType {
	case domain.JobThankYou:
		return uc.runThankYou(ctx)
	case domain.JobReminder3Day, domain.JobReminder1Day:
		return uc.runReminder(ctx, jobType)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownJob, jobType)
	}
}

// runThankYou mails every confirmed reservation whose flight date has
// passed and completes it. The status flip is the idempotency marker: a
// completed reservation drops out of the candidate listing.
func (uc *UseCase) runThankYou(ctx context.Context) (*Summary, error) {
	today := dateOnly(uc.timeProvider.Now())

	reservations, err := uc.reservationRepo.ListConfirmedBefore(ctx, today)
	if err != nil {
		uc.logger.Error("DispatchNotifications: thank-you listing failed: %v", err)
		return nil, fmt.Errorf("%w: failed to list flown reservations: %v", ErrInternal, err)
	}

	summary := &Summary{Job: domain.JobThankYou, Total: len(reservations)}
	uc.logger.Info("DispatchNotifications: thank-you run, %d candidates", len(reservations))

	for _, reservation := range reservations {
		detail := Detail{ReservationID: reservation.ID, BookingNumber: reservation.BookingNumber}

		msg := mailer.Message{
			To:       reservation.CustomerEmail,
			Template: mailer.TemplateBookingThanks,
			Params: map[string]string{
				"customerName":  reservation.CustomerName,
				"bookingNumber": reservation.BookingNumber,
				"courseTitle":   reservation.CourseTitle,
				"flightDate":    reservation.FlightDate.Format(domain.DateFormat),
			},
		}

		if err := uc.mailerClient.Send(ctx, msg); err != nil {
			uc.logger.Warn("DispatchNotifications: thank-you send failed for id=%d: %v", reservation.ID, err)
			uc.recordOutcome(ctx, reservation.ID, domain.JobThankYou, domain.NotificationFailed, err.Error())
			detail.Error = err.Error()
			summary.Failed++
			summary.Details = append(summary.Details, detail)
			continue
		}

		detail.EmailSent = true
		summary.Sent++

		// Mail went out; the completion and the send record commit together.
		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			if err := uc.reservationRepo.Complete(txCtx, reservation.ID); err != nil {
				return err
			}
			rec := &domain.NotificationRecord{
				ReservationID: reservation.ID,
				JobType:       domain.JobThankYou,
				Status:        domain.NotificationSent,
			}
			// A concurrent run already recorded the send; the unique marker
			// makes the flip safe to commit regardless.
			if err := uc.notificationRepo.Record(txCtx, rec); err != nil && !errors.Is(err, notificationRepo.ErrAlreadySent) {
				return err
			}
			return uc.auditRepo.Append(txCtx, &domain.AuditLogEntry{
				Category:    "notification",
				Status:      domain.AuditSuccess,
				Action:      "reservation.complete",
				Message:     "thank-you mail sent, reservation completed",
				TargetTable: "reservations",
				TargetID:    reservation.ID,
				Actor:       "scheduler",
			})
		})
		if err != nil {
			// Mail is out but the flip failed; the next run re-sends.
			// Accepted as the cheaper failure mode over completing without
			// having mailed.
			uc.logger.Error("DispatchNotifications: completion failed for id=%d: %v", reservation.ID, err)
			detail.Error = err.Error()
			summary.Details = append(summary.Details, detail)
			continue
		}

		detail.StatusUpdated = true
		summary.StatusUpdated++
		summary.Details = append(summary.Details, detail)
	}

	uc.logger.Info("DispatchNotifications: thank-you done, sent=%d failed=%d completed=%d",
		summary.Sent, summary.Failed, summary.StatusUpdated)
	return summary, nil
}

// runReminder mails confirmed reservations flying offset days from now.
// The notification_records table is the idempotency marker; only a
// recorded successful send suppresses a re-send.
func (uc *UseCase) runReminder(ctx context.Context, jobType string) (*Summary, error) {
	offset := domain.ReminderOffsets[jobType]
	target := dateOnly(uc.timeProvider.Now()).AddDate(0, 0, offset)

	reservations, err := uc.reservationRepo.ListConfirmedOnDate(ctx, target)
	if err != nil {
		uc.logger.Error("DispatchNotifications: %s listing failed: %v", jobType, err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	summary := &Summary{Job: jobType, Total: len(reservations)}
	uc.logger.Info("DispatchNotifications: %s run, %d candidates for %s",
		jobType, len(reservations), target.Format(domain.DateFormat))

	for _, reservation := range reservations {
		detail := Detail{ReservationID: reservation.ID, BookingNumber: reservation.BookingNumber}

		sent, err := uc.notificationRepo.HasSent(ctx, reservation.ID, jobType)
		if err != nil {
			uc.logger.Error("DispatchNotifications: idempotency check failed for id=%d: %v", reservation.ID, err)
			detail.Error = err.Error()
			summary.Failed++
			summary.Details = append(summary.Details, detail)
			continue
		}
		if sent {
			summary.Skipped++
			summary.Details = append(summary.Details, detail)
			continue
		}

		msg := mailer.Message{
			To:       reservation.CustomerEmail,
			Template: mailer.TemplateFlightReminder,
			Params: map[string]string{
				"customerName":  reservation.CustomerName,
				"bookingNumber": reservation.BookingNumber,
				"courseTitle":   reservation.CourseTitle,
				"heliportName":  reservation.HeliportName,
				"flightDate":    reservation.FlightDate.Format(domain.DateFormat),
				"flightTime":    reservation.FlightTime.String(),
				"daysBefore":    fmt.Sprintf("%d", offset),
			},
		}

		if err := uc.mailerClient.Send(ctx, msg); err != nil {
			uc.logger.Warn("DispatchNotifications: %s send failed for id=%d: %v", jobType, reservation.ID, err)
			uc.recordOutcome(ctx, reservation.ID, jobType, domain.NotificationFailed, err.Error())
			detail.Error = err.Error()
			summary.Failed++
			summary.Details = append(summary.Details, detail)
			continue
		}

		uc.recordOutcome(ctx, reservation.ID, jobType, domain.NotificationSent, "")
		detail.EmailSent = true
		summary.Sent++
		summary.Details = append(summary.Details, detail)
	}

	uc.logger.Info("DispatchNotifications: %s done, sent=%d failed=%d skipped=%d",
		jobType, summary.Sent, summary.Failed, summary.Skipped)
	return summary, nil
}

// recordOutcome persists a send attempt. A failure to record is logged and
// swallowed; losing a failure marker only means one extra send attempt.
func (uc *UseCase) recordOutcome(ctx context.Context, reservationID int64, jobType string, status domain.NotificationStatus, detail string) {
	rec := &domain.NotificationRecord{
		ReservationID: reservationID,
		JobType:       jobType,
		Status:        status,
		Detail:        detail,
	}
	if err := uc.notificationRepo.Record(ctx, rec); err != nil {
		if errors.Is(err, notificationRepo.ErrAlreadySent) {
			uc.logger.Warn("DispatchNotifications: %s already recorded for id=%d, concurrent run",
				jobType, reservationID)
			return
		}
		uc.logger.Error("DispatchNotifications: failed to record %s outcome for id=%d: %v",
			jobType, reservationID, err)
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
