// Package scheduler runs the recurring background jobs, currently the
// hourly sweep that flags unpaid fees past their due date.
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gardenhub-dev/gardenhub/internal/models"
	"github.com/gardenhub-dev/gardenhub/internal/notify"
	"github.com/gardenhub-dev/gardenhub/internal/store"
)

type Scheduler struct {
	cron     *cron.Cron
	store    store.Store
	notifier *notify.Notifier
}

func New(s store.Store, n *notify.Notifier) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		store:    s,
		notifier: n,
	}
}

func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc("@hourly", func() {
		if err := s.SweepOverduePayments(time.Now()); err != nil {
			log.Printf("Overdue payment sweep failed: %v", err)
		}
	}); err != nil {
		log.Printf("Failed to schedule overdue payment sweep: %v", err)
		return
	}

	s.cron.Start()
	log.Println("Scheduler started, sweeping overdue payments hourly")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// SweepOverduePayments marks every pending payment past its due date as
// overdue and notifies the payer. Each payment is handled independently
// so one failure does not block the rest.
func (s *Scheduler) SweepOverduePayments(now time.Time) error {
	due, err := s.store.DuePendingPayments(now)
	if err != nil {
		return err
	}

	for i := range due {
		payment := due[i]

		if _, err := s.store.UpdatePayment(payment.ID, map[string]interface{}{
			"status": models.PaymentOverdue,
		}); err != nil {
			log.Printf("Failed to mark payment %d overdue: %v", payment.ID, err)
			continue
		}

		userID := payment.UserID
		if _, err := s.notifier.Notify(&models.Notification{
			Title:             "Payment Overdue",
			Message:           "Your yearly plot fee is now overdue. Please pay as soon as possible to keep your plot assignment.",
			Type:              models.NotificationPayment,
			Priority:          models.PriorityHigh,
			UserID:            &userID,
			RelatedEntityType: "payment",
			RelatedEntityID:   &payment.ID,
			ActionLink:        "/payments",
		}); err != nil {
			log.Printf("Failed to create overdue notification for payment %d: %v", payment.ID, err)
		}
	}

	return nil
}
