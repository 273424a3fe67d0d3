package workflow

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gardenhub-dev/gardenhub/internal/models"
	"github.com/gardenhub-dev/gardenhub/internal/notify"
	"github.com/gardenhub-dev/gardenhub/internal/store"
)

// paymentDueDays is how long an approved applicant has to pay the yearly
// fee for the plot they were assigned.
const paymentDueDays = 30

// Actor identifies who is driving a workflow operation. Role checks that
// depend on the transition itself (revoke) happen here rather than in
// route middleware.
type Actor struct {
	ID   uint
	Role models.UserRole
}

// Service owns the application state machine:
//
//	pending -> approved (plot bound, payment created)
//	pending -> rejected (reason required)
//	approved -> rejected (manager revoke, plot released)
//
// Approvals and revocations serialize on a mutex so two concurrent
// approvals cannot bind the same plot.
type Service struct {
	store    store.Store
	notifier *notify.Notifier
	mu       sync.Mutex
}

func NewService(s store.Store, n *notify.Notifier) *Service {
	return &Service{store: s, notifier: n}
}

type SubmitInput struct {
	GardenerType        models.GardenerType
	PreferredArea       string
	RequestedPlotID     *uint
	SpecialRequests     string
	GardeningExperience string
}

// Submit files a new application for the given user. Returning gardeners
// receive a deterministic priority of 5 plus one point per previously
// approved application, capped at 10. New gardeners stay at 0.
func (s *Service) Submit(userID uint, in SubmitInput) (*models.Application, error) {
	if in.GardenerType != models.GardenerNew && in.GardenerType != models.GardenerReturning {
		return nil, fmt.Errorf("%w: gardenerType must be new or returning", ErrValidation)
	}

	priority := 0

	if in.GardenerType == models.GardenerReturning {
		previous, err := s.store.UserApplications(userID)
		if err != nil {
			return nil, err
		}

		approved := 0
		for i := range previous {
			if previous[i].Status == models.ApplicationApproved {
				approved++
			}
		}
		if approved > 5 {
			approved = 5
		}

		priority = 5 + approved
	}

	application := &models.Application{
		UserID:              userID,
		Status:              models.ApplicationPending,
		GardenerType:        in.GardenerType,
		PreferredArea:       in.PreferredArea,
		RequestedPlotID:     in.RequestedPlotID,
		SpecialRequests:     in.SpecialRequests,
		GardeningExperience: in.GardeningExperience,
		SubmittedAt:         time.Now(),
		Priority:            priority,
	}

	if err := s.store.CreateApplication(application); err != nil {
		return nil, err
	}

	return application, nil
}

// Decide moves an application toward the target status on behalf of the
// actor. The legal transitions are approve (pending->approved), reject
// (pending->rejected, reason required) and revoke (approved->rejected,
// manager only). Anything else is an invalid transition.
func (s *Service) Decide(actor Actor, applicationID uint, target models.ApplicationStatus, notes string) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	application, err := s.store.ApplicationByID(applicationID)
	if err != nil {
		return nil, err
	}

	switch {
	case target == models.ApplicationApproved && application.Status == models.ApplicationPending:
		return s.approve(actor, application, notes)
	case target == models.ApplicationRejected && application.Status == models.ApplicationPending:
		return s.reject(actor, application, notes)
	case target == models.ApplicationRejected && application.Status == models.ApplicationApproved:
		return s.revoke(actor, application, notes)
	default:
		return nil, ErrInvalidTransition
	}
}

func (s *Service) approve(actor Actor, application *models.Application, notes string) (*models.Application, error) {
	plot, err := s.selectPlot(application)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	var updated *models.Application

	err = s.store.Transaction(func(tx store.Store) error {
		updated, err = tx.UpdateApplication(application.ID, map[string]interface{}{
			"status":           models.ApplicationApproved,
			"processed_at":     now,
			"processed_by":     actor.ID,
			"processing_notes": notes,
		})
		if err != nil {
			return err
		}

		if _, err = tx.UpdatePlot(plot.ID, map[string]interface{}{
			"status":      models.PlotAssigned,
			"assigned_to": application.UserID,
		}); err != nil {
			return err
		}

		payment := &models.Payment{
			UserID:  application.UserID,
			PlotID:  plot.ID,
			Amount:  plot.YearlyFee,
			Status:  models.PaymentPending,
			DueDate: now.AddDate(0, 0, paymentDueDays),
			Notes:   fmt.Sprintf("Yearly fee for plot %s", plot.PlotNumber),
		}

		return tx.CreatePayment(payment)
	})
	if err != nil {
		return nil, err
	}

	userID := application.UserID
	if _, err := s.notifier.Notify(&models.Notification{
		Title: "Your Garden Plot Application Has Been Approved",
		Message: fmt.Sprintf("Congratulations! Your application has been approved and plot %s is now assigned to you. Please make the yearly fee payment to confirm your membership.",
			plot.PlotNumber),
		Type:              models.NotificationApplication,
		Priority:          models.PriorityHigh,
		UserID:            &userID,
		RelatedEntityType: "plot",
		RelatedEntityID:   &plot.ID,
		ActionLink:        "/payments",
	}); err != nil {
		log.Printf("Failed to create application notification for application %d: %v", application.ID, err)
	}

	return updated, nil
}

// selectPlot picks the applicant's requested plot when it is still
// available, otherwise the first available plot by ascending plot number.
func (s *Service) selectPlot(application *models.Application) (*models.Plot, error) {
	if application.RequestedPlotID != nil {
		plot, err := s.store.PlotByID(*application.RequestedPlotID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if plot != nil && plot.Status == models.PlotAvailable {
			return plot, nil
		}
	}

	available, err := s.store.AvailablePlots()
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, ErrNoPlotAvailable
	}

	return &available[0], nil
}

func (s *Service) reject(actor Actor, application *models.Application, notes string) (*models.Application, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", ErrValidation)
	}

	updated, err := s.store.UpdateApplication(application.ID, map[string]interface{}{
		"status":           models.ApplicationRejected,
		"processed_at":     time.Now(),
		"processed_by":     actor.ID,
		"processing_notes": notes,
	})
	if err != nil {
		return nil, err
	}

	userID := application.UserID
	if _, err := s.notifier.Notify(&models.Notification{
		Title:             "Your Garden Plot Application Was Not Approved",
		Message:           fmt.Sprintf("Unfortunately your application was not approved this season. Reason: %s", notes),
		Type:              models.NotificationApplication,
		Priority:          models.PriorityMedium,
		UserID:            &userID,
		RelatedEntityType: "application",
		RelatedEntityID:   &application.ID,
	}); err != nil {
		log.Printf("Failed to create application notification for application %d: %v", application.ID, err)
	}

	return updated, nil
}

// revoke re-flags an approved application as rejected and releases any
// plot still held by the applicant.
func (s *Service) revoke(actor Actor, application *models.Application, notes string) (*models.Application, error) {
	if actor.Role != models.RoleManager {
		return nil, ErrForbidden
	}

	plots, err := s.store.Plots()
	if err != nil {
		return nil, err
	}

	var updated *models.Application

	err = s.store.Transaction(func(tx store.Store) error {
		updated, err = tx.UpdateApplication(application.ID, map[string]interface{}{
			"status":           models.ApplicationRejected,
			"processed_at":     time.Now(),
			"processed_by":     actor.ID,
			"processing_notes": notes,
		})
		if err != nil {
			return err
		}

		for i := range plots {
			if plots[i].AssignedTo == nil || *plots[i].AssignedTo != application.UserID {
				continue
			}
			if _, err := tx.UpdatePlot(plots[i].ID, map[string]interface{}{
				"status":      models.PlotAvailable,
				"assigned_to": nil,
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	userID := application.UserID
	if _, err := s.notifier.Notify(&models.Notification{
		Title:             "Your Plot Assignment Has Been Revoked",
		Message:           "Your garden plot assignment has been revoked by the garden manager. Contact the committee if you believe this is in error.",
		Type:              models.NotificationApplication,
		Priority:          models.PriorityHigh,
		UserID:            &userID,
		RelatedEntityType: "application",
		RelatedEntityID:   &application.ID,
	}); err != nil {
		log.Printf("Failed to create application notification for application %d: %v", application.ID, err)
	}

	return updated, nil
}
