// Package dashboard aggregates the landing page statistics shown to
// every member after login.
package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/gardenhub-dev/gardenhub/internal/models"
	"github.com/gardenhub-dev/gardenhub/internal/store"
)

type PlotStats struct {
	Total           int `json:"total"`
	Available       int `json:"available"`
	PercentAssigned int `json:"percentAssigned"`
}

type ApplicationStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	New      int `json:"new"`
}

type NextWorkDay struct {
	Date         time.Time `json:"nextDate"`
	Title        string    `json:"title"`
	Signups      int       `json:"signups"`
	MaxAttendees int       `json:"maxAttendees"`
}

type PaymentStats struct {
	Outstanding      int `json:"outstanding"`
	OutstandingCount int `json:"outstandingCount"`
}

type UpcomingEvent struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Attendees int       `json:"attendees"`
}

type Stats struct {
	Plots        PlotStats        `json:"plots"`
	Applications ApplicationStats `json:"applications"`
	WorkDay      *NextWorkDay     `json:"workDay"`
	Payments     PaymentStats     `json:"payments"`
	Events       []UpcomingEvent  `json:"events"`
}

// Compute assembles the dashboard snapshot at the given instant. Sums are
// integer cents, percentAssigned is rounded to the nearest whole percent
// and reported as 0 for an empty garden.
func Compute(s store.Store, now time.Time) (*Stats, error) {
	plots, err := s.Plots()
	if err != nil {
		return nil, err
	}

	applications, err := s.Applications()
	if err != nil {
		return nil, err
	}

	workDays, err := s.WorkDays()
	if err != nil {
		return nil, err
	}

	payments, err := s.Payments()
	if err != nil {
		return nil, err
	}

	available := lo.CountBy(plots, func(p models.Plot) bool {
		return p.Status == models.PlotAvailable
	})

	percentAssigned := 0
	if len(plots) > 0 {
		percentAssigned = int(math.Round(float64(len(plots)-available) / float64(len(plots)) * 100))
	}

	pending := lo.CountBy(applications, func(a models.Application) bool {
		return a.Status == models.ApplicationPending
	})
	approved := lo.CountBy(applications, func(a models.Application) bool {
		return a.Status == models.ApplicationApproved
	})

	upcoming := lo.Filter(workDays, func(w models.WorkDay, _ int) bool {
		return w.Date.After(now)
	})
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})

	var next *NextWorkDay
	if len(upcoming) > 0 {
		signups, err := s.WorkDayAttendances(upcoming[0].ID)
		if err != nil {
			return nil, err
		}
		next = &NextWorkDay{
			Date:         upcoming[0].Date,
			Title:        upcoming[0].Title,
			Signups:      len(signups),
			MaxAttendees: upcoming[0].MaxAttendees,
		}
	}

	unpaid := lo.Filter(payments, func(p models.Payment, _ int) bool {
		return p.Status != models.PaymentPaid
	})
	outstanding := lo.SumBy(unpaid, func(p models.Payment) int {
		return p.Amount
	})

	events := make([]UpcomingEvent, 0, 3)
	for i := 0; i < len(upcoming) && i < 3; i++ {
		attendances, err := s.WorkDayAttendances(upcoming[i].ID)
		if err != nil {
			return nil, err
		}
		events = append(events, UpcomingEvent{
			ID:        upcoming[i].ID,
			Title:     upcoming[i].Title,
			Date:      upcoming[i].Date,
			StartTime: upcoming[i].StartTime,
			EndTime:   upcoming[i].EndTime,
			Attendees: len(attendances),
		})
	}

	return &Stats{
		Plots: PlotStats{
			Total:           len(plots),
			Available:       available,
			PercentAssigned: percentAssigned,
		},
		Applications: ApplicationStats{
			Total:    len(applications),
			Pending:  pending,
			Approved: approved,
			New:      pending,
		},
		WorkDay: next,
		Payments: PaymentStats{
			Outstanding:      outstanding,
			OutstandingCount: len(unpaid),
		},
		Events: events,
	}, nil
}
