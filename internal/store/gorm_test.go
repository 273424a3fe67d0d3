package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardenhub-dev/gardenhub/db"
	"github.com/gardenhub-dev/gardenhub/internal/models"
)

func newTestStore(t *testing.T) Store {
	t.Helper()

	require.NoError(t, db.ConnectTestDatabase())
	require.NoError(t, db.MigrateDatabase())

	return NewStore(db.DB)
}

func seedUser(t *testing.T, s Store, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Email:        username + "@example.com",
		FirstName:    "Seed",
		LastName:     "User",
		Role:         models.RoleGardener,
	}
	require.NoError(t, s.CreateUser(user))

	return user
}

func TestUserLookups(t *testing.T) {
	s := newTestStore(t)
	user := seedUser(t, s, "lookup")

	byID, err := s.UserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "lookup", byID.Username)

	byName, err := s.UserByUsername("lookup")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := s.UserByEmail("lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = s.UserByID(999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UserByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvailablePlotsOrdering(t *testing.T) {
	s := newTestStore(t)

	for _, plot := range []models.Plot{
		{PlotNumber: "C3", Status: models.PlotAvailable, Area: "C", Size: "10x10", YearlyFee: 5000},
		{PlotNumber: "A1", Status: models.PlotAvailable, Area: "A", Size: "10x10", YearlyFee: 5000},
		{PlotNumber: "B2", Status: models.PlotAssigned, Area: "B", Size: "10x10", YearlyFee: 5000},
	} {
		p := plot
		require.NoError(t, s.CreatePlot(&p))
	}

	available, err := s.AvailablePlots()
	require.NoError(t, err)

	require.Len(t, available, 2)
	assert.Equal(t, "A1", available[0].PlotNumber)
	assert.Equal(t, "C3", available[1].PlotNumber)
}

func TestUserMessagesVisibility(t *testing.T) {
	s := newTestStore(t)
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	carol := seedUser(t, s, "carol")

	toBob := models.Message{SenderID: alice.ID, RecipientID: &bob.ID, Subject: "hi", Content: "hello bob"}
	toCarol := models.Message{SenderID: bob.ID, RecipientID: &carol.ID, Subject: "hey", Content: "hello carol"}
	global := models.Message{SenderID: alice.ID, Subject: "all", Content: "hello everyone", IsGlobal: true}

	for _, message := range []*models.Message{&toBob, &toCarol, &global} {
		require.NoError(t, s.CreateMessage(message))
	}

	// Bob sees: the message to him, the one he sent, and the global one.
	bobInbox, err := s.UserMessages(bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobInbox, 3)

	// Carol sees only her direct message and the global one.
	carolInbox, err := s.UserMessages(carol.ID)
	require.NoError(t, err)
	assert.Len(t, carolInbox, 2)
}

func TestNotificationVisibilityAndCounts(t *testing.T) {
	s := newTestStore(t)
	user := seedUser(t, s, "notified")
	other := seedUser(t, s, "other")

	personal := models.Notification{Title: "p", Message: "personal", Type: models.NotificationEvent, Priority: models.PriorityMedium, Status: models.NotificationUnread, UserID: &user.ID}
	global := models.Notification{Title: "g", Message: "global", Type: models.NotificationWeather, Priority: models.PriorityMedium, Status: models.NotificationUnread, IsGlobal: true}
	foreign := models.Notification{Title: "f", Message: "foreign", Type: models.NotificationEvent, Priority: models.PriorityMedium, Status: models.NotificationUnread, UserID: &other.ID}

	for _, notification := range []*models.Notification{&personal, &global, &foreign} {
		require.NoError(t, s.CreateNotification(notification))
	}

	visible, err := s.UserNotifications(user.ID)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	count, err := s.UnreadNotificationCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, s.MarkAllNotificationsRead(user.ID, time.Now()))

	count, err = s.UnreadNotificationCount(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The other user's personal notification was untouched.
	count, err = s.UnreadNotificationCount(other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteNotificationNotFound(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.DeleteNotification(42), ErrNotFound)
}

func TestDuePendingPayments(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	pastDue := models.Payment{UserID: 1, PlotID: 1, Amount: 5000, Status: models.PaymentPending, DueDate: now.AddDate(0, 0, -1)}
	notYet := models.Payment{UserID: 1, PlotID: 2, Amount: 5000, Status: models.PaymentPending, DueDate: now.AddDate(0, 0, 1)}
	alreadyOverdue := models.Payment{UserID: 1, PlotID: 3, Amount: 5000, Status: models.PaymentOverdue, DueDate: now.AddDate(0, 0, -5)}

	for _, payment := range []*models.Payment{&pastDue, &notYet, &alreadyOverdue} {
		require.NoError(t, s.CreatePayment(payment))
	}

	due, err := s.DuePendingPayments(now)
	require.NoError(t, err)

	require.Len(t, due, 1)
	assert.Equal(t, pastDue.ID, due[0].ID)
}

func TestTransactionRollsBack(t *testing.T) {
	s := newTestStore(t)

	err := s.Transaction(func(tx Store) error {
		if err := tx.CreatePlot(&models.Plot{
			PlotNumber: "T1", Status: models.PlotAvailable, Area: "T", Size: "10x10", YearlyFee: 5000,
		}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	_, err = s.PlotByNumber("T1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionCommits(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Transaction(func(tx Store) error {
		return tx.CreatePlot(&models.Plot{
			PlotNumber: "T2", Status: models.PlotAvailable, Area: "T", Size: "10x10", YearlyFee: 5000,
		})
	}))

	plot, err := s.PlotByNumber("T2")
	require.NoError(t, err)
	assert.Equal(t, "T2", plot.PlotNumber)
}
