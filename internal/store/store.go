package store

import (
	"errors"
	"time"

	"github.com/gardenhub-dev/gardenhub/internal/models"
)

// ErrNotFound is returned when a lookup by id (or other unique key) has no
// matching record. Handlers translate it to a 404.
var ErrNotFound = errors.New("record not found")

// Store is the repository boundary for all entity access. The gorm
// implementation backs production (Postgres) and tests (in-memory sqlite).
type Store interface {
	// Users
	CreateUser(user *models.User) error
	UserByID(id uint) (*models.User, error)
	UserByUsername(username string) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	Users() ([]models.User, error)

	// Plots
	CreatePlot(plot *models.Plot) error
	PlotByID(id uint) (*models.Plot, error)
	PlotByNumber(plotNumber string) (*models.Plot, error)
	Plots() ([]models.Plot, error)
	AvailablePlots() ([]models.Plot, error)
	UpdatePlot(id uint, updates map[string]interface{}) (*models.Plot, error)

	// Applications
	CreateApplication(application *models.Application) error
	ApplicationByID(id uint) (*models.Application, error)
	Applications() ([]models.Application, error)
	UserApplications(userID uint) ([]models.Application, error)
	UpdateApplication(id uint, updates map[string]interface{}) (*models.Application, error)

	// Work days
	CreateWorkDay(workDay *models.WorkDay) error
	WorkDayByID(id uint) (*models.WorkDay, error)
	WorkDays() ([]models.WorkDay, error)

	// Work day attendance
	CreateAttendance(attendance *models.WorkDayAttendance) error
	AttendanceByID(id uint) (*models.WorkDayAttendance, error)
	WorkDayAttendances(workDayID uint) ([]models.WorkDayAttendance, error)
	UserAttendances(userID uint) ([]models.WorkDayAttendance, error)
	UpdateAttendance(id uint, updates map[string]interface{}) (*models.WorkDayAttendance, error)

	// Payments
	CreatePayment(payment *models.Payment) error
	PaymentByID(id uint) (*models.Payment, error)
	Payments() ([]models.Payment, error)
	UserPayments(userID uint) ([]models.Payment, error)
	DuePendingPayments(asOf time.Time) ([]models.Payment, error)
	UpdatePayment(id uint, updates map[string]interface{}) (*models.Payment, error)

	// Forum
	CreateForumQuestion(question *models.ForumQuestion) error
	ForumQuestionByID(id uint) (*models.ForumQuestion, error)
	ForumQuestions() ([]models.ForumQuestion, error)
	CreateForumAnswer(answer *models.ForumAnswer) error
	ForumAnswers(questionID uint) ([]models.ForumAnswer, error)

	// Messages
	CreateMessage(message *models.Message) error
	MessageByID(id uint) (*models.Message, error)
	UserMessages(userID uint) ([]models.Message, error)
	UpdateMessage(id uint, updates map[string]interface{}) (*models.Message, error)

	// Events
	CreateEvent(event *models.Event) error
	Events() ([]models.Event, error)

	// Notifications
	CreateNotification(notification *models.Notification) error
	NotificationByID(id uint) (*models.Notification, error)
	UserNotifications(userID uint) ([]models.Notification, error)
	UnreadNotificationCount(userID uint) (int64, error)
	UpdateNotification(id uint, updates map[string]interface{}) (*models.Notification, error)
	MarkAllNotificationsRead(userID uint, readAt time.Time) error
	DeleteNotification(id uint) error

	// Transaction runs fn against a store bound to a single transaction,
	// rolling back if fn returns an error.
	Transaction(fn func(Store) error) error
}
