package store

import (
	"errors"
	"time"

	"github.com/gardenhub-dev/gardenhub/internal/models"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Users

func (s *gormStore) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *gormStore) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) UserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) Users() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Plots

func (s *gormStore) CreatePlot(plot *models.Plot) error {
	return s.db.Create(plot).Error
}

func (s *gormStore) PlotByID(id uint) (*models.Plot, error) {
	var plot models.Plot
	if err := s.db.First(&plot, id).Error; err != nil {
		return nil, translate(err)
	}
	return &plot, nil
}

func (s *gormStore) PlotByNumber(plotNumber string) (*models.Plot, error) {
	var plot models.Plot
	if err := s.db.Where("plot_number = ?", plotNumber).First(&plot).Error; err != nil {
		return nil, translate(err)
	}
	return &plot, nil
}

func (s *gormStore) Plots() ([]models.Plot, error) {
	var plots []models.Plot
	if err := s.db.Order("plot_number").Find(&plots).Error; err != nil {
		return nil, err
	}
	return plots, nil
}

func (s *gormStore) AvailablePlots() ([]models.Plot, error) {
	var plots []models.Plot
	if err := s.db.Where("status = ?", models.PlotAvailable).
		Order("plot_number").
		Find(&plots).Error; err != nil {
		return nil, err
	}
	return plots, nil
}

func (s *gormStore) UpdatePlot(id uint, updates map[string]interface{}) (*models.Plot, error) {
	if err := s.db.Model(&models.Plot{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.PlotByID(id)
}

// Applications

func (s *gormStore) CreateApplication(application *models.Application) error {
	return s.db.Create(application).Error
}

func (s *gormStore) ApplicationByID(id uint) (*models.Application, error) {
	var application models.Application
	if err := s.db.First(&application, id).Error; err != nil {
		return nil, translate(err)
	}
	return &application, nil
}

func (s *gormStore) Applications() ([]models.Application, error) {
	var applications []models.Application
	if err := s.db.Order("submitted_at DESC").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (s *gormStore) UserApplications(userID uint) ([]models.Application, error) {
	var applications []models.Application
	if err := s.db.Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (s *gormStore) UpdateApplication(id uint, updates map[string]interface{}) (*models.Application, error) {
	if err := s.db.Model(&models.Application{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.ApplicationByID(id)
}

// Work days

func (s *gormStore) CreateWorkDay(workDay *models.WorkDay) error {
	return s.db.Create(workDay).Error
}

func (s *gormStore) WorkDayByID(id uint) (*models.WorkDay, error) {
	var workDay models.WorkDay
	if err := s.db.First(&workDay, id).Error; err != nil {
		return nil, translate(err)
	}
	return &workDay, nil
}

func (s *gormStore) WorkDays() ([]models.WorkDay, error) {
	var workDays []models.WorkDay
	if err := s.db.Order("date").Find(&workDays).Error; err != nil {
		return nil, err
	}
	return workDays, nil
}

// Work day attendance

func (s *gormStore) CreateAttendance(attendance *models.WorkDayAttendance) error {
	return s.db.Create(attendance).Error
}

func (s *gormStore) AttendanceByID(id uint) (*models.WorkDayAttendance, error) {
	var attendance models.WorkDayAttendance
	if err := s.db.First(&attendance, id).Error; err != nil {
		return nil, translate(err)
	}
	return &attendance, nil
}

func (s *gormStore) WorkDayAttendances(workDayID uint) ([]models.WorkDayAttendance, error) {
	var attendances []models.WorkDayAttendance
	if err := s.db.Where("work_day_id = ?", workDayID).Find(&attendances).Error; err != nil {
		return nil, err
	}
	return attendances, nil
}

func (s *gormStore) UserAttendances(userID uint) ([]models.WorkDayAttendance, error) {
	var attendances []models.WorkDayAttendance
	if err := s.db.Where("user_id = ?", userID).Find(&attendances).Error; err != nil {
		return nil, err
	}
	return attendances, nil
}

func (s *gormStore) UpdateAttendance(id uint, updates map[string]interface{}) (*models.WorkDayAttendance, error) {
	if err := s.db.Model(&models.WorkDayAttendance{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.AttendanceByID(id)
}

// Payments

func (s *gormStore) CreatePayment(payment *models.Payment) error {
	return s.db.Create(payment).Error
}

func (s *gormStore) PaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.First(&payment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (s *gormStore) Payments() ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Order("due_date").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *gormStore) UserPayments(userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Where("user_id = ?", userID).Order("due_date").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *gormStore) DuePendingPayments(asOf time.Time) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Where("status = ? AND due_date < ?", models.PaymentPending, asOf).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *gormStore) UpdatePayment(id uint, updates map[string]interface{}) (*models.Payment, error) {
	if err := s.db.Model(&models.Payment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.PaymentByID(id)
}

// Forum

func (s *gormStore) CreateForumQuestion(question *models.ForumQuestion) error {
	return s.db.Create(question).Error
}

func (s *gormStore) ForumQuestionByID(id uint) (*models.ForumQuestion, error) {
	var question models.ForumQuestion
	if err := s.db.First(&question, id).Error; err != nil {
		return nil, translate(err)
	}
	return &question, nil
}

func (s *gormStore) ForumQuestions() ([]models.ForumQuestion, error) {
	var questions []models.ForumQuestion
	if err := s.db.Order("created_at DESC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *gormStore) CreateForumAnswer(answer *models.ForumAnswer) error {
	return s.db.Create(answer).Error
}

func (s *gormStore) ForumAnswers(questionID uint) ([]models.ForumAnswer, error) {
	var answers []models.ForumAnswer
	if err := s.db.Where("question_id = ?", questionID).
		Order("created_at").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// Messages

func (s *gormStore) CreateMessage(message *models.Message) error {
	return s.db.Create(message).Error
}

func (s *gormStore) MessageByID(id uint) (*models.Message, error) {
	var message models.Message
	if err := s.db.First(&message, id).Error; err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

func (s *gormStore) UserMessages(userID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.
		Where("sender_id = ? OR recipient_id = ? OR is_global = ?", userID, userID, true).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *gormStore) UpdateMessage(id uint, updates map[string]interface{}) (*models.Message, error) {
	if err := s.db.Model(&models.Message{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.MessageByID(id)
}

// Events

func (s *gormStore) CreateEvent(event *models.Event) error {
	return s.db.Create(event).Error
}

func (s *gormStore) Events() ([]models.Event, error) {
	var events []models.Event
	if err := s.db.Order("date").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Notifications

func (s *gormStore) CreateNotification(notification *models.Notification) error {
	return s.db.Create(notification).Error
}

func (s *gormStore) NotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, id).Error; err != nil {
		return nil, translate(err)
	}
	return &notification, nil
}

func (s *gormStore) UserNotifications(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.
		Where("user_id = ? OR is_global = ?", userID, true).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *gormStore) UnreadNotificationCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("(user_id = ? OR is_global = ?) AND status = ?", userID, true, models.NotificationUnread).
		Count(&count).Error
	return count, err
}

func (s *gormStore) UpdateNotification(id uint, updates map[string]interface{}) (*models.Notification, error) {
	if err := s.db.Model(&models.Notification{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.NotificationByID(id)
}

func (s *gormStore) MarkAllNotificationsRead(userID uint, readAt time.Time) error {
	return s.db.Model(&models.Notification{}).
		Where("(user_id = ? OR is_global = ?) AND status = ?", userID, true, models.NotificationUnread).
		Updates(map[string]interface{}{
			"status":  models.NotificationRead,
			"read_at": readAt,
		}).Error
}

func (s *gormStore) DeleteNotification(id uint) error {
	result := s.db.Delete(&models.Notification{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
