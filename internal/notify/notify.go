package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/gardenhub-dev/gardenhub/internal/mailer"
	"github.com/gardenhub-dev/gardenhub/internal/models"
	"github.com/gardenhub-dev/gardenhub/internal/store"
)

// Notifier persists notification records and fans out side effects:
// a websocket refresh nudge, and best-effort email for high and urgent
// priorities. Email failures are logged and never surface to the
// operation that triggered the notification.
type Notifier struct {
	store  store.Store
	mailer mailer.EmailSender
}

func NewNotifier(s store.Store, m mailer.EmailSender) *Notifier {
	return &Notifier{store: s, mailer: m}
}

func (n *Notifier) Notify(notification *models.Notification) (*models.Notification, error) {
	if notification.Status == "" {
		notification.Status = models.NotificationUnread
	}
	if notification.Priority == "" {
		notification.Priority = models.PriorityMedium
	}
	if notification.IsGlobal {
		notification.UserID = nil
	}

	if err := n.store.CreateNotification(notification); err != nil {
		return nil, err
	}

	if notification.IsGlobal {
		BroadcastRefresh(nil)
	} else {
		BroadcastRefresh(notification.UserID)
	}

	if highPriority(notification.Priority) && notification.UserID != nil {
		go n.emailNotification(*notification)
	}

	return notification, nil
}

// NotifyWorkDayScheduled creates the global work day announcement and
// emails every member with an address. Grounded in the work day creation
// fan-out of the committee workflow; the emails are best effort.
func (n *Notifier) NotifyWorkDayScheduled(workDay *models.WorkDay) (*models.Notification, error) {
	formattedDate := workDay.Date.Format("Monday, January 2")

	notification := &models.Notification{
		Title: "New Work Day Scheduled",
		Message: fmt.Sprintf("A new work day has been scheduled: %q on %s from %s to %s.",
			workDay.Title, formattedDate, workDay.StartTime, workDay.EndTime),
		Type:              models.NotificationWorkDay,
		Priority:          models.PriorityMedium,
		IsGlobal:          true,
		RelatedEntityType: "work_day",
		RelatedEntityID:   &workDay.ID,
		ActionLink:        fmt.Sprintf("/workdays/%d", workDay.ID),
	}

	created, err := n.Notify(notification)
	if err != nil {
		return nil, err
	}

	go n.emailAllUsers(created.Title, created.Message, created.Type, created.ActionLink)

	return created, nil
}

func (n *Notifier) MarkRead(id uint) (*models.Notification, error) {
	if _, err := n.store.NotificationByID(id); err != nil {
		return nil, err
	}

	return n.store.UpdateNotification(id, map[string]interface{}{
		"status":  models.NotificationRead,
		"read_at": time.Now(),
	})
}

func (n *Notifier) MarkAllRead(userID uint) error {
	return n.store.MarkAllNotificationsRead(userID, time.Now())
}

func (n *Notifier) Delete(id uint) error {
	return n.store.DeleteNotification(id)
}

func highPriority(priority models.NotificationPriority) bool {
	return priority == models.PriorityHigh || priority == models.PriorityUrgent
}

func (n *Notifier) emailNotification(notification models.Notification) {
	user, err := n.store.UserByID(*notification.UserID)
	if err != nil {
		log.Printf("Cannot send email: user %d not found: %v", *notification.UserID, err)
		return
	}

	if user.Email == "" {
		log.Printf("Cannot send email: user %d has no email address", user.ID)
		return
	}

	text, html := emailBody(&notification)

	if err := n.mailer.Send(user.Email, notification.Title, text, html); err != nil {
		log.Printf("Failed to send notification email to user %d: %v", user.ID, err)
	}
}

func (n *Notifier) emailAllUsers(title, message string, kind models.NotificationType, actionLink string) {
	users, err := n.store.Users()
	if err != nil {
		log.Printf("Failed to load users for email fan-out: %v", err)
		return
	}

	body := models.Notification{Title: title, Message: message, Type: kind, ActionLink: actionLink}
	text, html := emailBody(&body)

	for i := range users {
		if users[i].Email == "" {
			continue
		}
		if err := n.mailer.Send(users[i].Email, title, text, html); err != nil {
			log.Printf("Failed to send email notification to user %d: %v", users[i].ID, err)
		}
	}
}

// emailBody renders the plain-text and HTML forms of a notification
// email, closing with a line matched to the notification type.
func emailBody(notification *models.Notification) (string, string) {
	var closing string

	switch notification.Type {
	case models.NotificationWorkDay:
		closing = "Please sign up to participate if you can attend. Community garden success depends on member participation."
	case models.NotificationPayment:
		closing = "Please ensure timely payment to maintain your garden plot membership."
	case models.NotificationWeather:
		closing = "Please take appropriate measures to protect your plants."
	case models.NotificationMaintenance:
		closing = "Your attention to this maintenance issue will help keep our garden in good condition."
	case models.NotificationApplication:
		closing = "Thank you for your interest in our community garden!"
	case models.NotificationEvent:
		closing = "We hope to see you there!"
	}

	text := notification.Message + "\n\n" + closing

	actionButton := ""
	if notification.ActionLink != "" {
		actionButton = fmt.Sprintf(`<p style="margin-top: 20px;"><a href="%s" style="background-color: #2e7d32; color: white; padding: 10px 15px; text-decoration: none; border-radius: 4px;">View Details</a></p>`, notification.ActionLink)
	}

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2e7d32;">%s</h2>
  <p style="font-size: 16px; line-height: 1.5;">%s</p>
  <p style="font-size: 16px; line-height: 1.5;">%s</p>
  %s
  <p style="margin-top: 30px; font-size: 14px; color: #666;">This is an automated message from your Community Garden Management System. Please do not reply to this email.</p>
</div>`, notification.Title, notification.Message, closing, actionButton)

	return text, html
}
