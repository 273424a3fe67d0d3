package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gardenhub-dev/gardenhub/db"
	"github.com/gardenhub-dev/gardenhub/internal/auth"
	"github.com/gardenhub-dev/gardenhub/internal/handlers"
	"github.com/gardenhub-dev/gardenhub/internal/models"
	"github.com/gardenhub-dev/gardenhub/internal/notify"
	"github.com/gardenhub-dev/gardenhub/internal/router"
	"github.com/gardenhub-dev/gardenhub/internal/store"
	"github.com/gardenhub-dev/gardenhub/internal/workflow"
)

type nullMailer struct{}

func (nullMailer) Send(to, subject, text, html string) error { return nil }

func newTestServer(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	auth.SetJWTSecretForTests("test-secret")

	require.NoError(t, db.ConnectTestDatabase())
	require.NoError(t, db.MigrateDatabase())

	s := store.NewStore(db.DB)
	notifier := notify.NewNotifier(s, nullMailer{})
	wf := workflow.NewService(s, notifier)
	h := handlers.New(s, wf, notifier)

	return router.NewRouter(h, s), s
}

func createUser(t *testing.T, s store.Store, username string, role models.UserRole) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashed),
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
	}
	require.NoError(t, s.CreateUser(user))

	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := auth.GenerateJWT(user.ID, user.Username, string(user.Role))
	require.NoError(t, err)

	return token
}

func doRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginAndMe(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(r, http.MethodPost, "/api/users", "", gin.H{
		"username":  "rosa",
		"password":  "password123",
		"email":     "rosa@example.com",
		"firstName": "Rosa",
		"lastName":  "Gardener",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.Contains(t, w.Body.String(), `"role":"gardener"`)

	// Duplicate username.
	w = doRequest(r, http.MethodPost, "/api/users", "", gin.H{
		"username":  "rosa",
		"password":  "password123",
		"email":     "other@example.com",
		"firstName": "Rosa",
		"lastName":  "Copy",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "rosa",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var sessionCookie string
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" {
			sessionCookie = cookie.Value
		}
	}
	require.NotEmpty(t, sessionCookie)

	w = doRequest(r, http.MethodGet, "/api/auth/user", sessionCookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"rosa"`)

	// Wrong password.
	w = doRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "rosa",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresAuth(t *testing.T) {
	r, _ := newTestServer(t)

	w := doRequest(r, http.MethodGet, "/api/auth/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlotRoleGates(t *testing.T) {
	r, s := newTestServer(t)
	gardener := createUser(t, s, "digger", models.RoleGardener)
	manager := createUser(t, s, "boss", models.RoleManager)

	// Listing is public.
	w := doRequest(r, http.MethodGet, "/api/plots", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	plotBody := gin.H{"plotNumber": "A1", "area": "A", "size": "10x10", "yearlyFee": 5000}

	w = doRequest(r, http.MethodPost, "/api/plots", tokenFor(t, gardener), plotBody)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodPost, "/api/plots", tokenFor(t, manager), plotBody)
	require.Equal(t, http.StatusCreated, w.Code)

	// Responses use the same camelCase keys the requests bind.
	assert.Contains(t, w.Body.String(), `"plotNumber":"A1"`)
	assert.Contains(t, w.Body.String(), `"yearlyFee":5000`)
	assert.NotContains(t, w.Body.String(), `"PlotNumber"`)

	// Duplicate plot number.
	w = doRequest(r, http.MethodPost, "/api/plots", tokenFor(t, manager), plotBody)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPlotAssignmentInvariant(t *testing.T) {
	r, s := newTestServer(t)
	gardener := createUser(t, s, "tenant", models.RoleGardener)
	manager := createUser(t, s, "landlord", models.RoleManager)

	require.NoError(t, s.CreatePlot(&models.Plot{
		PlotNumber: "A1", Status: models.PlotAvailable, Area: "A", Size: "10x10", YearlyFee: 5000,
	}))
	plot, err := s.PlotByNumber("A1")
	require.NoError(t, err)

	path := fmt.Sprintf("/api/plots/%d", plot.ID)

	// Assigning without a status moves the plot to assigned.
	w := doRequest(r, http.MethodPut, path, tokenFor(t, manager), gin.H{"assignedTo": gardener.ID})
	require.Equal(t, http.StatusOK, w.Code)

	plot, err = s.PlotByID(plot.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlotAssigned, plot.Status)
	require.NotNil(t, plot.AssignedTo)
	assert.Equal(t, gardener.ID, *plot.AssignedTo)

	// An available plot cannot carry an assignee.
	w = doRequest(r, http.MethodPut, path, tokenFor(t, manager), gin.H{
		"status":     "available",
		"assignedTo": gardener.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown assignee.
	w = doRequest(r, http.MethodPut, path, tokenFor(t, manager), gin.H{"assignedTo": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Releasing the plot clears the assignee.
	w = doRequest(r, http.MethodPut, path, tokenFor(t, manager), gin.H{"status": "available"})
	require.Equal(t, http.StatusOK, w.Code)

	plot, err = s.PlotByID(plot.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlotAvailable, plot.Status)
	assert.Nil(t, plot.AssignedTo)
}

func TestApplicationLifecycleOverHTTP(t *testing.T) {
	r, s := newTestServer(t)
	gardener := createUser(t, s, "applicant", models.RoleGardener)
	committee := createUser(t, s, "reviewer", models.RoleCommittee)

	require.NoError(t, s.CreatePlot(&models.Plot{
		PlotNumber: "A1", Status: models.PlotAvailable, Area: "A", Size: "10x10", YearlyFee: 5000,
	}))

	w := doRequest(r, http.MethodPost, "/api/applications", tokenFor(t, gardener), gin.H{
		"gardenerType":  "new",
		"preferredArea": "A",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Gardeners cannot decide applications.
	w = doRequest(r, http.MethodPut, fmt.Sprintf("/api/applications/%d", created.ID), tokenFor(t, gardener), gin.H{
		"status": "approved",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Rejection without a reason is a validation error.
	w = doRequest(r, http.MethodPut, fmt.Sprintf("/api/applications/%d", created.ID), tokenFor(t, committee), gin.H{
		"status": "rejected",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, fmt.Sprintf("/api/applications/%d", created.ID), tokenFor(t, committee), gin.H{
		"status": "approved",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"approved"`)
	assert.Contains(t, w.Body.String(), `"processingNotes"`)

	plot, err := s.PlotByNumber("A1")
	require.NoError(t, err)
	assert.Equal(t, models.PlotAssigned, plot.Status)
	require.NotNil(t, plot.AssignedTo)
	assert.Equal(t, gardener.ID, *plot.AssignedTo)

	// Approving again is an invalid transition.
	w = doRequest(r, http.MethodPut, fmt.Sprintf("/api/applications/%d", created.ID), tokenFor(t, committee), gin.H{
		"status": "approved",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplicationVisibility(t *testing.T) {
	r, s := newTestServer(t)
	alice := createUser(t, s, "alice", models.RoleGardener)
	bob := createUser(t, s, "bob", models.RoleGardener)
	committee := createUser(t, s, "chair", models.RoleCommittee)

	w := doRequest(r, http.MethodPost, "/api/applications", tokenFor(t, alice), gin.H{"gardenerType": "new"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Bob cannot read Alice's application.
	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/applications/%d", created.ID), tokenFor(t, bob), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Committee can.
	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/applications/%d", created.ID), tokenFor(t, committee), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Bob's list is empty, the committee's is not.
	w = doRequest(r, http.MethodGet, "/api/applications", tokenFor(t, bob), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/applications", tokenFor(t, committee), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "[]", w.Body.String())
}

func TestWorkDaySignupFlow(t *testing.T) {
	r, s := newTestServer(t)
	gardener := createUser(t, s, "worker", models.RoleGardener)
	helper := createUser(t, s, "helper", models.RoleGardener)
	committee := createUser(t, s, "organizer", models.RoleCommittee)

	w := doRequest(r, http.MethodPost, "/api/workdays", tokenFor(t, committee), gin.H{
		"title":        "Fence repair",
		"date":         time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
		"startTime":    "09:00",
		"endTime":      "12:00",
		"maxAttendees": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var workDay models.WorkDay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &workDay))

	// The announcement went out to everyone.
	notifications, err := s.UserNotifications(gardener.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].IsGlobal)

	attend := fmt.Sprintf("/api/workdays/%d/attend", workDay.ID)

	w = doRequest(r, http.MethodPost, attend, tokenFor(t, gardener), nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate signup.
	w = doRequest(r, http.MethodPost, attend, tokenFor(t, gardener), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Capacity reached.
	w = doRequest(r, http.MethodPost, attend, tokenFor(t, helper), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The signup list is readable without logging in.
	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/workdays/%d/attendances", workDay.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"signed_up"`)
}

func TestNotificationEndpoints(t *testing.T) {
	r, s := newTestServer(t)
	gardener := createUser(t, s, "reader", models.RoleGardener)
	committee := createUser(t, s, "announcer", models.RoleCommittee)

	// Gardeners cannot broadcast.
	w := doRequest(r, http.MethodPost, "/api/notifications", tokenFor(t, gardener), gin.H{
		"title":    "Spam",
		"message":  "everyone read this",
		"type":     "event",
		"isGlobal": true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodPost, "/api/notifications", tokenFor(t, committee), gin.H{
		"title":    "Harvest festival",
		"message":  "Join us on Saturday",
		"type":     "event",
		"isGlobal": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodGet, "/api/notifications", tokenFor(t, gardener), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Harvest festival")

	w = doRequest(r, http.MethodGet, "/api/notifications/unread/count", tokenFor(t, gardener), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())

	w = doRequest(r, http.MethodPatch, "/api/notifications/read-all", tokenFor(t, gardener), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/notifications/unread/count", tokenFor(t, gardener), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0}`, w.Body.String())
}

func TestMessageValidationAndRead(t *testing.T) {
	r, s := newTestServer(t)
	sender := createUser(t, s, "sender", models.RoleGardener)
	recipient := createUser(t, s, "recipient", models.RoleGardener)

	// Neither a recipient nor global.
	w := doRequest(r, http.MethodPost, "/api/messages", tokenFor(t, sender), gin.H{
		"subject": "void",
		"content": "goes nowhere",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Gardeners cannot send global messages.
	w = doRequest(r, http.MethodPost, "/api/messages", tokenFor(t, sender), gin.H{
		"subject":  "announcement",
		"content":  "hello all",
		"isGlobal": true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodPost, "/api/messages", tokenFor(t, sender), gin.H{
		"recipientId": recipient.ID,
		"subject":     "tomatoes",
		"content":     "want some?",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var message models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &message))

	// Only the recipient can mark it read.
	w = doRequest(r, http.MethodPut, fmt.Sprintf("/api/messages/%d/read", message.ID), tokenFor(t, sender), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodPut, fmt.Sprintf("/api/messages/%d/read", message.ID), tokenFor(t, recipient), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"readAt":null`)
}

func TestForumFlow(t *testing.T) {
	r, s := newTestServer(t)
	asker := createUser(t, s, "asker", models.RoleGardener)
	answerer := createUser(t, s, "answerer", models.RoleGardener)

	// Writing requires auth.
	w := doRequest(r, http.MethodPost, "/api/forum", "", gin.H{
		"title":   "Aphids",
		"content": "How do I get rid of aphids?",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, "/api/forum", tokenFor(t, asker), gin.H{
		"title":   "Aphids",
		"content": "How do I get rid of aphids?",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var question models.ForumQuestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &question))

	w = doRequest(r, http.MethodPost, fmt.Sprintf("/api/forum/%d/answers", question.ID), tokenFor(t, answerer), gin.H{
		"content": "Ladybugs work well.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Reading is public and includes the answers.
	w = doRequest(r, http.MethodGet, fmt.Sprintf("/api/forum/%d", question.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ladybugs work well.")

	w = doRequest(r, http.MethodGet, "/api/forum", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Aphids")

	w = doRequest(r, http.MethodGet, "/api/forum/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	r, s := newTestServer(t)
	gardener := createUser(t, s, "viewer", models.RoleGardener)

	require.NoError(t, s.CreatePlot(&models.Plot{
		PlotNumber: "A1", Status: models.PlotAvailable, Area: "A", Size: "10x10", YearlyFee: 5000,
	}))

	w := doRequest(r, http.MethodGet, "/api/dashboard", tokenFor(t, gardener), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"percentAssigned":0`)
	assert.Contains(t, w.Body.String(), `"workDay":null`)
}
