package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gardenhub-dev/gardenhub/internal/middleware"
	"github.com/gardenhub-dev/gardenhub/internal/models"
)

type CreateQuestionRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type CreateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) ListForumQuestions(ctx *gin.Context) {
	questions, err := h.Store.ForumQuestions()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, questions)
}

// GetForumQuestion returns a question with its answers attached.
func (h *Handler) GetForumQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	question, err := h.Store.ForumQuestionByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	answers, err := h.Store.ForumAnswers(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	question.Answers = answers

	ctx.JSON(http.StatusOK, question)
}

func (h *Handler) CreateForumQuestion(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req CreateQuestionRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	question := models.ForumQuestion{
		UserID:  current.ID,
		Title:   req.Title,
		Content: req.Content,
	}

	if err := h.Store.CreateForumQuestion(&question); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, question)
}

func (h *Handler) ListForumAnswers(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := h.Store.ForumQuestionByID(id); err != nil {
		respondError(ctx, err)
		return
	}

	answers, err := h.Store.ForumAnswers(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, answers)
}

func (h *Handler) CreateForumAnswer(ctx *gin.Context) {
	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := h.Store.ForumQuestionByID(id); err != nil {
		respondError(ctx, err)
		return
	}

	var req CreateAnswerRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	answer := models.ForumAnswer{
		QuestionID: id,
		UserID:     current.ID,
		Content:    req.Content,
	}

	if err := h.Store.CreateForumAnswer(&answer); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, answer)
}
