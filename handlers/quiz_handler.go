package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quizplay/models"
	"quizplay/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	catalog *services.CatalogService
}

func NewQuizHandler(catalog *services.CatalogService) *QuizHandler {
	return &QuizHandler{
		catalog: catalog,
	}
}

// loadQuiz resolves the :id path parameter to a quiz, writing the error
// response itself when the id is malformed or unknown.
func (h *QuizHandler) loadQuiz(c *gin.Context) (*models.Quiz, bool) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return nil, false
	}

	quiz, err := h.catalog.GetByID(uint(quizID))
	if err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}

	return quiz, true
}

// ListQuizzes returns one page of quizzes, optionally filtered by a
// search term over the question text.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	search := c.Query("search")
	page, err := strconv.Atoi(c.DefaultQuery("pageno", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	quizzes, count, err := h.catalog.Search(search, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quizzes":        quizzes,
		"search":         search,
		"pageno":         page,
		"total":          count,
		"items_per_page": services.ItemsPerPage,
	})
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, ok := h.loadQuiz(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req services.SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.catalog.Create(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quiz, ok := h.loadQuiz(c)
	if !ok {
		return
	}

	var req services.SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.catalog.Update(quiz.ID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quiz, ok := h.loadQuiz(c)
	if !ok {
		return
	}

	if err := h.catalog.Delete(quiz.ID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

// PlayQuiz serves a single quiz for one-off play. The expected answer
// is never included in the response.
func (h *QuizHandler) PlayQuiz(c *gin.Context) {
	quiz, ok := h.loadQuiz(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       quiz.ID,
		"question": quiz.Question,
		"answer":   c.Query("answer"),
	})
}

// CheckQuiz compares the submitted answer against a single quiz. No
// state is carried; reloading repeats the same stateless comparison.
func (h *QuizHandler) CheckQuiz(c *gin.Context) {
	quiz, ok := h.loadQuiz(c)
	if !ok {
		return
	}

	answer := c.Query("answer")

	c.JSON(http.StatusOK, gin.H{
		"quiz":    quiz,
		"answer":  answer,
		"correct": services.CheckAnswer(quiz, answer),
	})
}
