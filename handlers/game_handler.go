package handlers

import (
	"errors"
	"net/http"

	"quizplay/middleware"
	"quizplay/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	game *services.GameService
}

func NewGameHandler(game *services.GameService) *GameHandler {
	return &GameHandler{
		game: game,
	}
}

// RandomPlay serves the next question of the visitor's random-order
// game, starting a new game when none is active.
func (h *GameHandler) RandomPlay(c *gin.Context) {
	visitorID := middleware.VisitorID(c)

	outcome, err := h.game.StartOrResume(c.Request.Context(), visitorID)
	if err != nil {
		h.writeGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.renderOutcome(outcome))
}

// RandomCheck evaluates the submitted answer for the current question
// of the visitor's game.
func (h *GameHandler) RandomCheck(c *gin.Context) {
	visitorID := middleware.VisitorID(c)
	answer := c.Query("answer")

	outcome, err := h.game.Evaluate(c.Request.Context(), visitorID, answer)
	if err != nil {
		h.writeGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.renderOutcome(outcome))
}

// RandomAbandon drops the visitor's game without finishing it.
func (h *GameHandler) RandomAbandon(c *gin.Context) {
	visitorID := middleware.VisitorID(c)

	if err := h.game.Abandon(c.Request.Context(), visitorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to abandon game"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game abandoned"})
}

// renderOutcome shapes an engine outcome for the client. The expected
// answer of a still-open question is stripped; a finished check result
// keeps the full quiz so the client can show the right answer.
func (h *GameHandler) renderOutcome(outcome *services.Outcome) gin.H {
	switch outcome.Kind {
	case services.OutcomeNextQuestion:
		return gin.H{
			"kind":     outcome.Kind,
			"question": outcome.Quiz.Question,
			"quiz_id":  outcome.Quiz.ID,
			"score":    outcome.Score,
		}
	case services.OutcomeCheckResult:
		return gin.H{
			"kind":    outcome.Kind,
			"quiz":    outcome.Quiz,
			"answer":  outcome.Answer,
			"correct": outcome.Correct,
			"score":   outcome.Score,
		}
	default:
		return gin.H{
			"kind":  outcome.Kind,
			"score": outcome.Score,
		}
	}
}

func (h *GameHandler) writeGameError(c *gin.Context, err error) {
	var gameErr *services.GameError
	if errors.As(err, &gameErr) && gameErr.Kind == services.ErrKindInvalidGameState {
		c.JSON(http.StatusConflict, gin.H{"error": "No active game - start a new one at /api/randomplay"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Random play is unavailable right now"})
}
