package routes

import (
	"net/http"

	"quizplay/handlers"
	"quizplay/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	quizHandler *handlers.QuizHandler,
	gameHandler *handlers.GameHandler,
) {
	// API routes
	api := router.Group("/api")
	api.Use(middleware.Visitor())
	{
		// Quiz catalog routes
		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.PUT("/:id", quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", quizHandler.DeleteQuiz)

			// Single-question play
			quizzes.GET("/:id/play", quizHandler.PlayQuiz)
			quizzes.GET("/:id/check", quizHandler.CheckQuiz)
		}

		// Random play routes
		randomplay := api.Group("/randomplay")
		{
			randomplay.GET("", gameHandler.RandomPlay)
			randomplay.GET("/check", gameHandler.RandomCheck)
			randomplay.DELETE("", gameHandler.RandomAbandon)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
