package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// VisitorCookie names the cookie carrying the anonymous visitor id.
	VisitorCookie = "quiz_visitor"
	// VisitorKey is the gin context key the visitor id is stored under.
	VisitorKey = "visitor_id"

	visitorCookieMaxAge = 60 * 60 * 24 * 30 // 30 days
)

// Visitor assigns every request an anonymous visitor id, minting a new
// uuid cookie when none is present. The id keys the visitor's game
// session; there are no accounts.
func Visitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		visitorID, err := c.Cookie(VisitorCookie)
		if err != nil || visitorID == "" {
			visitorID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookie, visitorID, visitorCookieMaxAge, "/", "", false, true)
		}

		c.Set(VisitorKey, visitorID)
		c.Next()
	}
}

// VisitorID returns the visitor id the Visitor middleware stored on the
// context.
func VisitorID(c *gin.Context) string {
	if id, exists := c.Get(VisitorKey); exists {
		return id.(string)
	}
	return ""
}
