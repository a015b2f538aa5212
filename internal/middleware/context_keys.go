package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// companyIDKey is the key used to store the authenticated company scope in
// the request context. Every ledger operation is tenant-scoped by it.
const companyIDKey = contextKey("companyID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(userIDKey)
	if val == nil {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok
}

// GetCompanyIDFromContext retrieves the authenticated company ID from the
// Gin context.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(companyIDKey)
	if val == nil {
		return "", false
	}
	companyID, ok := val.(string)
	return companyID, ok
}
