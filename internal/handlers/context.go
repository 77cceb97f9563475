package handlers

import "github.com/labstack/echo/v4"

// currentUserID returns the authenticated user's Firebase UID stored in the
// context by the auth middleware, or "" when unauthenticated.
func currentUserID(c echo.Context) string {
	uid, _ := c.Get("firebaseUID").(string)
	return uid
}
