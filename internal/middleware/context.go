package middleware

import "net/http"

type contextKey string

const UserIDKey contextKey = "userID"

// GetUserID returns the identity attached to the request context, or the
// empty string when the request is anonymous.
func GetUserID(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
