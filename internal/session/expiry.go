package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// tokenExpired reports whether token is a JWT whose exp lies before now.
// The signature is not checked; the backend does that. Opaque tokens never
// expire here.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}
