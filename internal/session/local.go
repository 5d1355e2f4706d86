package session

import (
	"net/http"

	"simple-notes-server/pkg/token"
)

// LocalResolver verifies the session token in-process against the provider's
// shared signing secret. Signature, expiry and issuer are all enforced; an
// unverified decode is never an acceptable identity source here.
type LocalResolver struct {
	secret     string
	issuer     string
	cookieName string
}

func (l *LocalResolver) Resolve(r *http.Request) string {
	credential := credentialFromRequest(r, l.cookieName)
	if credential == "" {
		return Anonymous
	}

	claims, err := token.Verify(credential, l.secret, l.issuer)
	if err != nil {
		return Anonymous
	}
	return claims.Subject
}

func (l *LocalResolver) Name() string { return "local" }
