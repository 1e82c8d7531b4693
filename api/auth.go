/*
auth.go - Admin authentication and CSRF protection

PURPOSE:
  The portal has exactly one admin account, configured through the
  environment as a username plus a bcrypt hash (never a plain password).
  A successful login issues two cookies:

    session    HS256 JWT, HttpOnly, SameSite=Lax, 1 hour. Proves identity.
    csrf_token Random UUID, readable by the frontend. Echoed back in the
               X-CSRF-Token header on state-changing requests.

  RequireAuth gates the admin routes on a valid session JWT. RequireCSRF
  implements the double-submit check: cookie and header must match.

SEE ALSO:
  - cmd/hashpw: Generates the ADMIN_PASSWORD_HASH value
  - server.go: Where the middleware is mounted
*/
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookie = "session"
	csrfCookie    = "csrf_token"
	csrfHeader    = "X-CSRF-Token"
	sessionTTL    = time.Hour
)

// Auth validates admin credentials and manages session cookies.
type Auth struct {
	username     string
	passwordHash string
	secret       []byte
}

func NewAuth(username, passwordHash, secret string) *Auth {
	return &Auth{username: username, passwordHash: passwordHash, secret: []byte(secret)}
}

// Authenticate checks the supplied credentials against the configured
// admin account. A missing hash disables login entirely rather than
// falling back to any default password.
func (a *Auth) Authenticate(username, password string) bool {
	if username != a.username || a.passwordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
}

// IssueSession creates the session JWT and a fresh CSRF token.
func (a *Auth) IssueSession() (token, csrf string, expires time.Time, err error) {
	expires = time.Now().Add(sessionTTL)
	claims := jwt.RegisteredClaims{
		Subject:   a.username,
		ExpiresAt: jwt.NewNumericDate(expires),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return token, uuid.NewString(), expires, nil
}

// validateSession parses and verifies a session JWT.
func (a *Auth) validateSession(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid session token")
	}
	return nil
}

// RequireAuth rejects requests without a valid session cookie.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		if err := a.validateSession(cookie.Value); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired session", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCSRF enforces the double-submit cookie check on state-changing
// methods. GET/HEAD/OPTIONS pass through.
func (a *Auth) RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(csrfCookie)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusForbidden, "CSRF token required", nil)
			return
		}
		if r.Header.Get(csrfHeader) != cookie.Value {
			writeError(w, http.StatusForbidden, "CSRF token mismatch", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// setSessionCookies attaches the session and CSRF cookies to a response.
func setSessionCookies(w http.ResponseWriter, token, csrf string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// Readable by the frontend so it can mirror the value into the header
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookie,
		Value:    csrf,
		Path:     "/",
		Expires:  expires,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookies expires both cookies.
func clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{sessionCookie, csrfCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == sessionCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
