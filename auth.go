package main

import (
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionName = "session"
	loggedInKey = "logged_in"
)

func newSessionStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// checkCredentials compares a submitted credential pair against the
// configured identity. The username is checked first; the first
// failing check wins and yields its own message. Returns "" on match.
func checkCredentials(cfg Config, username, password string) string {
	if username != cfg.Username {
		return "Invalid username"
	}
	if bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(password)) != nil {
		return "Invalid password"
	}
	return ""
}

func (b *Blog) session(r *http.Request) *sessions.Session {
	// Get never returns a nil session; a bad or missing cookie just
	// yields a fresh one.
	sess, _ := b.store.Get(r, sessionName)
	return sess
}

func (b *Blog) isLoggedIn(r *http.Request) bool {
	loggedIn, _ := b.session(r).Values[loggedInKey].(bool)
	return loggedIn
}

func (b *Blog) setLoggedIn(w http.ResponseWriter, r *http.Request) error {
	sess := b.session(r)
	sess.Values[loggedInKey] = true
	return sess.Save(r, w)
}

// clearLogin drops the logged_in flag. It never fails toward the
// caller, even when no session was active.
func (b *Blog) clearLogin(w http.ResponseWriter, r *http.Request) {
	sess := b.session(r)
	delete(sess.Values, loggedInKey)
	if err := sess.Save(r, w); err != nil {
		b.logger.Errorw("saving session on logout", "error", err)
	}
}

func (b *Blog) addFlash(w http.ResponseWriter, r *http.Request, msg string) {
	sess := b.session(r)
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		b.logger.Errorw("saving flash message", "error", err)
	}
}

// popFlashes returns queued flash messages and clears them. Must run
// before the response body is written, since clearing rewrites the
// session cookie.
func (b *Blog) popFlashes(w http.ResponseWriter, r *http.Request) []string {
	sess := b.session(r)
	raw := sess.Flashes()
	if len(raw) > 0 {
		if err := sess.Save(r, w); err != nil {
			b.logger.Errorw("clearing flash messages", "error", err)
		}
	}

	flashes := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			flashes = append(flashes, s)
		}
	}
	return flashes
}
