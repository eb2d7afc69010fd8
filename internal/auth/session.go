package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// SessionName is the cookie under which the signed session travels.
const SessionName = "luna_session"

const sessionUserKey = "user_id"

// NewStore builds the cookie session store. Cookies live for 30 days,
// are HTTP-only, and are marked Secure outside development.
func NewStore(secret string, isProd bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = isProd
	return store
}

// SignIn records the user id in the caller's session. Called on login,
// on registration (auto-login), and after a password change to re-key
// the session so the caller stays logged in.
func SignIn(w http.ResponseWriter, r *http.Request, store *sessions.CookieStore, userID uuid.UUID) error {
	session, err := store.Get(r, SessionName)
	if err != nil {
		// A stale or tampered cookie decodes to an error but still
		// yields a fresh session we can write to.
		session, _ = store.New(r, SessionName)
	}
	session.Values[sessionUserKey] = userID.String()
	return session.Save(r, w)
}

// SignOut drops the caller's session.
func SignOut(w http.ResponseWriter, r *http.Request, store *sessions.CookieStore) error {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return nil
	}
	session.Options.MaxAge = -1
	delete(session.Values, sessionUserKey)
	return session.Save(r, w)
}

// SessionUserID extracts the authenticated user id from the request's
// session, if any.
func SessionUserID(r *http.Request, store *sessions.CookieStore) (uuid.UUID, bool) {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return uuid.Nil, false
	}
	raw, ok := session.Values[sessionUserKey].(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
