package cookie

import (
	"net/http"
	"time"
)

const SessionName = "ttt_session"

// SessionID returns the session cookie value, or "" when the browser sent none.
func SessionID(req *http.Request) string {
	c, err := req.Cookie(SessionName)
	if err != nil {
		return ""
	}

	return c.Value
}

// Session builds the cookie that pins a browser to its game. It lives as long
// as the stored session; a zero ttl gives a browser-session cookie.
func Session(id string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if ttl > 0 {
		c.Expires = time.Now().Add(ttl)
		c.MaxAge = int(ttl / time.Second)
	}

	return c
}

// SetSession sets the cookie when the browser does not hold id yet.
func SetSession(writer http.ResponseWriter, req *http.Request, id string, ttl time.Duration) {
	if SessionID(req) == id {
		return
	}

	http.SetCookie(writer, Session(id, ttl))
}
