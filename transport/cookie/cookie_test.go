package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	t.Run("Lifetime follows the session ttl", func(t *testing.T) {
		// When: building a cookie for a 72h session
		c := Session("abc", 72*time.Hour)

		// Then: the browser keeps it for the whole ttl
		assert.Equal(t, 72*60*60, c.MaxAge)
		assert.WithinDuration(t, time.Now().Add(72*time.Hour), c.Expires, time.Minute)
	})

	t.Run("Zero ttl gives a browser-session cookie", func(t *testing.T) {
		c := Session("abc", 0)

		assert.Zero(t, c.MaxAge)
		assert.True(t, c.Expires.IsZero())
		assert.NotContains(t, c.String(), "Expires")
	})
}

func TestSetSession(t *testing.T) {
	t.Run("Sets the cookie for a new id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		SetSession(rec, req, "abc", time.Hour)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "abc", cookies[0].Value)
		assert.Equal(t, 3600, cookies[0].MaxAge)
	})

	t.Run("Leaves a matching cookie alone", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionName, Value: "abc"})

		SetSession(rec, req, "abc", time.Hour)

		assert.Empty(t, rec.Result().Cookies())
	})
}
