package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	issued := &PlayerSession{HuntID: 5, PlayerID: 9, PlayerName: "ada"}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, Issue(c, issued))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "trailhunt_5", cookies[0].Name)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c2.Request.AddCookie(cookies[0])

	parsed, err := FromRequest(c2, 5)
	require.NoError(t, err)
	assert.Equal(t, issued, parsed)
}

func TestFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(cookie *http.Cookie) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
		if cookie != nil {
			c.Request.AddCookie(cookie)
		}
		return c
	}

	t.Run("Missing cookie", func(t *testing.T) {
		_, err := FromRequest(newContext(nil), 5)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Garbage payload", func(t *testing.T) {
		c := newContext(&http.Cookie{Name: "trailhunt_5", Value: "not-base64-json!!"})
		_, err := FromRequest(c, 5)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("Hunt mismatch inside payload", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
		require.NoError(t, Issue(c, &PlayerSession{HuntID: 6, PlayerID: 9}))

		cookie := w.Result().Cookies()[0]
		cookie.Name = "trailhunt_5"

		_, err := FromRequest(newContext(cookie), 5)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}
