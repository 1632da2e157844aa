package session

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gin-gonic/gin"
)

const (
	cookiePrefix = "trailhunt_"
	cookieMaxAge = int(30 * 24 * time.Hour / time.Second)
)

var (
	ErrNoSession      = errors.New("no player session for this hunt")
	ErrInvalidSession = errors.New("invalid player session")
)

// PlayerSession is the opaque per-hunt credential issued when a player
// joins. It lives client-side in a cookie scoped to one hunt; the
// check-in engine only ever reads the parsed fields.
type PlayerSession struct {
	HuntID     int64  `json:"huntId"`
	PlayerID   int64  `json:"playerId"`
	PlayerName string `json:"playerName"`
}

func CookieName(huntID int64) string {
	return fmt.Sprintf("%s%d", cookiePrefix, huntID)
}

// Issue writes the session cookie for the player's hunt.
func Issue(c *gin.Context, s *PlayerSession) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	value := base64.RawURLEncoding.EncodeToString(payload)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName(s.HuntID), value, cookieMaxAge, "/", "", false, true)
	return nil
}

// FromRequest parses the session cookie for the given hunt. A missing
// cookie is ErrNoSession; anything unparseable, or a payload naming a
// different hunt, is ErrInvalidSession.
func FromRequest(c *gin.Context, huntID int64) (*PlayerSession, error) {
	value, err := c.Cookie(CookieName(huntID))
	if err != nil {
		return nil, ErrNoSession
	}

	payload, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, ErrInvalidSession
	}

	var s PlayerSession
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, ErrInvalidSession
	}

	if s.PlayerID == 0 || s.HuntID != huntID {
		return nil, ErrInvalidSession
	}

	return &s, nil
}
