package api

import (
	"errors"
	"net/http"

	"trailhunt/internal/service"
	"trailhunt/pkg/logger"
	"trailhunt/pkg/session"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type checkInRoutes struct {
	cs service.CheckInServiceI
}

func NewCheckInRoutes(handler *gin.RouterGroup, cs service.CheckInServiceI) {
	r := &checkInRoutes{cs: cs}
	h := handler.Group("/challenges/by-public-id")
	{
		h.POST("/:public_id/checkin", r.CheckIn)
	}
}

type CheckInResponse struct {
	Success          bool `json:"success"`
	AlreadyCheckedIn bool `json:"alreadyCheckedIn"`
	PointsAwarded    int  `json:"pointsAwarded"`
	TotalPoints      int  `json:"totalPoints"`
	Position         *int `json:"position"`
}

func (r *checkInRoutes) CheckIn(c *gin.Context) {
	log := logger.Logger()

	// The hunt is only known once the engine resolves the challenge,
	// so the session cookie is read through this callback.
	lookup := func(huntID int64) (int64, error) {
		s, err := session.FromRequest(c, huntID)
		if err != nil {
			return 0, err
		}
		return s.PlayerID, nil
	}

	result, err := r.cs.CheckIn(c.Request.Context(), c.Param("public_id"), lookup)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChallengeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
		case errors.Is(err, service.ErrChallengeNoHunt):
			c.JSON(http.StatusBadRequest, gin.H{"error": "challenge is not associated with a hunt"})
		case errors.Is(err, session.ErrNoSession):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "player not registered, join the hunt first"})
		case errors.Is(err, session.ErrInvalidSession):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid player session"})
		case errors.Is(err, service.ErrPlayerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		case errors.Is(err, service.ErrOutOfSequence):
			c.JSON(http.StatusBadRequest, gin.H{"error": "you scanned the incorrect code, please scan challenges in order"})
		default:
			log.Error("failed to check in", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check in"})
		}
		return
	}

	c.JSON(http.StatusOK, CheckInResponse{
		Success:          result.Success,
		AlreadyCheckedIn: result.AlreadyCheckedIn,
		PointsAwarded:    result.PointsAwarded,
		TotalPoints:      result.TotalPoints,
		Position:         result.Position,
	})
}
