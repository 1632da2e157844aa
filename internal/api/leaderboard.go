package api

import (
	"errors"
	"net/http"
	"strconv"

	"trailhunt/internal/model"
	"trailhunt/internal/service"
	"trailhunt/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type leaderboardRoutes struct {
	ls service.LeaderboardServiceI
}

func NewLeaderboardRoutes(handler *gin.RouterGroup, ls service.LeaderboardServiceI) {
	r := &leaderboardRoutes{ls: ls}
	h := handler.Group("/hunts/by-id/:id")
	{
		h.GET("/leaderboard", r.GetLeaderboard)
		h.POST("/choose-winner", r.ChooseWinner)
	}
}

type LeaderboardEntryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func (r *leaderboardRoutes) GetLeaderboard(c *gin.Context) {
	log := logger.Logger()

	huntID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hunt id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries, err := r.ls.Leaderboard(c.Request.Context(), huntID, limit)
	if err != nil {
		if errors.Is(err, service.ErrHuntNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hunt not found"})
			return
		}
		log.Error("failed to get leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	c.JSON(http.StatusOK, entryResponses(entries))
}

func (r *leaderboardRoutes) ChooseWinner(c *gin.Context) {
	log := logger.Logger()

	huntID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hunt id"})
		return
	}

	winner, err := r.ls.ChooseWinner(c.Request.Context(), huntID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChallengeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no regular challenges found for this hunt"})
		case errors.Is(err, service.ErrNoFinishers):
			c.JSON(http.StatusNotFound, gin.H{"error": "no players have completed the last challenge yet"})
		default:
			log.Error("failed to choose winner", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to choose winner"})
		}
		return
	}

	c.JSON(http.StatusOK, LeaderboardEntryResponse{
		ID:    winner.ID,
		Name:  winner.Name,
		Score: winner.Score,
	})
}

func entryResponses(entries []*model.LeaderboardEntry) []LeaderboardEntryResponse {
	out := make([]LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntryResponse{
			ID:    e.ID,
			Name:  e.Name,
			Score: e.Score,
		}
	}
	return out
}
