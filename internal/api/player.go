package api

import (
	"errors"
	"net/http"
	"strconv"

	"trailhunt/internal/service"
	"trailhunt/pkg/logger"
	"trailhunt/pkg/session"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type playerRoutes struct {
	ps service.PlayerServiceI
}

func NewPlayerRoutes(handler *gin.RouterGroup, ps service.PlayerServiceI) {
	r := &playerRoutes{ps: ps}

	h := handler.Group("/hunts/:code/players")
	{
		h.POST("", r.JoinHunt)
		h.DELETE("", r.DeleteHuntPlayers)
	}

	p := handler.Group("/players")
	{
		p.GET("/:player_id", r.GetPlayer)
	}
}

type JoinHuntRequest struct {
	Name string `json:"name"`
}

type PlayerResponse struct {
	ID          int64  `json:"id"`
	HuntID      int64  `json:"hunt_id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	IsCompleted bool   `json:"is_completed"`
}

func (r *playerRoutes) JoinHunt(c *gin.Context) {
	log := logger.Logger()

	var req JoinHuntRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	player, err := r.ps.Join(c.Request.Context(), c.Param("code"), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrHuntNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hunt not found"})
			return
		}
		log.Error("failed to join hunt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join hunt"})
		return
	}

	err = session.Issue(c, &session.PlayerSession{
		HuntID:     player.HuntID,
		PlayerID:   player.ID,
		PlayerName: player.Name,
	})
	if err != nil {
		log.Error("failed to issue player session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join hunt"})
		return
	}

	c.JSON(http.StatusCreated, PlayerResponse{
		ID:          player.ID,
		HuntID:      player.HuntID,
		Name:        player.Name,
		Score:       player.Score,
		IsCompleted: player.IsCompleted,
	})
}

func (r *playerRoutes) GetPlayer(c *gin.Context) {
	log := logger.Logger()

	playerID, err := strconv.ParseInt(c.Param("player_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player id"})
		return
	}

	player, err := r.ps.Get(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}
		log.Error("failed to get player", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get player"})
		return
	}

	c.JSON(http.StatusOK, PlayerResponse{
		ID:          player.ID,
		HuntID:      player.HuntID,
		Name:        player.Name,
		Score:       player.Score,
		IsCompleted: player.IsCompleted,
	})
}

func (r *playerRoutes) DeleteHuntPlayers(c *gin.Context) {
	log := logger.Logger()

	err := r.ps.DeleteAll(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrHuntNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hunt not found"})
			return
		}
		log.Error("failed to delete players", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete players"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
