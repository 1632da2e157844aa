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

type challengeRoutes struct {
	cs service.ChallengeServiceI
}

func NewChallengeRoutes(handler *gin.RouterGroup, cs service.ChallengeServiceI) {
	r := &challengeRoutes{cs: cs}

	h := handler.Group("/hunts/:code/challenges")
	{
		h.GET("", r.ListChallenges)
		h.POST("", r.CreateChallenge)
		h.PATCH("/reorder", r.ReorderChallenges)
		h.PATCH("/:challenge_id", r.UpdateChallenge)
		h.DELETE("/:challenge_id", r.DeleteChallenge)
	}

	p := handler.Group("/challenges/by-public-id")
	{
		p.GET("/:public_id", r.GetChallengeByPublicID)
	}
}

type CreateChallengeRequest struct {
	Name                string  `json:"name"`
	Content             *string `json:"content"`
	IsBonus             bool    `json:"is_bonus"`
	PreviousChallengeID *int64  `json:"previous_challenge_id"`
}

type UpdateChallengeRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

type ReorderChallengesRequest struct {
	ChallengeIDs []int64 `json:"challenge_ids"`
}

type ChallengeResponse struct {
	ID                  int64   `json:"id"`
	HuntID              *int64  `json:"hunt_id"`
	PublicID            string  `json:"public_id"`
	Name                string  `json:"name"`
	Content             *string `json:"content,omitempty"`
	Order               *int    `json:"order"`
	IsBonus             bool    `json:"is_bonus"`
	PreviousChallengeID *int64  `json:"previous_challenge_id,omitempty"`
}

func (r *challengeRoutes) ListChallenges(c *gin.Context) {
	log := logger.Logger()

	challenges, err := r.cs.List(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrHuntNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hunt not found"})
			return
		}
		log.Error("failed to list challenges", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list challenges"})
		return
	}

	c.JSON(http.StatusOK, challengeResponses(challenges))
}

func (r *challengeRoutes) CreateChallenge(c *gin.Context) {
	log := logger.Logger()

	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	challenge, err := r.cs.Create(c.Request.Context(), c.Param("code"), &model.Challenge{
		Name:                req.Name,
		Content:             req.Content,
		IsBonus:             req.IsBonus,
		PreviousChallengeID: req.PreviousChallengeID,
	})
	if err != nil {
		if errors.Is(err, service.ErrHuntNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hunt not found"})
			return
		}
		log.Error("failed to create challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create challenge"})
		return
	}

	c.JSON(http.StatusCreated, challengeResponse(challenge))
}

func (r *challengeRoutes) UpdateChallenge(c *gin.Context) {
	log := logger.Logger()

	challengeID, err := strconv.ParseInt(c.Param("challenge_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid challenge id"})
		return
	}

	var req UpdateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Name != nil && *req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
		return
	}

	challenge, err := r.cs.Update(c.Request.Context(), c.Param("code"), challengeID, req.Name, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHuntNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "hunt not found"})
		case errors.Is(err, service.ErrChallengeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
		default:
			log.Error("failed to update challenge", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update challenge"})
		}
		return
	}

	c.JSON(http.StatusOK, challengeResponse(challenge))
}

func (r *challengeRoutes) DeleteChallenge(c *gin.Context) {
	log := logger.Logger()

	challengeID, err := strconv.ParseInt(c.Param("challenge_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid challenge id"})
		return
	}

	err = r.cs.Delete(c.Request.Context(), c.Param("code"), challengeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHuntNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "hunt not found"})
		case errors.Is(err, service.ErrChallengeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
		case errors.Is(err, service.ErrChallengeInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "challenge has recorded check-ins"})
		default:
			log.Error("failed to delete challenge", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete challenge"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (r *challengeRoutes) ReorderChallenges(c *gin.Context) {
	log := logger.Logger()

	var req ReorderChallengesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	challenges, err := r.cs.Reorder(c.Request.Context(), c.Param("code"), req.ChallengeIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHuntNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "hunt not found"})
		case errors.Is(err, service.ErrInvalidReorder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "challenge ids must match the hunt's challenges exactly"})
		default:
			log.Error("failed to reorder challenges", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reorder challenges"})
		}
		return
	}

	c.JSON(http.StatusOK, challengeResponses(challenges))
}

func (r *challengeRoutes) GetChallengeByPublicID(c *gin.Context) {
	log := logger.Logger()

	challenge, err := r.cs.GetByPublicID(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		if errors.Is(err, service.ErrChallengeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
			return
		}
		log.Error("failed to get challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get challenge"})
		return
	}

	c.JSON(http.StatusOK, challengeResponse(challenge))
}

func challengeResponse(ch *model.Challenge) *ChallengeResponse {
	return &ChallengeResponse{
		ID:                  ch.ID,
		HuntID:              ch.HuntID,
		PublicID:            ch.PublicID,
		Name:                ch.Name,
		Content:             ch.Content,
		Order:               ch.Order,
		IsBonus:             ch.IsBonus,
		PreviousChallengeID: ch.PreviousChallengeID,
	}
}

func challengeResponses(challenges []*model.Challenge) []*ChallengeResponse {
	out := make([]*ChallengeResponse, len(challenges))
	for i, ch := range challenges {
		out[i] = challengeResponse(ch)
	}
	return out
}
