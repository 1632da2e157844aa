package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"trailhunt/internal/model"
	"trailhunt/internal/service"
	"trailhunt/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type huntRoutes struct {
	hs service.HuntServiceI
}

func NewHuntRoutes(handler *gin.RouterGroup, hs service.HuntServiceI) {
	r := &huntRoutes{hs: hs}
	h := handler.Group("/hunts")
	{
		h.POST("", r.CreateHunt)
		h.GET("/:code", r.GetHuntByShortCode)
		h.PATCH("/:code", r.UpdateHunt)
		h.GET("/by-id/:id", r.GetHuntByID)
	}
}

type CreateHuntRequest struct {
	Name string `json:"name"`
}

type UpdateHuntRequest struct {
	Name       *string `json:"name"`
	Guidelines *string `json:"guidelines"`
}

type HuntResponse struct {
	ID         int64     `json:"id"`
	ShortCode  string    `json:"short_code"`
	Name       string    `json:"name"`
	Guidelines *string   `json:"guidelines,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *huntRoutes) CreateHunt(c *gin.Context) {
	log := logger.Logger()

	var req CreateHuntRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	hunt, err := r.hs.Create(c.Request.Context(), req.Name)
	if err != nil {
		log.Error("failed to create hunt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create hunt"})
		return
	}

	c.JSON(http.StatusCreated, huntResponse(hunt))
}

func (r *huntRoutes) GetHuntByShortCode(c *gin.Context) {
	log := logger.Logger()

	hunt, err := r.hs.GetByShortCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrHuntNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hunt not found"})
			return
		}
		log.Error("failed to get hunt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get hunt"})
		return
	}

	c.JSON(http.StatusOK, huntResponse(hunt))
}

func (r *huntRoutes) GetHuntByID(c *gin.Context) {
	log := logger.Logger()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hunt id"})
		return
	}

	hunt, err := r.hs.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrHuntNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hunt not found"})
			return
		}
		log.Error("failed to get hunt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get hunt"})
		return
	}

	c.JSON(http.StatusOK, huntResponse(hunt))
}

func (r *huntRoutes) UpdateHunt(c *gin.Context) {
	log := logger.Logger()

	var req UpdateHuntRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	hunt, err := r.hs.Update(c.Request.Context(), c.Param("code"), req.Name, req.Guidelines)
	if err != nil {
		if errors.Is(err, service.ErrHuntNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hunt not found"})
			return
		}
		log.Error("failed to update hunt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update hunt"})
		return
	}

	c.JSON(http.StatusOK, huntResponse(hunt))
}

func huntResponse(h *model.Hunt) *HuntResponse {
	return &HuntResponse{
		ID:         h.ID,
		ShortCode:  h.ShortCode,
		Name:       h.Name,
		Guidelines: h.Guidelines,
		CreatedAt:  h.CreatedAt,
		UpdatedAt:  h.UpdatedAt,
	}
}
