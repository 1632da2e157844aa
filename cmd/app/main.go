package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"trailhunt/internal/api"
	"trailhunt/internal/repository"
	"trailhunt/internal/service"
	"trailhunt/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	rng := service.NewRoller()

	huntService := service.NewHuntService(repo)
	challengeService := service.NewChallengeService(repo)
	playerService := service.NewPlayerService(repo)
	checkInService := service.NewCheckInService(repo, service.NewDiceFormula(rng))
	leaderboardService := service.NewLeaderboardService(repo, rng)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewHuntRoutes(a, huntService)
	api.NewChallengeRoutes(a, challengeService)
	api.NewPlayerRoutes(a, playerService)
	api.NewCheckInRoutes(a, checkInService)
	api.NewLeaderboardRoutes(a, leaderboardService)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
