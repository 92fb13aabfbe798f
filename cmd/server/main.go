package main

import (
	"log"

	"github.com/AdventureDe/DuoChat/auth"
	"github.com/AdventureDe/DuoChat/config"
	"github.com/AdventureDe/DuoChat/handler"
	"github.com/AdventureDe/DuoChat/repo"
	"github.com/AdventureDe/DuoChat/router"
	"github.com/AdventureDe/DuoChat/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	db, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Fail to initialize Database:%v", err)
	}
	defer repo.CloseDB(db)

	rdb, err := repo.InitRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("Fail to initialize Redis:%v", err)
	}
	defer repo.CloseRedis(rdb)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Fail to initialize logger:%v", err)
	}
	defer logger.Sync()

	r := gin.Default()
	r.Use(cors.New(config.CorsConfig))
	r.Use(auth.RequestID(logger))

	userRepo := repo.NewUserRepo(db)
	threadRepo := repo.NewThreadRepo(db)
	messageRepo := repo.NewMessageRepo(db, threadRepo)
	sessions := repo.NewSessionStore(rdb)
	tokens := auth.NewTokenService(cfg.JWTSecret)

	userService := service.NewUserService(userRepo, sessions, tokens, logger)
	threadService := service.NewThreadService(threadRepo, messageRepo, userRepo, logger)
	messageService := service.NewMessageService(messageRepo, threadRepo, logger)

	userHandler := handler.NewUserHandler(userService)
	threadHandler := handler.NewThreadHandler(threadService)
	messageHandler := handler.NewMessageHandler(messageService)

	router.SetupUserRouter(r, userHandler)
	authorized := r.Group("/", auth.Middleware(tokens, sessions, logger))
	router.SetupThreadRouter(authorized, threadHandler)
	router.SetupMessageRouter(authorized, userHandler, messageHandler)

	logger.Info("server started", zap.Int("port", cfg.Port))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
