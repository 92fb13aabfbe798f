package router

import (
	"github.com/AdventureDe/DuoChat/handler"

	"github.com/gin-gonic/gin"
)

// SetupUserRouter registers the public account routes. Register and login
// are the only endpoints reachable without a token.
func SetupUserRouter(r *gin.Engine, userHandler *handler.UserHandler) {
	r.POST("/users/register", userHandler.Register)
	r.POST("/users/login", userHandler.Login)
}

// SetupThreadRouter registers the thread routes on the authenticated group.
func SetupThreadRouter(g *gin.RouterGroup, threadHandler *handler.ThreadHandler) {
	g.GET("/threads", threadHandler.List)
	g.POST("/threads", threadHandler.Create)
	g.GET("/threads/user/:id", threadHandler.ListByUser)
	g.GET("/threads/:id", threadHandler.Get)
	g.PUT("/threads/:id", threadHandler.Update)
	g.DELETE("/threads/:id", threadHandler.Delete)
}

// SetupMessageRouter registers the message routes on the authenticated group.
func SetupMessageRouter(g *gin.RouterGroup, userHandler *handler.UserHandler, messageHandler *handler.MessageHandler) {
	g.POST("/users/logout", userHandler.Logout)
	g.GET("/threads/:id/messages", messageHandler.List)
	g.POST("/threads/:id/messages", messageHandler.Create)
	g.GET("/threads/:id/messages/:mid", messageHandler.Read)
	g.DELETE("/threads/:id/messages/:mid", messageHandler.Delete)
	g.GET("/users/:id/messages", messageHandler.ListUnread)
}
