package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/okonari/okonari-board/src/api/config"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	postsH := NewPosts(db)
	newsH := NewNews(db)
	chatH := NewChat(db, rdb)

	api := r.Group("/api")
	{
		api.GET("/posts", postsH.Search)
		api.POST("/posts", postsH.Create)
		api.GET("/posts/csv", postsH.ExportCSV)
		api.GET("/posts/:id", postsH.Get)
		api.PUT("/posts/:id", postsH.Update)
		api.DELETE("/posts/:id", postsH.Delete)

		api.GET("/news", newsH.List)
		api.POST("/news", newsH.Create)
		api.DELETE("/news/:id", newsH.Delete)

		api.GET("/chat/messages", chatH.List)
		api.POST("/chat/messages", chatH.Create)
	}
}
