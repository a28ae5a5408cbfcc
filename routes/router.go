package routes

import (
	"fmt"
	"log"
	"net/http"

	"taskpro/api/database"
	"taskpro/api/middleware"
	"taskpro/api/services"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	APIPrefix      string
	AllowedOrigins string
	MaxBodyBytes   int64
	AccessLog      bool
}

// NewRouter builds the gin engine with every middleware and resource route.
func NewRouter(cfg RouterConfig, db *database.Database, userService services.UserServiceInterface, taskService services.TaskServiceInterface) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	if cfg.AccessLog {
		router.Use(middleware.LoggerMiddleware())
	}
	router.Use(gin.CustomRecovery(recoverInternalError))
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.BodyLimitMiddleware(cfg.MaxBodyBytes))

	links := NewLinker(cfg.APIPrefix)
	api := router.Group(links.prefix)

	RegisterHealthRoutes(router, db)
	RegisterUserRoutes(api, db, userService, links)
	RegisterTaskRoutes(api, db, taskService, links)

	return router
}

func recoverInternalError(c *gin.Context, recovered any) {
	log.Printf("[%s] panic serving %s %s: %v", requestID(c), c.Request.Method, c.Request.URL.Path, recovered)
	_ = c.Error(fmt.Errorf("panic: %v", recovered))
	abortWithError(c, http.StatusInternalServerError, CodeInternalError, defaultMessages.internal, nil)
}
