package handler

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mindthevirt/binge-master-api/internal/domain/apikey"
	"github.com/mindthevirt/binge-master-api/internal/handler/middleware"
	"github.com/mindthevirt/binge-master-api/internal/ierr"
	redisstore "github.com/mindthevirt/binge-master-api/internal/storage/redis"
)

type RouterDeps struct {
	APIKeyHandler    *APIKeyHandler
	UserHandler      *UserHandler
	WatchtimeHandler *WatchtimeHandler

	// APIKeyRepo backs the auth gate; KeyCache is optional.
	APIKeyRepo apikey.Repository
	KeyCache   *redisstore.APIKeyCache

	AllowOrigins []string
	Logger       *zap.Logger
}

// NewRouter assembles the full middleware chain and route table. The CORS
// layer answers OPTIONS preflights before the key gate, so preflight never
// requires the X-API-Key header.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logMsg := "Panic recovered"
		if err, ok := recovered.(string); ok {
			logMsg = fmt.Sprintf("%s: %s", logMsg, err)
		} else if err, ok := recovered.(error); ok {
			logMsg = fmt.Sprintf("%s: %v", logMsg, err)
		}
		deps.Logger.Error(logMsg, zap.Stack("stack"))

		_ = c.Error(ierr.ErrInternalServer)
		c.Abort()
	}))

	corsConfig := cors.Config{
		AllowOrigins: deps.AllowOrigins,
		// The client is a browser extension: its origin is
		// chrome-extension:// (or moz-extension://), not http(s).
		AllowBrowserExtensions: true,
		AllowWildcard:          true,
		AllowMethods:           []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-API-Key",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.ErrorHandlerMiddleware(deps.Logger))

	apiKeyAuth := middleware.APIKeyAuthMiddleware(deps.APIKeyRepo, deps.KeyCache, deps.Logger)

	router.POST("/generate-api-key", deps.APIKeyHandler.Generate)

	router.POST("/update", apiKeyAuth, deps.WatchtimeHandler.Update)
	router.GET("/get-watchtime", apiKeyAuth, deps.WatchtimeHandler.Get)
	router.POST("/register", apiKeyAuth, deps.UserHandler.Register)

	return router
}
