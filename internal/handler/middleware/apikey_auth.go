package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mindthevirt/binge-master-api/internal/domain/apikey"
	"github.com/mindthevirt/binge-master-api/internal/handler/dto"
	"github.com/mindthevirt/binge-master-api/internal/storage/redis"
	"github.com/mindthevirt/binge-master-api/internal/util"
)

const apiKeyHeader = "X-API-Key"

// APIKeyAuthMiddleware is a pure boolean barrier: it hashes the presented key
// and checks membership, propagating nothing downstream. The cache is
// optional; a nil cache means every request hits the repository.
func APIKeyAuthMiddleware(apiKeyRepo apikey.Repository, cache *redis.APIKeyCache, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("APIKeyAuthMiddleware")
	return func(c *gin.Context) {
		rawKey := c.GetHeader(apiKeyHeader)
		if rawKey == "" {
			log.Debug("API Key header is missing", zap.String("header", apiKeyHeader))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "No API key provided"})
			return
		}

		keyHash := util.HashAPIKey(rawKey)

		if cache != nil && cache.IsKnownValid(c.Request.Context(), keyHash) {
			c.Next()
			return
		}

		exists, err := apiKeyRepo.ExistsByHash(c.Request.Context(), keyHash)
		if err != nil {
			log.Error("Failed to query API key repository", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error during API key validation"})
			return
		}
		if !exists {
			log.Warn("Rejected request with unknown API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid API key"})
			return
		}

		if cache != nil {
			cache.MarkValid(c.Request.Context(), keyHash)
		}

		c.Next()
	}
}
