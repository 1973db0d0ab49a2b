package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindthevirt/binge-master-api/internal/handler/dto"
	"github.com/mindthevirt/binge-master-api/internal/ierr"
	"github.com/mindthevirt/binge-master-api/internal/service"
	"go.uber.org/zap"
)

type APIKeyHandler struct {
	service *service.APIKeyService
	logger  *zap.Logger
}

func NewAPIKeyHandler(service *service.APIKeyService, logger *zap.Logger) *APIKeyHandler {
	return &APIKeyHandler{
		service: service,
		logger:  logger.Named("APIKeyHandler"),
	}
}

// Generate mints a key and returns the raw token, the only time it is ever
// visible. The route is deliberately unauthenticated: possession of the
// returned token is the credential.
func (h *APIKeyHandler) Generate(c *gin.Context) {
	rawKey, err := h.service.GenerateKey(c.Request.Context())
	if err != nil {
		h.logger.Error("Service failed to generate api key", zap.Error(err))
		_ = c.Error(fmt.Errorf("%w: %v", ierr.ErrKeyGeneration, err))
		return
	}

	c.JSON(http.StatusOK, dto.GenerateAPIKeyResponse{APIKey: rawKey})
}
