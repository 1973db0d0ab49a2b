package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindthevirt/binge-master-api/internal/handler/dto"
	"github.com/mindthevirt/binge-master-api/internal/service"
	"go.uber.org/zap"
)

type UserHandler struct {
	service *service.UserService
	logger  *zap.Logger
}

func NewUserHandler(service *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.Named("UserHandler"),
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed to bind register request", zap.Error(err))
		_ = c.Error(bindError(err))
		return
	}

	if err := h.service.Register(c.Request.Context(), req.UniqueIdentifier, req.Email); err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Info("User registered via handler", zap.String("unique_identifier", req.UniqueIdentifier))
	c.JSON(http.StatusCreated, dto.RegisterUserResponse{Message: "User registered successfully"})
}
