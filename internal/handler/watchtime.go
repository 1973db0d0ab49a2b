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

type WatchtimeHandler struct {
	service *service.WatchtimeService
	logger  *zap.Logger
}

func NewWatchtimeHandler(service *service.WatchtimeService, logger *zap.Logger) *WatchtimeHandler {
	return &WatchtimeHandler{
		service: service,
		logger:  logger.Named("WatchtimeHandler"),
	}
}

func (h *WatchtimeHandler) Update(c *gin.Context) {
	var req dto.UpdateWatchtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed to bind update request", zap.Error(err))
		_ = c.Error(bindError(err))
		return
	}

	// Tracking defaults to enabled when the extension omits the preference.
	trackingEnabled := true
	if req.TrackingEnabled != nil {
		trackingEnabled = *req.TrackingEnabled
	}

	err := h.service.Record(c.Request.Context(), req.UniqueIdentifier, *req.Watchtime, trackingEnabled, req.DailyLimit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateWatchtimeResponse{
		Status:  "success",
		Message: "Data received",
	})
}

func (h *WatchtimeHandler) Get(c *gin.Context) {
	uniqueIdentifier := c.Query("uniqueIdentifier")
	if uniqueIdentifier == "" {
		_ = c.Error(fmt.Errorf("%w: query parameter 'uniqueIdentifier' is required", ierr.ErrValidation))
		return
	}

	events, total, err := h.service.QueryRecent(c.Request.Context(), uniqueIdentifier, service.DefaultWindowDays)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGetWatchtimeResponse(events, total))
}
