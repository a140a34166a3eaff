// Package handler はscheduleフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"danset_exchange/internal/api"
	"danset_exchange/internal/feature/schedule/domain/entity"
	"danset_exchange/internal/feature/schedule/transport/http/dto"
)

// ScheduleUsecase は市場スケジュールと開閉状態のユースケースを定義します。
type ScheduleUsecase interface {
	GetSchedule(ctx context.Context) (*entity.MarketSchedule, error)
	UpdateSchedule(ctx context.Context, s *entity.MarketSchedule) error
	GetStatus(ctx context.Context) (*entity.MarketStatus, error)
	SetMarketStatus(ctx context.Context, isOpen bool, message string) error
}

// ScheduleHandler は市場スケジュールのHTTPリクエストを処理します。
type ScheduleHandler struct {
	schedule ScheduleUsecase
}

// NewScheduleHandler はScheduleHandlerの新しいインスタンスを生成します。
func NewScheduleHandler(schedule ScheduleUsecase) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// GetStatus は現在の市場開閉状態を返します。
func (h *ScheduleHandler) GetStatus(c *gin.Context) {
	st, err := h.schedule.GetStatus(c.Request.Context())
	if err != nil {
		slog.Error("get market status failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get market status"})
		return
	}
	c.JSON(http.StatusOK, dto.NewStatusResponse(st))
}

// GetSchedule は現在の市場スケジュールを返します。
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	s, err := h.schedule.GetSchedule(c.Request.Context())
	if err != nil {
		slog.Error("get market schedule failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get market schedule"})
		return
	}
	c.JSON(http.StatusOK, dto.NewScheduleResponse(s))
}

// UpdateSchedule は市場スケジュールを更新します（管理者専用）。
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	s := &entity.MarketSchedule{
		OpenTime:            req.OpenTime,
		CloseTime:           req.CloseTime,
		LunchBreakStart:     req.LunchBreakStart,
		LunchBreakEnd:       req.LunchBreakEnd,
		AutoScheduleEnabled: req.AutoScheduleEnabled,
	}
	if err := s.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.schedule.UpdateSchedule(c.Request.Context(), s); err != nil {
		slog.Error("update market schedule failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update market schedule"})
		return
	}

	slog.Info("market schedule updated",
		"open", s.OpenTime, "close", s.CloseTime, "auto", s.AutoScheduleEnabled)
	c.JSON(http.StatusOK, dto.NewScheduleResponse(s))
}

// SetStatus は市場の開閉を手動で切り替えます（管理者専用）。
func (h *ScheduleHandler) SetStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.schedule.SetMarketStatus(c.Request.Context(), *req.IsOpen, req.Message); err != nil {
		slog.Error("set market status failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to set market status"})
		return
	}

	slog.Info("market status set manually", "is_open", *req.IsOpen)
	c.JSON(http.StatusOK, dto.StatusResponse{IsOpen: *req.IsOpen, Message: req.Message})
}
