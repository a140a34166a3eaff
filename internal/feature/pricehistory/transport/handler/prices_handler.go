// Package handler はpricehistoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"danset_exchange/internal/api"
	"danset_exchange/internal/feature/pricehistory/domain/entity"
	"danset_exchange/internal/feature/pricehistory/transport/http/dto"
)

// PricesUsecase は価格履歴照会のユースケースを定義します。
type PricesUsecase interface {
	History(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error)
}

// PricesHandler は価格履歴のHTTPリクエストを処理します。
type PricesHandler struct {
	prices PricesUsecase
}

// NewPricesHandler はPricesHandlerの新しいインスタンスを生成します。
func NewPricesHandler(prices PricesUsecase) *PricesHandler {
	return &PricesHandler{prices: prices}
}

// History は指定企業の価格履歴を古い順で返します。
func (h *PricesHandler) History(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid company id"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	points, err := h.prices.History(c.Request.Context(), uint(id), limit)
	if err != nil {
		slog.Error("get price history failed", "error", err, "company_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get price history"})
		return
	}
	c.JSON(http.StatusOK, dto.NewHistoryResponse(uint(id), points))
}
