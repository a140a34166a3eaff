// Package handler はtradingフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"danset_exchange/internal/api"
	"danset_exchange/internal/feature/trading/domain/entity"
	"danset_exchange/internal/feature/trading/transport/http/dto"
	"danset_exchange/internal/feature/trading/usecase"
	jwtmw "danset_exchange/internal/platform/jwt"
)

// SettlementUsecase は約定エンジンのユースケースを定義します。
type SettlementUsecase interface {
	Execute(ctx context.Context, userID, companyID uint, side string, quantity int64) (*usecase.TradeReceipt, error)
	ListRecent(ctx context.Context, limit int) ([]entity.Transaction, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]entity.Transaction, error)
}

// TradeHandler は売買注文と取引履歴のHTTPリクエストを処理します。
type TradeHandler struct {
	settlement SettlementUsecase
}

// NewTradeHandler はTradeHandlerの新しいインスタンスを生成します。
func NewTradeHandler(settlement SettlementUsecase) *TradeHandler {
	return &TradeHandler{settlement: settlement}
}

// Execute は売買注文を処理します。
// エラー分類ごとにHTTPステータスへ対応付けます:
// - 数量・サイド不正は400
// - クールダウン中は429
// - 閉場中は409（ステータスのメッセージを返却）
// - 資金・在庫・保有不足は422
// - 企業・ユーザー消失は404
func (h *TradeHandler) Execute(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req dto.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	receipt, err := h.settlement.Execute(c.Request.Context(), userID, req.CompanyID, req.Side, req.Shares)
	if err != nil {
		h.writeTradeError(c, err)
		return
	}

	slog.Info("trade executed",
		"user_id", userID,
		"ticker", receipt.Ticker,
		"side", receipt.Side,
		"shares", receipt.Shares,
		"price", receipt.PricePerShare,
		"new_price", receipt.NewPrice,
	)
	c.JSON(http.StatusOK, receipt)
}

// Recent は全ユーザーの直近の取引フィードを返します。
func (h *TradeHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	ts, err := h.settlement.ListRecent(c.Request.Context(), limit)
	if err != nil {
		slog.Error("list recent transactions failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponses(ts))
}

// Mine は認証済みユーザー自身の取引履歴を返します。
func (h *TradeHandler) Mine(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	ts, err := h.settlement.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		slog.Error("list user transactions failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponses(ts))
}

// writeTradeError は約定エラーをHTTPステータスへ対応付けます。
func (h *TradeHandler) writeTradeError(c *gin.Context, err error) {
	var closed *usecase.MarketClosedError
	switch {
	case errors.Is(err, usecase.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Error: err.Error()})
	case errors.As(err, &closed):
		msg := closed.Message
		if msg == "" {
			msg = "Market is currently closed"
		}
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: msg})
	case errors.Is(err, usecase.ErrInsufficientFunds),
		errors.Is(err, usecase.ErrInsufficientShares),
		errors.Is(err, usecase.ErrInsufficientPosition):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrCompanyNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("trade failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "trade failed"})
	}
}
