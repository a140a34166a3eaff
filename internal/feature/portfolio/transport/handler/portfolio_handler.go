// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"danset_exchange/internal/api"
	"danset_exchange/internal/feature/portfolio/usecase"
	jwtmw "danset_exchange/internal/platform/jwt"
)

// PortfolioUsecase は保有ポジション集計のユースケースを定義します。
type PortfolioUsecase interface {
	Portfolio(ctx context.Context, userID uint) (*usecase.Summary, error)
}

// PortfolioHandler はポートフォリオ照会のHTTPリクエストを処理します。
type PortfolioHandler struct {
	portfolio PortfolioUsecase
}

// NewPortfolioHandler はPortfolioHandlerの新しいインスタンスを生成します。
func NewPortfolioHandler(portfolio PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// Get は認証済みユーザーのポートフォリオサマリーを返します。
func (h *PortfolioHandler) Get(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	summary, err := h.portfolio.Portfolio(c.Request.Context(), userID)
	if err != nil {
		slog.Error("get portfolio failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get portfolio"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
