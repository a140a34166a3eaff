// Package handler はnewsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"danset_exchange/internal/api"
	"danset_exchange/internal/feature/news/domain/entity"
	"danset_exchange/internal/feature/news/transport/http/dto"
	"danset_exchange/internal/feature/news/usecase"
)

// NewsUsecase はニュース公開と一覧のユースケースを定義します。
type NewsUsecase interface {
	Publish(ctx context.Context, req usecase.PublishRequest) (*entity.News, error)
	List(ctx context.Context, limit int) ([]entity.News, error)
}

// NewsHandler はニュース関連のHTTPリクエストを処理します。
type NewsHandler struct {
	news NewsUsecase
}

// NewNewsHandler はNewsHandlerの新しいインスタンスを生成します。
func NewNewsHandler(news NewsUsecase) *NewsHandler {
	return &NewsHandler{news: news}
}

// List は公開済みニュースを新しい順で返します。
func (h *NewsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.news.List(c.Request.Context(), limit)
	if err != nil {
		slog.Error("list news failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list news"})
		return
	}
	c.JSON(http.StatusOK, dto.NewNewsResponses(items))
}

// Publish はニュースを公開し、対象企業の株価へインパクトを適用します（管理者専用）。
func (h *NewsHandler) Publish(c *gin.Context) {
	var req dto.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	item, err := h.news.Publish(c.Request.Context(), usecase.PublishRequest{
		Title:     req.Title,
		Content:   req.Content,
		CompanyID: req.CompanyID,
		Impact:    req.Impact,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidNews):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrCompanyNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("publish news failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to publish news"})
		}
		return
	}

	slog.Info("news published", "news_id", item.ID, "ticker", item.Ticker, "impact", item.Impact)
	c.JSON(http.StatusCreated, dto.NewNewsResponse(item))
}
