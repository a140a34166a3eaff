// Package handler はmarketフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"danset_exchange/internal/api"
	"danset_exchange/internal/feature/market/domain/entity"
	"danset_exchange/internal/feature/market/transport/http/dto"
	"danset_exchange/internal/feature/market/usecase"
)

// CompanyUsecase は企業操作のユースケースを定義します。
type CompanyUsecase interface {
	Register(ctx context.Context, req usecase.ListingRequest) (*entity.Company, error)
	AdminCreate(ctx context.Context, req usecase.ListingRequest) (*entity.Company, error)
	ListApproved(ctx context.Context) ([]entity.Company, error)
	ListPending(ctx context.Context) ([]entity.Company, error)
	ListAll(ctx context.Context) ([]entity.Company, error)
	SetStatus(ctx context.Context, id uint, status string) (*entity.Company, error)
	UpdateDetails(ctx context.Context, id uint, name, sector, description string, volatility float64) (*entity.Company, error)
	Delete(ctx context.Context, id uint) error
}

// CompanyHandler は企業関連のHTTPリクエストを処理します。
type CompanyHandler struct {
	companies CompanyUsecase
}

// NewCompanyHandler はCompanyHandlerの新しいインスタンスを生成します。
func NewCompanyHandler(companies CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// listingFromDTO はHTTPリクエストをユースケース入力へ変換します。
func listingFromDTO(req dto.ListingRequest) usecase.ListingRequest {
	return usecase.ListingRequest{
		Ticker:       req.Ticker,
		Name:         req.Name,
		Sector:       req.Sector,
		Description:  req.Description,
		InitialPrice: req.InitialPrice,
		TotalShares:  req.TotalShares,
	}
}

// List は取引可能な企業の一覧を返します。
func (h *CompanyHandler) List(c *gin.Context) {
	cs, err := h.companies.ListApproved(c.Request.Context())
	if err != nil {
		slog.Error("list companies failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list companies"})
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanyResponses(cs))
}

// Register は一般ユーザーの上場申請を処理します。承認待ちとして作成されます。
func (h *CompanyHandler) Register(c *gin.Context) {
	var req dto.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	company, err := h.companies.Register(c.Request.Context(), listingFromDTO(req))
	if err != nil {
		h.writeListingError(c, err)
		return
	}
	slog.Info("company registered", "ticker", company.Ticker, "status", company.Status)
	c.JSON(http.StatusCreated, dto.NewCompanyResponse(company))
}

// AdminCreate は管理者による即時承認の上場を処理します。
func (h *CompanyHandler) AdminCreate(c *gin.Context) {
	var req dto.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	company, err := h.companies.AdminCreate(c.Request.Context(), listingFromDTO(req))
	if err != nil {
		h.writeListingError(c, err)
		return
	}
	slog.Info("company listed by admin", "ticker", company.Ticker)
	c.JSON(http.StatusCreated, dto.NewCompanyResponse(company))
}

// ListPending は承認待ち企業の一覧を返します（管理者専用）。
func (h *CompanyHandler) ListPending(c *gin.Context) {
	cs, err := h.companies.ListPending(c.Request.Context())
	if err != nil {
		slog.Error("list pending companies failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list companies"})
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanyResponses(cs))
}

// ListAll は全企業の一覧を返します（管理者専用）。
func (h *CompanyHandler) ListAll(c *gin.Context) {
	cs, err := h.companies.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("list all companies failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list companies"})
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanyResponses(cs))
}

// SetStatus は企業の承認・却下を処理します（管理者専用）。
func (h *CompanyHandler) SetStatus(c *gin.Context) {
	id, ok := h.companyID(c)
	if !ok {
		return
	}
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	company, err := h.companies.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, usecase.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "company not found"})
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	slog.Info("company status changed", "ticker", company.Ticker, "status", company.Status)
	c.JSON(http.StatusOK, dto.NewCompanyResponse(company))
}

// Update は企業情報の編集を処理します（管理者専用）。
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := h.companyID(c)
	if !ok {
		return
	}
	var req dto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	company, err := h.companies.UpdateDetails(c.Request.Context(), id,
		req.Name, req.Sector, req.Description, req.MarketVolatility)
	if err != nil {
		if errors.Is(err, usecase.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "company not found"})
			return
		}
		slog.Error("company update failed", "error", err, "company_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "update failed"})
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanyResponse(company))
}

// Delete は企業の上場廃止を処理します（管理者専用）。
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := h.companyID(c)
	if !ok {
		return
	}
	if err := h.companies.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "company not found"})
			return
		}
		slog.Error("company delete failed", "error", err, "company_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "delete failed"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// companyID はパスパラメータから企業IDを取り出します。
func (h *CompanyHandler) companyID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid company id"})
		return 0, false
	}
	return uint(id), true
}

// writeListingError は登録系エラーをHTTPステータスへ対応付けます。
func (h *CompanyHandler) writeListingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTickerAlreadyExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "ticker already exists"})
	case errors.Is(err, usecase.ErrInvalidListing):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("company create failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "company create failed"})
	}
}
