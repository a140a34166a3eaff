package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"danset_exchange/internal/feature/portfolio/transport/handler"
	"danset_exchange/internal/feature/portfolio/usecase"
	jwtmw "danset_exchange/internal/platform/jwt"
)

// mockPortfolioUsecase はPortfolioUsecaseインターフェースのモック実装です。
type mockPortfolioUsecase struct {
	PortfolioFunc func(ctx context.Context, userID uint) (*usecase.Summary, error)
}

func (m *mockPortfolioUsecase) Portfolio(ctx context.Context, userID uint) (*usecase.Summary, error) {
	return m.PortfolioFunc(ctx, userID)
}

// TestPortfolioHandler_Get はポートフォリオ照会のHTTPリクエスト/レスポンス処理をテストします。
func TestPortfolioHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success: summary serialized as-is", func(t *testing.T) {
		mockUC := &mockPortfolioUsecase{
			PortfolioFunc: func(ctx context.Context, userID uint) (*usecase.Summary, error) {
				assert.Equal(t, uint(7), userID)
				return &usecase.Summary{
					Positions: []usecase.Position{
						{
							CompanyID: 1, Ticker: "DNST", CompanyName: "Danset Robotics",
							Shares: 100, AveragePrice: 8, CurrentPrice: 10,
							TotalInvested: 800, MarketValue: 1000, ProfitLoss: 200,
						},
					},
					PortfolioValue:    1000,
					TotalInvested:     800,
					ProfitLoss:        200,
					ProfitLossPercent: 25,
				}, nil
			},
		}

		h := handler.NewPortfolioHandler(mockUC)
		router := gin.New()
		router.GET("/portfolio", func(c *gin.Context) { c.Set(jwtmw.ContextUserID, uint(7)) }, h.Get)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/portfolio", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"positions":[{
				"company_id":1,"ticker":"DNST","company_name":"Danset Robotics",
				"shares":100,"average_price":8,"current_price":10,
				"total_invested":800,"market_value":1000,"profit_loss":200
			}],
			"portfolio_value":1000,"total_invested":800,
			"profit_loss":200,"profit_loss_percent":25
		}`, w.Body.String())
	})

	t.Run("failure: unauthenticated request", func(t *testing.T) {
		h := handler.NewPortfolioHandler(&mockPortfolioUsecase{})
		router := gin.New()
		router.GET("/portfolio", h.Get)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/portfolio", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("failure: usecase error yields 500", func(t *testing.T) {
		mockUC := &mockPortfolioUsecase{
			PortfolioFunc: func(ctx context.Context, userID uint) (*usecase.Summary, error) {
				return nil, errors.New("db down")
			},
		}

		h := handler.NewPortfolioHandler(mockUC)
		router := gin.New()
		router.GET("/portfolio", func(c *gin.Context) { c.Set(jwtmw.ContextUserID, uint(7)) }, h.Get)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/portfolio", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
