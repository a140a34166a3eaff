package router

import (
	"github.com/gin-contrib/cors"

	authhandler "danset_exchange/internal/feature/auth/transport/handler"
	markethandler "danset_exchange/internal/feature/market/transport/handler"
	newshandler "danset_exchange/internal/feature/news/transport/handler"
	portfoliohandler "danset_exchange/internal/feature/portfolio/transport/handler"
	priceshandler "danset_exchange/internal/feature/pricehistory/transport/handler"
	schedulehandler "danset_exchange/internal/feature/schedule/transport/handler"
	tradehandler "danset_exchange/internal/feature/trading/transport/handler"
	jwtmw "danset_exchange/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Company   *markethandler.CompanyHandler
	Trade     *tradehandler.TradeHandler
	Schedule  *schedulehandler.ScheduleHandler
	News      *newshandler.NewsHandler
	Portfolio *portfoliohandler.PortfolioHandler
	Prices    *priceshandler.PricesHandler
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// CORS（ブラウザのフロントエンドから叩くため）
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	// 新規ユーザー登録
	r.POST("/signup", h.Auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/me", h.Auth.Me)

		// 承認済み企業の一覧と価格履歴
		auth.GET("/companies", h.Company.List)
		auth.GET("/companies/:id/prices", h.Prices.History)
		// 上場申請（承認待ちとして登録）
		auth.POST("/companies", h.Company.Register)

		// 売買注文と取引履歴
		auth.POST("/trades", h.Trade.Execute)
		auth.GET("/transactions", h.Trade.Mine)
		auth.GET("/transactions/recent", h.Trade.Recent)

		auth.GET("/portfolio", h.Portfolio.Get)

		auth.GET("/market/status", h.Schedule.GetStatus)
		auth.GET("/market/schedule", h.Schedule.GetSchedule)

		auth.GET("/news", h.News.List)
	}

	// 管理者専用のルート
	admin := r.Group("/admin")
	admin.Use(jwtmw.AuthRequired(), jwtmw.AdminRequired())
	{
		admin.GET("/users", h.Auth.ListUsers)
		admin.POST("/users/:id/grant", h.Auth.GrantCash)

		admin.GET("/companies", h.Company.ListAll)
		admin.GET("/companies/pending", h.Company.ListPending)
		admin.POST("/companies", h.Company.AdminCreate)
		admin.PUT("/companies/:id", h.Company.Update)
		admin.PUT("/companies/:id/status", h.Company.SetStatus)
		admin.DELETE("/companies/:id", h.Company.Delete)

		admin.PUT("/market/schedule", h.Schedule.UpdateSchedule)
		admin.PUT("/market/status", h.Schedule.SetStatus)

		admin.POST("/news", h.News.Publish)
	}

	return r
}
