package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"danset_exchange/internal/app/router"
	authadapters "danset_exchange/internal/feature/auth/adapters"
	authhandler "danset_exchange/internal/feature/auth/transport/handler"
	authusecase "danset_exchange/internal/feature/auth/usecase"
	marketadapters "danset_exchange/internal/feature/market/adapters"
	markethandler "danset_exchange/internal/feature/market/transport/handler"
	marketusecase "danset_exchange/internal/feature/market/usecase"
	newsadapters "danset_exchange/internal/feature/news/adapters"
	newshandler "danset_exchange/internal/feature/news/transport/handler"
	newsusecase "danset_exchange/internal/feature/news/usecase"
	portfolioadapters "danset_exchange/internal/feature/portfolio/adapters"
	portfoliohandler "danset_exchange/internal/feature/portfolio/transport/handler"
	portfoliousecase "danset_exchange/internal/feature/portfolio/usecase"
	pricesadapters "danset_exchange/internal/feature/pricehistory/adapters"
	priceshandler "danset_exchange/internal/feature/pricehistory/transport/handler"
	pricesusecase "danset_exchange/internal/feature/pricehistory/usecase"
	scheduleadapters "danset_exchange/internal/feature/schedule/adapters"
	schedulehandler "danset_exchange/internal/feature/schedule/transport/handler"
	scheduleusecase "danset_exchange/internal/feature/schedule/usecase"
	tradingadapters "danset_exchange/internal/feature/trading/adapters"
	tradinghandler "danset_exchange/internal/feature/trading/transport/handler"
	tradingusecase "danset_exchange/internal/feature/trading/usecase"
	"danset_exchange/internal/platform/cache"
	platformdb "danset_exchange/internal/platform/db"
	platformjwt "danset_exchange/internal/platform/jwt"
	platformredis "danset_exchange/internal/platform/redis"
	"danset_exchange/internal/shared/cooldown"
)

func main() {
	// .env（ローカル開発用。本番では環境変数を直接設定する）
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found. Using process environment.")
	}

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Using in-memory cooldown and no price cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	companyRepo := marketadapters.NewCompanyRepository(db)
	tradeStore := tradingadapters.NewTradeStore(db)
	scheduleRepo := scheduleadapters.NewScheduleRepository(db)
	statusRepo := scheduleadapters.NewStatusRepository(db)
	newsRepo := newsadapters.NewNewsRepository(db)
	holdingRepo := portfolioadapters.NewHoldingReader(db)
	priceRepo := pricesadapters.NewPriceRepository(db)

	// Redisキャッシュでラップ
	cachedPriceRepo := cache.NewCachingPriceRepository(rdb, 30*time.Second, priceRepo, "prices")

	// クールダウン（Redisなしならメモリ実装にフォールバック）
	var tradeCooldown tradingusecase.Cooldown
	if rdb != nil {
		tradeCooldown = cooldown.NewRedisCooldown(rdb, "trade_cooldown", cooldown.DefaultWindow)
	} else {
		tradeCooldown = cooldown.NewMemoryCooldown(cooldown.DefaultWindow)
	}

	// Usecase
	jwtGen := platformjwt.NewGenerator(os.Getenv(platformjwt.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	companyUC := marketusecase.NewCompanyUsecase(companyRepo)
	scheduleUC := scheduleusecase.NewScheduleUsecase(scheduleRepo, statusRepo, companyRepo)
	pricesUC := pricesusecase.NewPricesUsecase(cachedPriceRepo)
	settlementUC := tradingusecase.NewSettlementUsecase(tradeStore, tradeCooldown, scheduleUC, pricesUC)
	newsUC := newsusecase.NewNewsUsecase(newsRepo, companyRepo, pricesUC)
	portfolioUC := portfoliousecase.NewPortfolioUsecase(holdingRepo, companyRepo)

	// 市場スケジューラを起動
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler := scheduleusecase.NewScheduler(scheduleRepo, statusRepo, companyRepo)
	go scheduler.Run(ctx)

	// Handler
	h := router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Company:   markethandler.NewCompanyHandler(companyUC),
		Trade:     tradinghandler.NewTradeHandler(settlementUC),
		Schedule:  schedulehandler.NewScheduleHandler(scheduleUC),
		News:      newshandler.NewNewsHandler(newsUC),
		Portfolio: portfoliohandler.NewPortfolioHandler(portfolioUC),
		Prices:    priceshandler.NewPricesHandler(pricesUC),
	}

	// ルータ生成
	r := router.NewRouter(h)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(platformjwt.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
