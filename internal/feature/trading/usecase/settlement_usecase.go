package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	authentity "danset_exchange/internal/feature/auth/domain/entity"
	marketentity "danset_exchange/internal/feature/market/domain/entity"
	"danset_exchange/internal/feature/trading/domain/entity"
)

// Store は約定エンジンが必要とするエンティティ永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなく
// コンシューマー（usecase）が定義します。
//
// InTx はコールバックに、同一トランザクションに束縛された Store を渡します。
// 約定の全エフェクト（残高・株式数・保有・取引記録・価格）はひとつの
// トランザクション内で適用され、途中で失敗した場合はすべて巻き戻されます。
type Store interface {
	// InTx は fn をひとつのデータベーストランザクション内で実行します。
	InTx(ctx context.Context, fn func(Store) error) error

	// UserByID はIDでユーザーを取得します。存在しない場合は
	// ErrUserNotFound を返します。
	UserByID(ctx context.Context, id uint) (*authentity.User, error)

	// SetUserBalance はユーザーの現金残高を更新します。
	SetUserBalance(ctx context.Context, id uint, balance float64) error

	// ApprovedCompanyByID は承認済み企業をIDで取得します。存在しないか
	// 未承認の場合は ErrCompanyNotFound を返します。
	ApprovedCompanyByID(ctx context.Context, id uint) (*marketentity.Company, error)

	// UpdateCompanyTrade は約定による企業レコードの変更
	// （available_shares と current_price）を書き込みます。
	UpdateCompanyTrade(ctx context.Context, c *marketentity.Company) error

	// HoldingFor は (user, company) の保有を取得します。存在しない場合は
	// ErrHoldingNotFound を返します。
	HoldingFor(ctx context.Context, userID, companyID uint) (*entity.Holding, error)

	// SaveHolding は保有を作成または更新します。
	SaveHolding(ctx context.Context, h *entity.Holding) error

	// DeleteHolding は保有を削除します。全株売却時のみ呼ばれます。
	DeleteHolding(ctx context.Context, id uint) error

	// AppendTransaction は取引記録を追記します。記録は不変です。
	AppendTransaction(ctx context.Context, t *entity.Transaction) error

	// RecentTransactions は全ユーザーの直近の取引を新しい順に返します。
	RecentTransactions(ctx context.Context, limit int) ([]entity.Transaction, error)

	// TransactionsByUser は指定ユーザーの取引を新しい順に返します。
	TransactionsByUser(ctx context.Context, userID uint, limit int) ([]entity.Transaction, error)
}

// Cooldown はユーザー単位の取引クールダウンを抽象化します。実装は
// Redisキー（複数セッション間で共有）またはプロセス内フォールバックです。
type Cooldown interface {
	// Active はユーザーがまだクールダウン中かどうかを返します。
	Active(ctx context.Context, userID uint) (bool, error)

	// Mark は約定成功後にクールダウンを開始します。
	Mark(ctx context.Context, userID uint) error
}

// MarketStatusReader は市場の開閉状態を返します。ステータスレコードが
// 存在しない場合、実装は「開場」として扱わなければなりません。
type MarketStatusReader interface {
	CurrentStatus(ctx context.Context) (isOpen bool, message string, err error)
}

// PriceRecorder は約定後の新価格を価格履歴に記録します。
type PriceRecorder interface {
	RecordPrice(ctx context.Context, companyID uint, ticker string, price float64, at time.Time) error
}

// TradeReceipt は約定成功時に呼び出し元へ返される確認情報です。
type TradeReceipt struct {
	Reference     string    `json:"reference"`
	Ticker        string    `json:"ticker"`
	Side          string    `json:"side"`
	Shares        int64     `json:"shares"`
	PricePerShare float64   `json:"price_per_share"`
	TotalAmount   float64   `json:"total_amount"`
	NewBalance    float64   `json:"new_balance"`
	NewPrice      float64   `json:"new_price"`
	ExecutedAt    time.Time `json:"executed_at"`
}

// settlementUsecase は売買注文の検証と約定を実装します。
// Buy/Sell/Trading の三画面に重複していたロジックの唯一の実装です。
type settlementUsecase struct {
	store    Store
	cooldown Cooldown
	status   MarketStatusReader
	prices   PriceRecorder
	noise    NoiseFunc
	now      func() time.Time
}

// NewSettlementUsecase はsettlementUsecaseの新しいインスタンスを生成します。
// prices は nil でも構いません（価格履歴なしで約定は成立します）。
func NewSettlementUsecase(store Store, cooldown Cooldown, status MarketStatusReader, prices PriceRecorder) *settlementUsecase {
	return &settlementUsecase{
		store:    store,
		cooldown: cooldown,
		status:   status,
		prices:   prices,
		noise:    uniformNoise,
		now:      time.Now,
	}
}

// uniformNoise は [-volatility, +volatility] の一様乱数を返します。
func uniformNoise(volatility float64) float64 {
	return rand.Float64()*(volatility*2) - volatility
}

// WithNoise はノイズ生成関数を差し替えます。テスト用です。
func (s *settlementUsecase) WithNoise(noise NoiseFunc) *settlementUsecase {
	s.noise = noise
	return s
}

// WithClock は現在時刻の取得関数を差し替えます。テスト用です。
func (s *settlementUsecase) WithClock(now func() time.Time) *settlementUsecase {
	s.now = now
	return s
}

// Execute は注文を検証し約定します。検証は次の順に行われ、最初の失敗で
// 打ち切られます: 数量 → クールダウン → 開場状態 → 資金・在庫。
// エフェクトはひとつのトランザクションで適用され、クールダウンの開始は
// 約定成功時のみです。
func (s *settlementUsecase) Execute(ctx context.Context, userID, companyID uint, side string, quantity int64) (*TradeReceipt, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if side != entity.SideBuy && side != entity.SideSell {
		return nil, fmt.Errorf("unknown trade side %q", side)
	}

	active, err := s.cooldown.Active(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cooldown check failed: %w", err)
	}
	if active {
		return nil, ErrRateLimited
	}

	isOpen, message, err := s.status.CurrentStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("market status check failed: %w", err)
	}
	if !isOpen {
		return nil, &MarketClosedError{Message: message}
	}

	var receipt *TradeReceipt
	err = s.store.InTx(ctx, func(tx Store) error {
		r, err := s.settle(ctx, tx, userID, companyID, side, quantity)
		if err != nil {
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	// クールダウン・価格履歴は約定確定後のベストエフォート
	if err := s.cooldown.Mark(ctx, userID); err != nil {
		return receipt, fmt.Errorf("trade executed but cooldown mark failed: %w", err)
	}

	return receipt, nil
}

// settle はトランザクション内で全エフェクトを仕様の順に適用します。
func (s *settlementUsecase) settle(ctx context.Context, tx Store, userID, companyID uint, side string, quantity int64) (*TradeReceipt, error) {
	user, err := tx.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	company, err := tx.ApprovedCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	executionPrice := company.CurrentPrice
	amount := float64(quantity) * executionPrice
	now := s.now()

	var newBalance float64
	if side == entity.SideBuy {
		if user.CashBalance < amount {
			return nil, ErrInsufficientFunds
		}
		if company.AvailableShares < quantity {
			return nil, ErrInsufficientShares
		}

		newBalance = user.CashBalance - amount
		if err := tx.SetUserBalance(ctx, userID, newBalance); err != nil {
			return nil, err
		}

		company.AvailableShares -= quantity

		if err := s.applyBuyToHolding(ctx, tx, user.ID, company, quantity, amount); err != nil {
			return nil, err
		}
	} else {
		holding, err := tx.HoldingFor(ctx, userID, companyID)
		if err != nil {
			if errors.Is(err, ErrHoldingNotFound) {
				return nil, ErrInsufficientPosition
			}
			return nil, err
		}
		if holding.Shares < quantity {
			return nil, ErrInsufficientPosition
		}

		newBalance = user.CashBalance + amount
		if err := tx.SetUserBalance(ctx, userID, newBalance); err != nil {
			return nil, err
		}

		company.AvailableShares += quantity

		if holding.Shares == quantity {
			if err := tx.DeleteHolding(ctx, holding.ID); err != nil {
				return nil, err
			}
		} else {
			// 一部売却では平均取得単価は変わらず、投下資金だけが比例して減る
			holding.Shares -= quantity
			holding.TotalInvested -= float64(quantity) * holding.AveragePrice
			if err := tx.SaveHolding(ctx, holding); err != nil {
				return nil, err
			}
		}
	}

	reference := uuid.NewString()
	if err := tx.AppendTransaction(ctx, &entity.Transaction{
		Reference:     reference,
		UserID:        userID,
		CompanyID:     company.ID,
		Ticker:        company.Ticker,
		Type:          side,
		Shares:        quantity,
		PricePerShare: executionPrice,
		TotalAmount:   amount,
		CreatedAt:     now,
	}); err != nil {
		return nil, err
	}

	company.CurrentPrice = applyPriceImpact(
		executionPrice,
		quantity,
		company.TotalShares,
		side == entity.SideBuy,
		company.Volatility(),
		s.noise,
	)
	if err := tx.UpdateCompanyTrade(ctx, company); err != nil {
		return nil, err
	}

	if s.prices != nil {
		if err := s.prices.RecordPrice(ctx, company.ID, company.Ticker, company.CurrentPrice, now); err != nil {
			return nil, err
		}
	}

	return &TradeReceipt{
		Reference:     reference,
		Ticker:        company.Ticker,
		Side:          side,
		Shares:        quantity,
		PricePerShare: executionPrice,
		TotalAmount:   amount,
		NewBalance:    newBalance,
		NewPrice:      company.CurrentPrice,
		ExecutedAt:    now,
	}, nil
}

// applyBuyToHolding は買い約定を保有へ反映します。既存保有には数量と
// 投下資金を加算して平均取得単価を引き直し、なければ新規作成します。
func (s *settlementUsecase) applyBuyToHolding(ctx context.Context, tx Store, userID uint, company *marketentity.Company, quantity int64, cost float64) error {
	holding, err := tx.HoldingFor(ctx, userID, company.ID)
	if err != nil {
		if !errors.Is(err, ErrHoldingNotFound) {
			return err
		}
		return tx.SaveHolding(ctx, &entity.Holding{
			UserID:        userID,
			CompanyID:     company.ID,
			Ticker:        company.Ticker,
			Shares:        quantity,
			AveragePrice:  company.CurrentPrice,
			TotalInvested: cost,
		})
	}

	newShares := holding.Shares + quantity
	newInvested := holding.TotalInvested + cost
	holding.Shares = newShares
	holding.TotalInvested = newInvested
	holding.AveragePrice = newInvested / float64(newShares)
	return tx.SaveHolding(ctx, holding)
}

// ListRecent は全ユーザーの直近の取引を返します（取引画面のフィード用）。
func (s *settlementUsecase) ListRecent(ctx context.Context, limit int) ([]entity.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.RecentTransactions(ctx, limit)
}

// ListByUser は指定ユーザーの取引履歴を返します。
func (s *settlementUsecase) ListByUser(ctx context.Context, userID uint, limit int) ([]entity.Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.TransactionsByUser(ctx, userID, limit)
}
