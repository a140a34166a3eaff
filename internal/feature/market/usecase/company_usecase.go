package usecase

import (
	"context"
	"fmt"
	"strings"

	"danset_exchange/internal/feature/market/domain/entity"
)

// CompanyRepository は企業エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type CompanyRepository interface {
	// Create は新しい企業を永続化します。ティッカーが重複する場合は
	// ErrTickerAlreadyExists を返します。
	Create(ctx context.Context, c *entity.Company) error

	// FindByID はIDで企業を取得します。存在しない場合は
	// ErrCompanyNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.Company, error)

	// ListByStatus は指定ステータスの企業を新しい順に返します。
	ListByStatus(ctx context.Context, status string) ([]entity.Company, error)

	// ListAll は全企業を新しい順に返します。
	ListAll(ctx context.Context) ([]entity.Company, error)

	// Update は企業レコードを保存します。
	Update(ctx context.Context, c *entity.Company) error

	// Delete は企業を削除します。
	Delete(ctx context.Context, id uint) error
}

// ListingRequest は企業登録の入力です。
type ListingRequest struct {
	Ticker       string
	Name         string
	Sector       string
	Description  string
	InitialPrice float64
	TotalShares  int64
}

// companyUsecase は企業の登録・承認・一覧のビジネスロジックを実装します。
type companyUsecase struct {
	companies CompanyRepository
}

// NewCompanyUsecase はcompanyUsecaseの新しいインスタンスを生成します。
func NewCompanyUsecase(companies CompanyRepository) *companyUsecase {
	return &companyUsecase{companies: companies}
}

// validateListing は登録リクエストの内容を検証します。
func validateListing(req ListingRequest) error {
	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" || len(ticker) > entity.MaxTickerLength {
		return fmt.Errorf("%w: ticker must be 1-%d characters", ErrInvalidListing, entity.MaxTickerLength)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidListing)
	}
	if req.InitialPrice <= 0 {
		return fmt.Errorf("%w: initial price must be positive", ErrInvalidListing)
	}
	if req.TotalShares <= 0 {
		return fmt.Errorf("%w: total shares must be positive", ErrInvalidListing)
	}
	return nil
}

// newCompany はリクエストから企業エンティティを組み立てます。
// 現在価格はベースライン価格から始まり、全株式が売り出されます。
func newCompany(req ListingRequest, status string) *entity.Company {
	return &entity.Company{
		Ticker:           strings.ToUpper(strings.TrimSpace(req.Ticker)),
		Name:             strings.TrimSpace(req.Name),
		Sector:           strings.TrimSpace(req.Sector),
		Description:      req.Description,
		InitialPrice:     req.InitialPrice,
		CurrentPrice:     req.InitialPrice,
		TotalShares:      req.TotalShares,
		AvailableShares:  req.TotalShares,
		MarketVolatility: entity.DefaultVolatility,
		Status:           status,
	}
}

// Register は一般ユーザーによる上場申請です。企業は承認待ちとして作成され、
// 管理者の承認までは取引できません。
func (u *companyUsecase) Register(ctx context.Context, req ListingRequest) (*entity.Company, error) {
	if err := validateListing(req); err != nil {
		return nil, err
	}
	c := newCompany(req, entity.StatusPending)
	if err := u.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AdminCreate は管理者による上場で、即座に承認済みとして作成されます。
func (u *companyUsecase) AdminCreate(ctx context.Context, req ListingRequest) (*entity.Company, error) {
	if err := validateListing(req); err != nil {
		return nil, err
	}
	c := newCompany(req, entity.StatusApproved)
	if err := u.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListApproved は取引可能な企業の一覧を返します。
func (u *companyUsecase) ListApproved(ctx context.Context) ([]entity.Company, error) {
	return u.companies.ListByStatus(ctx, entity.StatusApproved)
}

// ListPending は承認待ちの企業の一覧を返します。
func (u *companyUsecase) ListPending(ctx context.Context) ([]entity.Company, error) {
	return u.companies.ListByStatus(ctx, entity.StatusPending)
}

// ListAll は全企業の一覧を返します（管理画面用）。
func (u *companyUsecase) ListAll(ctx context.Context) ([]entity.Company, error) {
	return u.companies.ListAll(ctx)
}

// Get はIDで企業を取得します。
func (u *companyUsecase) Get(ctx context.Context, id uint) (*entity.Company, error) {
	return u.companies.FindByID(ctx, id)
}

// SetStatus は企業を承認または却下します。
func (u *companyUsecase) SetStatus(ctx context.Context, id uint, status string) (*entity.Company, error) {
	if status != entity.StatusApproved && status != entity.StatusRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrInvalidListing)
	}
	c, err := u.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Status = status
	if err := u.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateDetails は管理者による企業情報の編集です。価格・株式数などの
// 取引で動くフィールドはここでは変更できません。
func (u *companyUsecase) UpdateDetails(ctx context.Context, id uint, name, sector, description string, volatility float64) (*entity.Company, error) {
	c, err := u.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) != "" {
		c.Name = strings.TrimSpace(name)
	}
	if strings.TrimSpace(sector) != "" {
		c.Sector = strings.TrimSpace(sector)
	}
	if description != "" {
		c.Description = description
	}
	if volatility > 0 {
		c.MarketVolatility = volatility
	}
	if err := u.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete は企業を上場廃止します。
func (u *companyUsecase) Delete(ctx context.Context, id uint) error {
	if _, err := u.companies.FindByID(ctx, id); err != nil {
		return err
	}
	return u.companies.Delete(ctx, id)
}
