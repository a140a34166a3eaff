package dto

import "danset_exchange/internal/feature/auth/domain/entity"

// UserResponse is the public view of a user record. The password hash is
// never serialized.
type UserResponse struct {
	ID          uint    `json:"id"`
	Email       string  `json:"email"`
	CashBalance float64 `json:"cash_balance"`
	Role        string  `json:"role"`
}

// GrantRequest is the JSON body for POST /admin/users/:id/grant.
type GrantRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// NewUserResponse maps a user entity to its public view.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		CashBalance: u.CashBalance,
		Role:        u.Role,
	}
}
