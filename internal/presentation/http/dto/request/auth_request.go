package request

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SetupRequest creates the first owner account
type SetupRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Mobile   *string `json:"mobile" binding:"omitempty,mobile"`
}

// RegisterStaffRequest represents an owner registering a staff account
type RegisterStaffRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Role     string  `json:"role" binding:"required,oneof=owner admin invoice_biller"`
	Mobile   *string `json:"mobile" binding:"omitempty,mobile"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
