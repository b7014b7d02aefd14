package models

type User struct {
	ID        string `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"-" db:"password"` // Never return password in JSON
	Name      string `json:"name" db:"name"`
	Phone     string `json:"phone" db:"phone"`
	Role      string `json:"role" db:"role"` // "carepro" or "admin"
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
}

func (u *User) ToUserResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// CareproPrefs holds the per-carepro offer preferences the gateway persists:
// the availability toggle and the optional service-type selector. Job and
// booking data is never cached locally - every list request re-fetches from
// the platform - so these two columns are the only gateway-owned state
// besides accounts.
type CareproPrefs struct {
	UserID      string `json:"user_id" db:"user_id"`
	IsAvailable bool   `json:"is_available" db:"is_available"`
	ServiceType string `json:"service_type" db:"service_type"` // "" = all service types
	UpdatedAt   int64  `json:"updated_at" db:"updated_at"`
}

// UpdatePrefsRequest is the request body for PUT /api/profile/availability
type UpdatePrefsRequest struct {
	IsAvailable bool   `json:"is_available"`
	ServiceType string `json:"service_type"`
}
