package request

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type CreateStaffRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=staff admin"`
}

// UpdateStaffStatusRequest activates or deactivates a staff account.
type UpdateStaffStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
