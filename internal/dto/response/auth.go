package response

import (
	"time"

	"picturetime-dashboard/internal/data/entity"
)

type AuthResponse struct {
	StaffID   string           `json:"staff_id"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	Role      entity.StaffRole `json:"role"`
}

type StaffResponse struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	Role      entity.StaffRole `json:"role"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
}

func StaffToResponse(staff *entity.Staff) StaffResponse {
	return StaffResponse{
		ID:        staff.ID.String(),
		Email:     staff.Email,
		Name:      staff.Name,
		Role:      staff.Role,
		IsActive:  staff.IsActive,
		CreatedAt: staff.CreatedAt,
	}
}

func AuthToResponse(staff *entity.Staff, session *entity.Session) AuthResponse {
	resp := AuthResponse{
		StaffID: staff.ID.String(),
		Email:   staff.Email,
		Name:    staff.Name,
		Role:    staff.Role,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
