package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/internal/data/repository"
	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/internal/dto/response"
	"picturetime-dashboard/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	CurrentStaff(ctx context.Context, staffID uuid.UUID) (*response.StaffResponse, error)
	CreateStaff(ctx context.Context, req *request.CreateStaffRequest) (*response.StaffResponse, error)
	ListStaff(ctx context.Context) ([]response.StaffResponse, error)
	SetStaffActive(ctx context.Context, staffID uuid.UUID, active bool) (*response.StaffResponse, error)
	SweepExpiredSessions(ctx context.Context) (int, error)
}

// SessionMeta is what the login request tells us about the client.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// SessionListener is told when a session ends so per-session state can go.
type SessionListener interface {
	EndSession(token string)
}

type authService struct {
	repo     *repository.Repository
	config   *utils.Config
	listener SessionListener
	log      *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	listener SessionListener,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		config:   config,
		listener: listener,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta SessionMeta) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	staff, err := s.repo.Staff.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find staff by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find staff")
	}
	if staff == nil {
		s.log.Warn("Staff not found for login", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials")
	}

	if !utils.CheckPasswordHash(req.Password, staff.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("staff_id", staff.ID.String()))
		return nil, fmt.Errorf("invalid credentials")
	}

	if !staff.IsActive {
		s.log.Warn("Inactive staff tried to login", zap.String("staff_id", staff.ID.String()))
		return nil, fmt.Errorf("account is deactivated")
	}

	session, err := s.createSession(ctx, staff.ID, meta)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("staff_id", staff.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("Staff logged in",
		zap.String("staff_id", staff.ID.String()),
		zap.String("email", staff.Email))

	resp := response.AuthToResponse(staff, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return fmt.Errorf("invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return fmt.Errorf("session not found")
		}
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("failed to logout")
	}

	if s.listener != nil {
		s.listener.EndSession(tokenUUID.String())
	}

	s.log.Info("Staff logged out")
	return nil
}

func (s *authService) CurrentStaff(ctx context.Context, staffID uuid.UUID) (*response.StaffResponse, error) {
	staff, err := s.repo.Staff.FindByID(ctx, staffID)
	if err != nil {
		s.log.Error("Failed to find staff", zap.Error(err), zap.String("staff_id", staffID.String()))
		return nil, fmt.Errorf("failed to get profile")
	}
	if staff == nil {
		return nil, fmt.Errorf("staff not found")
	}

	resp := response.StaffToResponse(staff)
	return &resp, nil
}

func (s *authService) CreateStaff(ctx context.Context, req *request.CreateStaffRequest) (*response.StaffResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.repo.Staff.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	role := entity.RoleStaff
	if req.Role == string(entity.RoleAdmin) {
		role = entity.RoleAdmin
	}

	now := time.Now()
	staff := &entity.Staff{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Staff.Create(ctx, staff); err != nil {
		s.log.Error("Failed to create staff", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to create account")
	}

	s.log.Info("Staff created",
		zap.String("staff_id", staff.ID.String()),
		zap.String("role", string(role)))

	resp := response.StaffToResponse(staff)
	return &resp, nil
}

func (s *authService) ListStaff(ctx context.Context) ([]response.StaffResponse, error) {
	all, err := s.repo.Staff.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list staff", zap.Error(err))
		return nil, fmt.Errorf("failed to list staff")
	}

	out := make([]response.StaffResponse, 0, len(all))
	for _, staff := range all {
		out = append(out, response.StaffToResponse(staff))
	}
	return out, nil
}

// SetStaffActive enables or disables an account. Disabling revokes every
// session the staff member holds.
func (s *authService) SetStaffActive(ctx context.Context, staffID uuid.UUID, active bool) (*response.StaffResponse, error) {
	found, err := s.repo.Staff.SetActive(ctx, staffID, active)
	if err != nil {
		s.log.Error("Failed to update staff status", zap.Error(err), zap.String("staff_id", staffID.String()))
		return nil, fmt.Errorf("failed to update staff")
	}
	if !found {
		return nil, fmt.Errorf("staff not found")
	}

	if !active {
		tokens, err := s.repo.Session.RevokeAllStaffSessions(ctx, staffID)
		if err != nil {
			s.log.Error("Failed to revoke staff sessions", zap.Error(err), zap.String("staff_id", staffID.String()))
			return nil, fmt.Errorf("failed to revoke sessions")
		}
		s.endSessions(tokens)
	}

	s.log.Info("Staff status changed",
		zap.String("staff_id", staffID.String()),
		zap.Bool("active", active))

	return s.CurrentStaff(ctx, staffID)
}

// SweepExpiredSessions deletes expired sessions and ends their per-session
// state. It returns how many live sessions were swept.
func (s *authService) SweepExpiredSessions(ctx context.Context) (int, error) {
	tokens, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		s.log.Warn("Failed to clean expired sessions", zap.Error(err))
		return 0, fmt.Errorf("failed to clean sessions")
	}
	s.endSessions(tokens)
	if len(tokens) > 0 {
		s.log.Info("Expired sessions swept", zap.Int("count", len(tokens)))
	}
	return len(tokens), nil
}

// ==================== HELPER METHODS ====================

func (s *authService) endSessions(tokens []string) {
	if s.listener == nil {
		return
	}
	for _, token := range tokens {
		if id, err := uuid.Parse(token); err == nil {
			token = id.String()
		}
		s.listener.EndSession(token)
	}
}

func (s *authService) createSession(ctx context.Context, staffID uuid.UUID, meta SessionMeta) (*entity.Session, error) {
	hours := s.config.Session.ExpiryHours
	if hours <= 0 {
		hours = 24
	}

	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		StaffID:   staffID,
		Token:     uuid.New(),
		UserAgent: optional(meta.UserAgent),
		IPAddress: optional(meta.IPAddress),
		ExpiresAt: now.Add(time.Duration(hours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
