package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/internal/data/repository"
	"picturetime-dashboard/internal/dto/request"
	"picturetime-dashboard/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStaff struct {
	byID map[uuid.UUID]*entity.Staff
}

func (m *memStaff) Create(_ context.Context, staff *entity.Staff) error {
	m.byID[staff.ID] = staff
	return nil
}

func (m *memStaff) FindByID(_ context.Context, id uuid.UUID) (*entity.Staff, error) {
	return m.byID[id], nil
}

func (m *memStaff) FindByEmail(_ context.Context, email string) (*entity.Staff, error) {
	for _, s := range m.byID {
		if strings.EqualFold(s.Email, email) {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memStaff) FindAll(context.Context) ([]*entity.Staff, error) {
	out := make([]*entity.Staff, 0, len(m.byID))
	for _, s := range m.byID {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStaff) SetActive(_ context.Context, id uuid.UUID, active bool) (bool, error) {
	s, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	s.IsActive = active
	return true, nil
}

type memSessions struct {
	byToken map[string]*entity.Session
}

func (m *memSessions) Create(_ context.Context, session *entity.Session) error {
	m.byToken[session.Token.String()] = session
	return nil
}

func (m *memSessions) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	return m.byToken[token], nil
}

func (m *memSessions) Revoke(_ context.Context, token string) error {
	if _, ok := m.byToken[token]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(m.byToken, token)
	return nil
}

func (m *memSessions) RevokeAllStaffSessions(_ context.Context, staffID uuid.UUID) ([]string, error) {
	var revoked []string
	for token, session := range m.byToken {
		if session.StaffID == staffID {
			revoked = append(revoked, token)
			delete(m.byToken, token)
		}
	}
	return revoked, nil
}

func (m *memSessions) CleanExpiredSessions(context.Context) ([]string, error) {
	var expired []string
	for token, session := range m.byToken {
		if session.ExpiresAt.Before(time.Now()) {
			expired = append(expired, token)
			delete(m.byToken, token)
		}
	}
	return expired, nil
}

type recordingListener struct {
	ended []string
}

func (l *recordingListener) EndSession(token string) { l.ended = append(l.ended, token) }

func newAuthFixture() (AuthService, *recordingListener, *memSessions) {
	sessions := &memSessions{byToken: map[string]*entity.Session{}}
	repo := &repository.Repository{
		Staff:   &memStaff{byID: map[uuid.UUID]*entity.Staff{}},
		Session: sessions,
	}
	listener := &recordingListener{}
	config := &utils.Config{}
	config.Session.ExpiryHours = 8
	return NewAuthService(repo, config, listener, zap.NewNop()), listener, sessions
}

func TestAuthService_CreateLoginLogout(t *testing.T) {
	ctx := context.Background()
	svc, listener, sessions := newAuthFixture()

	staff, err := svc.CreateStaff(ctx, &request.CreateStaffRequest{
		Email:    "Ops@PictureTime.in",
		Name:     "Ops Desk",
		Password: "s3cret-pass",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "ops@picturetime.in", staff.Email)

	_, err = svc.CreateStaff(ctx, &request.CreateStaffRequest{
		Email: "ops@picturetime.in", Name: "Again", Password: "s3cret-pass", Role: "staff",
	})
	assert.ErrorContains(t, err, "already registered")

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "ops@picturetime.in", Password: "wrong-pass"}, SessionMeta{})
	assert.EqualError(t, err, "invalid credentials")

	auth, err := svc.Login(ctx, &request.LoginRequest{Email: "ops@picturetime.in", Password: "s3cret-pass"}, SessionMeta{UserAgent: "test"})
	require.NoError(t, err)
	require.Len(t, sessions.byToken, 1)

	token := auth.Token
	require.NoError(t, svc.Logout(ctx, token))
	assert.Equal(t, []string{token}, listener.ended)
	assert.Empty(t, sessions.byToken)

	assert.ErrorContains(t, svc.Logout(ctx, token), "session not found")
	assert.ErrorContains(t, svc.Logout(ctx, "not-a-uuid"), "invalid token format")
}

func TestAuthService_InactiveStaffCannotLogin(t *testing.T) {
	ctx := context.Background()
	svc, listener, sessions := newAuthFixture()

	created, err := svc.CreateStaff(ctx, &request.CreateStaffRequest{
		Email: "gone@picturetime.in", Name: "Gone", Password: "s3cret-pass", Role: "staff",
	})
	require.NoError(t, err)

	list, err := svc.ListStaff(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	auth, err := svc.Login(ctx, &request.LoginRequest{Email: "gone@picturetime.in", Password: "s3cret-pass"}, SessionMeta{})
	require.NoError(t, err)

	updated, err := svc.SetStaffActive(ctx, uuid.MustParse(created.ID), false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Empty(t, sessions.byToken)
	assert.Equal(t, []string{auth.Token}, listener.ended)

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "gone@picturetime.in", Password: "s3cret-pass"}, SessionMeta{})
	assert.ErrorContains(t, err, "deactivated")

	_, err = svc.SetStaffActive(ctx, uuid.New(), true)
	assert.ErrorContains(t, err, "staff not found")
}

func TestAuthService_SweepEndsExpiredSessions(t *testing.T) {
	ctx := context.Background()
	svc, listener, sessions := newAuthFixture()

	_, err := svc.CreateStaff(ctx, &request.CreateStaffRequest{
		Email: "night@picturetime.in", Name: "Night Shift", Password: "s3cret-pass", Role: "staff",
	})
	require.NoError(t, err)

	stale, err := svc.Login(ctx, &request.LoginRequest{Email: "night@picturetime.in", Password: "s3cret-pass"}, SessionMeta{})
	require.NoError(t, err)
	fresh, err := svc.Login(ctx, &request.LoginRequest{Email: "night@picturetime.in", Password: "s3cret-pass"}, SessionMeta{})
	require.NoError(t, err)
	sessions.byToken[stale.Token].ExpiresAt = time.Now().Add(-time.Minute)

	swept, err := svc.SweepExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, swept)
	assert.Equal(t, []string{stale.Token}, listener.ended)
	assert.Contains(t, sessions.byToken, fresh.Token)
}

func TestAuthService_RevokedWorkspacesAreDropped(t *testing.T) {
	ctx := context.Background()
	sessions := &memSessions{byToken: map[string]*entity.Session{}}
	repo := &repository.Repository{
		Staff:   &memStaff{byID: map[uuid.UUID]*entity.Staff{}},
		Session: sessions,
	}
	seats := NewSeatingService(newFakeAPI(), nil, time.UTC, zap.NewNop()).(*seatingService)
	config := &utils.Config{}
	svc := NewAuthService(repo, config, seats, zap.NewNop())

	created, err := svc.CreateStaff(ctx, &request.CreateStaffRequest{
		Email: "box@picturetime.in", Name: "Box Office", Password: "s3cret-pass", Role: "staff",
	})
	require.NoError(t, err)
	auth, err := svc.Login(ctx, &request.LoginRequest{Email: "box@picturetime.in", Password: "s3cret-pass"}, SessionMeta{})
	require.NoError(t, err)

	openShow(t, seats, auth.Token)
	require.Len(t, seats.workspaces, 1)

	_, err = svc.SetStaffActive(ctx, uuid.MustParse(created.ID), false)
	require.NoError(t, err)
	assert.Empty(t, seats.workspaces)
}
