package repository

import (
	"context"
	"errors"
	"fmt"

	"picturetime-dashboard/internal/data/entity"
	"picturetime-dashboard/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	FindByEmail(ctx context.Context, email string) (*entity.Staff, error)
	FindAll(ctx context.Context) ([]*entity.Staff, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error)
}

type staffRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStaffRepository(db database.PgxIface, log *zap.Logger) StaffRepository {
	return &staffRepository{
		db:  db,
		log: log.With(zap.String("repository", "staff")),
	}
}

const staffColumns = `id, email, name, password, role, is_active, created_at, updated_at, deleted_at`

func scanStaff(row pgx.Row) (*entity.Staff, error) {
	var staff entity.Staff
	err := row.Scan(
		&staff.ID,
		&staff.Email,
		&staff.Name,
		&staff.PasswordHash,
		&staff.Role,
		&staff.IsActive,
		&staff.CreatedAt,
		&staff.UpdatedAt,
		&staff.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	query := `
		INSERT INTO staff (id, email, name, password, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		staff.ID,
		staff.Email,
		staff.Name,
		staff.PasswordHash,
		staff.Role,
		staff.IsActive,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create staff",
			zap.Error(err),
			zap.String("email", staff.Email),
		)
		return fmt.Errorf("create staff %s: %w", staff.Email, err)
	}

	return nil
}

func (r *staffRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1 AND deleted_at IS NULL`

	staff, err := scanStaff(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find staff by ID",
			zap.Error(err),
			zap.String("staff_id", id.String()),
		)
		return nil, fmt.Errorf("find staff by ID %s: %w", id, err)
	}

	return staff, nil
}

func (r *staffRepository) FindByEmail(ctx context.Context, email string) (*entity.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`

	staff, err := scanStaff(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find staff by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find staff by email: %w", err)
	}

	return staff, nil
}

func (r *staffRepository) FindAll(ctx context.Context) ([]*entity.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE deleted_at IS NULL ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list staff", zap.Error(err))
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	var out []*entity.Staff
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		out = append(out, staff)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate staff: %w", err)
	}

	return out, nil
}

// SetActive flips is_active and reports whether the staff member exists.
func (r *staffRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error) {
	query := `
		UPDATE staff
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to update staff status",
			zap.Error(err),
			zap.String("staff_id", id.String()),
		)
		return false, fmt.Errorf("set staff %s active=%t: %w", id, active, err)
	}

	return tag.RowsAffected() > 0, nil
}
