package entity

type StaffRole string

const (
	RoleStaff StaffRole = "staff"
	RoleAdmin StaffRole = "admin"
)

type Staff struct {
	Base
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password"`
	Role         StaffRole `db:"role"`
	IsActive     bool      `db:"is_active"`
}
