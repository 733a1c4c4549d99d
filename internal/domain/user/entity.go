package user

import (
	"time"
)

// Role represents the single capability a user account holds. A user is a
// customer, a guide, or an administrator, never several at once; the
// matching profile row is created together with the user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleGuide    Role = "guide"
	RoleAdmin    Role = "admin"
)

// Gender matches the gender enum in the users table.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User represents an account with its personal profile. The VAT number and
// username are unique across all users.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Firstname    string    `db:"firstname"`
	Lastname     string    `db:"lastname"`
	Email        string    `db:"email"`
	VAT          string    `db:"vat"`
	DateOfBirth  time.Time `db:"date_of_birth"`
	Gender       Gender    `db:"gender"`
	Nationality  string    `db:"nationality"`
	Role         Role      `db:"role"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
