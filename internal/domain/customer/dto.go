package customer

import (
	"time"

	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/pkg/filters"
)

// Filter carries the optional search criteria for customer listings plus
// paging/sort directives. Every criterion is independently optional.
type Filter struct {
	filters.PageRequest

	UUID         string `json:"uuid"`
	UserLastname string `json:"user_lastname"`
	UserVAT      string `json:"user_vat"`
	IsActive     *bool  `json:"is_active"`
}

// UserInsertRequest is the nested user payload for profile creation.
type UserInsertRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Firstname   string `json:"firstname" validate:"required,max=100"`
	Lastname    string `json:"lastname" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	VAT         string `json:"vat" validate:"required,min=5,max=20"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"gender"`
	Nationality string `json:"nationality" validate:"max=100"`
}

// InsertRequest is the payload for creating a customer with its user.
type InsertRequest struct {
	User     UserInsertRequest `json:"user" validate:"required"`
	IsActive *bool             `json:"is_active"`
}

// UserResponse is the read projection of the wrapped user. Credential
// fields never leave the service layer.
type UserResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	VAT         string `json:"vat"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	IsActive    bool   `json:"is_active"`
}

// Response is the read projection of a customer.
type Response struct {
	ID       int64        `json:"id"`
	UUID     string       `json:"uuid"`
	IsActive bool         `json:"is_active"`
	User     UserResponse `json:"user"`
}

const dateLayout = "2006-01-02"

// ToUserResponse maps a user entity onto its read projection.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Firstname:   u.Firstname,
		Lastname:    u.Lastname,
		Email:       u.Email,
		VAT:         u.VAT,
		DateOfBirth: u.DateOfBirth.Format(dateLayout),
		Gender:      string(u.Gender),
		Nationality: u.Nationality,
		IsActive:    u.IsActive,
	}
}

// ToResponse maps a customer entity onto its read projection.
func ToResponse(c *Customer) *Response {
	return &Response{
		ID:       c.ID,
		UUID:     c.UUID,
		IsActive: c.IsActive,
		User:     ToUserResponse(&c.User),
	}
}

// ParseDateOfBirth parses the request date field.
func (r *UserInsertRequest) ParseDateOfBirth() (time.Time, error) {
	return time.Parse(dateLayout, r.DateOfBirth)
}
