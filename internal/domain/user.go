package domain

import (
	"context"
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HasRole reports whether the user may act as required. Admins satisfy every role.
func (u *User) HasRole(required Role) bool {
	return u.Role == RoleAdmin || u.Role == required
}

type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,emailshape"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`
}

func (in *RegisterInput) Validate() error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	return validateStruct(in)
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Validate() error {
	in.Email = NormalizeEmail(in.Email)
	return validateStruct(in)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthResult is returned by a successful login.
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// UserRepository returns a conflict error from Create when the email is already registered.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type UserUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*User, error)
	EnsureAdmin(ctx context.Context, email, password string) (*User, error)
}

// TokenClaims is what a verified bearer token asserts about its holder.
type TokenClaims struct {
	UserID    string
	Role      Role
	ExpiresAt time.Time
}

type TokenService interface {
	Issue(user *User) (string, time.Time, error)
	Verify(token string) (*TokenClaims, error)
}
