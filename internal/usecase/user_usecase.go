package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var _ domain.UserUseCase = (*userUseCase)(nil)

type userUseCase struct {
	users  domain.UserRepository
	tokens domain.TokenService
	log    *logrus.Logger
	now    func() time.Time
}

func NewUserUseCase(users domain.UserRepository, tokens domain.TokenService, logger *logrus.Logger) domain.UserUseCase {
	return &userUseCase{users: users, tokens: tokens, log: logger, now: time.Now}
}

func (uc *userUseCase) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	uc.log.Infof("Use Case: Attempting registration for email: %s", in.Email)
	if err := in.Validate(); err != nil {
		uc.log.Warnf("Use Case: Registration failed validation: %v", err)
		return nil, err
	}
	return uc.create(ctx, in.Username, in.Email, in.Phone, in.Password, domain.RoleUser)
}

func (uc *userUseCase) create(ctx context.Context, username, email, phone, password string, role domain.Role) (*domain.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", email, err)
		return nil, domain.StorageError(err, "internal error processing password")
	}

	now := uc.now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashed),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		uc.log.Errorf("Use Case: Repository failed to create user %s: %v", email, err)
		return nil, err
	}
	uc.log.Infof("Use Case: User registered successfully. ID: %s, Email: %s, Role: %s", user.ID, user.Email, user.Role)
	return user, nil
}

func (uc *userUseCase) Login(ctx context.Context, in domain.LoginInput) (*domain.AuthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	uc.log.Infof("Use Case: Attempting authentication for email: %s", in.Email)

	user, err := uc.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, domain.ErrNotFound) {
		uc.log.Warnf("Use Case: Auth failed - no user for %s", in.Email)
		return nil, domain.AuthError("invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warnf("Use Case: Auth failed - wrong password for %s", in.Email)
		return nil, domain.AuthError("invalid email or password")
	}

	token, expiresAt, err := uc.tokens.Issue(user)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to issue token for user %s: %v", user.ID, err)
		return nil, domain.StorageError(err, "could not issue token")
	}
	uc.log.Infof("Use Case: User %s authenticated", user.ID)
	return &domain.AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (uc *userUseCase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// EnsureAdmin creates the admin account on first start. An existing account with the same email is
// left untouched.
func (uc *userUseCase) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	existing, err := uc.users.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role != domain.RoleAdmin {
			uc.log.Warnf("Use Case: Account %s exists without the admin role; not changing it", email)
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if len(password) < 6 {
		return nil, domain.ValidationError("admin password must be at least 6 characters")
	}

	admin, err := uc.create(ctx, "admin", email, "", password, domain.RoleAdmin)
	if errors.Is(err, domain.ErrConflict) {
		return uc.users.GetByEmail(ctx, email)
	}
	return admin, err
}
