package service

import (
	"context"
	"errors"
	"fmt"
	"infinity-park/internal/apperr"
	"infinity-park/internal/auth"
	"infinity-park/internal/config"
	"infinity-park/internal/dto"
	"infinity-park/internal/model"
	"infinity-park/internal/repository"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	ChangePassword(ctx context.Context, sess *auth.Session, req dto.ChangePasswordRequest) error
	EnsureAdmin(ctx context.Context, admin config.Admin) error
}

type authServiceImpl struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	tokens     *auth.Tokens
	bcryptCost int
	validate   *validator.Validate
	now        func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	tokens *auth.Tokens,
	bcryptCost int,
) AuthService {
	return &authServiceImpl{
		db:         db,
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		validate:   validator.New(),
		now:        time.Now,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	switch {
	case username == "":
		return nil, apperr.Validation("username", "required")
	case email == "":
		return nil, apperr.Validation("email", "required")
	case req.Password == "":
		return nil, apperr.Validation("password", "required")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, apperr.Validation("email", "not a valid email address")
	}
	if err := checkNewPassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:      username,
		PasswordHash:  hash,
		RecoveryEmail: email,
		Role:          model.RoleCommon,
		Active:        true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.userRepo.UsernameTaken(ctx, tx, username)
		if err != nil {
			return apperr.Persistence("check username", err)
		}
		if taken {
			return apperr.Conflict("username already taken")
		}

		taken, err = s.userRepo.EmailTaken(ctx, tx, email)
		if err != nil {
			return apperr.Persistence("check email", err)
		}
		if taken {
			return apperr.Conflict("email already registered")
		}

		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("username or email already registered")
			}
			return apperr.Persistence("store user", err)
		}
		return nil
	})
	if err != nil {
		return nil, dbError("commit registration", err)
	}

	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Persistence("find user", err)
	}
	if !user.Active || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperr.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		return nil, apperr.Persistence("stamp last login", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		UserID:    user.ID,
		Role:      string(user.Role),
	}, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, sess *auth.Session, req dto.ChangePasswordRequest) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if req.CurrentPassword == "" {
		return apperr.Validation("current_password", "required")
	}
	if err := checkNewPassword(req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		return dbError("find user", err)
	}
	if !auth.VerifyPassword(user.PasswordHash, req.CurrentPassword) {
		return apperr.Validation("current_password", "incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.UpdatePassword(ctx, tx, user.ID, hash)
	})
	return dbError("update password", err)
}

// EnsureAdmin creates the configured administrator when no user with that
// name exists yet. An existing account is left untouched.
func (s *authServiceImpl) EnsureAdmin(ctx context.Context, admin config.Admin) error {
	_, err := s.userRepo.FindByUsername(ctx, admin.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Persistence("find admin", err)
	}

	hash, err := auth.HashPassword(admin.Password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := s.userRepo.Create(ctx, tx, &model.User{
			Username:      admin.Username,
			PasswordHash:  hash,
			RecoveryEmail: admin.Email,
			Role:          model.RoleAdministrator,
			Active:        true,
		})
		if err != nil {
			return apperr.Persistence("create admin", err)
		}
		return nil
	})
}

func checkNewPassword(password, confirm string) error {
	if len(password) < minPasswordLength {
		return apperr.Validation("password", fmt.Sprintf("must have at least %d characters", minPasswordLength))
	}
	if password != confirm {
		return apperr.Validation("confirm_password", "passwords do not match")
	}
	return nil
}
