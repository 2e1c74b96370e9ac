package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/validation"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

type adminRepository interface {
	Insert(ctx context.Context, admin *models.Admin) error
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// AuthConfig defines configuration for admin authentication.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
	SetupKey   string
}

// AuthService provides admin authentication use-cases.
type AuthService struct {
	repo   adminRepository
	logger *zap.Logger
	config AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo adminRepository, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Expiration <= 0 {
		config.Expiration = 168 * time.Hour
	}
	return &AuthService{repo: repo, logger: logger, config: config}
}

// Setup bootstraps the first admin account. It only succeeds while the
// store holds no admins and the caller presents the configured setup key.
func (s *AuthService) Setup(ctx context.Context, req models.SetupRequest) (*models.LoginResponse, error) {
	if s.config.SetupKey == "" || req.SetupKey != s.config.SetupKey {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid setup key")
	}
	if details := validation.Setup(req); len(details) > 0 {
		return nil, appErrors.Validation(details)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	if count > 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, "setup has already been completed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	admin := &models.Admin{
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := s.repo.Insert(ctx, admin); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("initial admin created", zap.String("email", admin.Email))

	return s.issue(admin)
}

// Login authenticates an admin and returns an issued token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, appErrors.Validation([]string{"Email is required", "Password is required"})
	}

	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.FromError(err)
	}

	if !admin.IsActive {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	if err := s.repo.UpdateLastLogin(ctx, admin.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("last login not recorded", zap.String("id", admin.ID), zap.Error(err))
	}

	return s.issue(admin)
}

// Verify parses a bearer token and returns the active admin it names.
func (s *AuthService) Verify(ctx context.Context, tokenValue string) (*models.Admin, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}

	admin, err := s.repo.FindByID(ctx, claims.AdminID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "account no longer exists")
		}
		return nil, appErrors.FromError(err)
	}
	if !admin.IsActive {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "")
	}
	return admin, nil
}

func (s *AuthService) issue(admin *models.Admin) (*models.LoginResponse, error) {
	now := time.Now().UTC()
	claims := models.JWTClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.config.Expiration.Seconds()),
		Admin: models.AdminInfo{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
			Role:  admin.Role,
		},
	}, nil
}
