package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/core/domain"
	"staffhub/internal/pkg/jwt"
	"staffhub/internal/pkg/partition"
	"staffhub/internal/pkg/password"
)

// Auth errors
var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminAlreadyExists = errors.New("admin already exists")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWrongResetPassword = errors.New("reset password does not match")
)

var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,}$`)

// AuthService handles admin authentication and the bootstrap/reset flows
type AuthService struct {
	adminRepo    repositories.AdminRepository
	employeeRepo repositories.EmployeeRepository
	cfg          *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	adminRepo repositories.AdminRepository,
	employeeRepo repositories.EmployeeRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		adminRepo:    adminRepo,
		employeeRepo: employeeRepo,
		cfg:          cfg,
	}
}

// RegisterResult represents a successful registration
type RegisterResult struct {
	Admin     *models.AdminResponse `json:"admin"`
	Partition string                `json:"partition"`
}

// LoginResult represents a successful login
type LoginResult struct {
	Admin *models.AdminResponse `json:"admin"`
	Token string                `json:"-"`
}

// Register creates a new admin and its employee partition
func (s *AuthService) Register(ctx context.Context, email, plainPassword string) (*RegisterResult, error) {
	email = NormalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	hashed, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Email:    email,
		Password: hashed,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, ErrAdminAlreadyExists
		}
		return nil, err
	}

	if err := s.employeeRepo.EnsurePartition(ctx, admin.ID); err != nil {
		return nil, err
	}

	partitionName := partition.TableName(admin.ID)
	log.Printf("📁 New partition created: %s", partitionName)

	return &RegisterResult{
		Admin:     admin.ToResponse(),
		Partition: partitionName,
	}, nil
}

// Login authenticates an admin and issues a session token
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	if !password.Verify(plainPassword, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateSessionToken(admin.ID, admin.Email, s.cfg.JWT.Secret, s.cfg.JWT.SessionTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Admin: admin.ToResponse(),
		Token: token,
	}, nil
}

// AdminExists reports whether any admin is registered. While false, the
// registration endpoint is open: this is the one-time bootstrap exception.
func (s *AuthService) AdminExists(ctx context.Context) (bool, error) {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ResetAccess implements the check-password flow: if the supplied
// password equals the configured master password or matches any existing
// admin's password, every admin is deleted and a signup token is issued.
//
// This is a deliberate low-security bootstrap/reset mechanism gated only
// by knowledge of a valid password, not a production access-control
// boundary. Deleting all admins intentionally re-opens the bootstrap
// exception; the signup token just lets the client register without
// racing for it.
func (s *AuthService) ResetAccess(ctx context.Context, plainPassword string) (string, error) {
	if !s.resetPasswordMatches(ctx, plainPassword) {
		return "", ErrWrongResetPassword
	}

	if err := s.adminRepo.DeleteAll(ctx); err != nil {
		return "", err
	}
	log.Println("🧹 All admins deleted by reset flow")

	return jwt.GenerateSignupToken(s.cfg.JWT.Secret, s.cfg.JWT.SignupTTL)
}

func (s *AuthService) resetPasswordMatches(ctx context.Context, plainPassword string) bool {
	if s.cfg.MasterPassword != "" && plainPassword == s.cfg.MasterPassword {
		return true
	}

	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return false
	}
	for _, admin := range admins {
		if password.Verify(plainPassword, admin.Password) {
			return true
		}
	}
	return false
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
