package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"lifelink-registry/internal/adapters/persistence/models"
	"lifelink-registry/internal/adapters/persistence/repositories"
	"lifelink-registry/internal/config"
	"lifelink-registry/internal/pkg/agecalc"
	"lifelink-registry/internal/pkg/jwt"
	"lifelink-registry/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrRegistrantNotFound = errors.New("registrant not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrPasswordMismatch   = errors.New("passwords did not match")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidDateOfBirth = errors.New("invalid date of birth")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
)

// AuthService handles registration and authentication business logic
type AuthService struct {
	registrantRepo   repositories.RegistrantRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	registrantRepo repositories.RegistrantRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		registrantRepo:   registrantRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	DateOfBirth     string `json:"date_of_birth" validate:"required"`
	BloodGroup      string `json:"blood_group" validate:"required"`
	Gender          string `json:"gender"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	ZipCode         string `json:"zip_code"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Registrant   *models.RegistrantResponse `json:"registrant"`
	AccessToken  string                     `json:"access_token"`
	RefreshToken string                     `json:"refresh_token"`
}

// Register registers a new registrant
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Password confirmation must match
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	// 2. Derive age from date of birth
	dob, err := agecalc.ParseDOB(input.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateOfBirth
	}
	age := agecalc.Age(dob)
	if age < 0 {
		return nil, ErrInvalidDateOfBirth
	}

	// 3. Check if email already exists
	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.registrantRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 4. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create registrant
	registrant := &models.Registrant{
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Age:        age,
		BloodGroup: strings.ToUpper(strings.TrimSpace(input.BloodGroup)),
		Gender:     input.Gender,
		Email:      email,
		Password:   hashedPassword,
		Phone:      input.Phone,
		Address:    input.Address,
		ZipCode:    input.ZipCode,
		Role:       models.RoleUser,
	}

	if err := s.registrantRepo.Create(ctx, registrant); err != nil {
		// The unique index is the last line of defense against a racing
		// duplicate registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	// 6. Generate tokens
	tokens, err := s.generateTokens(registrant)
	if err != nil {
		return nil, err
	}

	// 7. Store refresh token
	if err := s.storeRefreshToken(ctx, registrant.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Registrant created: %s (blood group %s)", registrant.Email, registrant.BloodGroup)

	return &AuthResponse{
		Registrant:   registrant.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login authenticates a registrant by email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	registrant, err := s.registrantRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, registrant.Password) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokens(registrant)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, registrant.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Registrant logged in: %s", registrant.Email)

	return &AuthResponse{
		Registrant:   registrant.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken refreshes the access token using refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Hash the token to find in DB
	tokenHash := password.HashToken(refreshToken)

	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	registrant, err := s.registrantRepo.GetByID(ctx, claims.RegistrantID)
	if err != nil {
		return nil, ErrRegistrantNotFound
	}

	// Revoke old refresh token (token rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(registrant)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, registrant.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Registrant:   registrant.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	return s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash)
}

// LogoutAll revokes all refresh tokens for a registrant
func (s *AuthService) LogoutAll(ctx context.Context, registrantID uint) error {
	return s.refreshTokenRepo.RevokeAllByRegistrantID(ctx, registrantID)
}

// GetRegistrantByID gets a registrant by ID
func (s *AuthService) GetRegistrantByID(ctx context.Context, registrantID uint) (*models.Registrant, error) {
	registrant, err := s.registrantRepo.GetByID(ctx, registrantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrantNotFound
		}
		return nil, err
	}
	return registrant, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(registrant *models.Registrant) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		registrant.ID,
		registrant.Email,
		registrant.BloodGroup,
		registrant.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		registrant.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, registrantID uint, refreshToken string) error {
	token := &models.RefreshToken{
		RegistrantID: registrantID,
		TokenHash:    password.HashToken(refreshToken),
		ExpiresAt:    jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
