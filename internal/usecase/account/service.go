package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ed1sonDont/fitconomy/internal/domain"
	"github.com/Ed1sonDont/fitconomy/internal/usecase/valuation"
)

// ErrWeakPassword is returned when a registration password is too short.
var ErrWeakPassword = errors.New("password must be at least 8 characters")

const minPasswordLength = 8

// TokenConfig carries the JWT signing parameters.
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// RegisterInput represents the input for creating an account
type RegisterInput struct {
	Email              string
	Password           string
	Username           string
	Region             string
	GoalWeightKG       *decimal.Decimal
	DailyCalorieTarget int
}

// UpdateProfileInput represents a partial profile update.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	Username           *string
	Region             *string
	GoalWeightKG       *decimal.Decimal
	DailyCalorieTarget *int
}

// AccountService handles registration, authentication and profiles
type AccountService struct {
	Users  domain.UserRepository
	Engine *valuation.Engine
	UoW    domain.UnitOfWork
	Token  TokenConfig
}

// NewAccountService creates a new AccountService instance
func NewAccountService(users domain.UserRepository, engine *valuation.Engine, uow domain.UnitOfWork, token TokenConfig) *AccountService {
	return &AccountService{
		Users:  users,
		Engine: engine,
		UoW:    uow,
		Token:  token,
	}
}

// Register creates a user and seeds their asset history with the initial
// snapshot in the same unit of work, so no account ever exists without
// its valuation seed.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	target := input.DailyCalorieTarget
	if target == 0 {
		target = domain.DefaultDailyCalorieTarget
	}

	user := &domain.User{
		ID:                 uuid.New(),
		Email:              strings.ToLower(strings.TrimSpace(input.Email)),
		HashedPassword:     string(hashed),
		Username:           strings.TrimSpace(input.Username),
		Region:             input.Region,
		GoalWeightKG:       input.GoalWeightKG,
		DailyCalorieTarget: target,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	err = s.UoW.Do(ctx, func(ctx context.Context) error {
		if err := s.Users.Create(ctx, user); err != nil {
			return err
		}

		_, err := s.Engine.SeedInitial(ctx, user.ID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns a signed bearer token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Profile returns the user's account details.
func (s *AccountService) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.Users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update to the user's profile.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.Region != nil {
		user.Region = *input.Region
	}
	if input.GoalWeightKG != nil {
		user.GoalWeightKG = input.GoalWeightKG
	}
	if input.DailyCalorieTarget != nil {
		user.DailyCalorieTarget = *input.DailyCalorieTarget
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.Users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// issueToken signs an HS256 JWT for the user.
func (s *AccountService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		Issuer:    s.Token.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.Token.TTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.Token.Secret))
}
