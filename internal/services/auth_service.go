package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cmsadmin/internal/domain"
	"cmsadmin/internal/domain/models"
	"cmsadmin/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// OperatorStore is the account storage AuthService needs.
// repositories.OperatorRepository satisfies it.
type OperatorStore interface {
	FindByLogin(ctx context.Context, login string) (models.Operator, error)
	Exists(ctx context.Context, email, username string) (bool, error)
	Create(ctx context.Context, o models.Operator) (models.Operator, error)
}

// Claims are the JWT claims issued to operators.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService logs operators in and verifies their tokens.
type AuthService struct {
	Store     OperatorStore
	Secret    []byte
	TTL       time.Duration
	RequestID string
	Now       func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 24 * time.Hour
}

// Login checks the password of the operator addressed by email or username
// and issues a signed token.
func (s AuthService) Login(ctx context.Context, login, password string) (string, models.PublicOperator, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return "", models.PublicOperator{}, domain.ValidationError{Field: "login", Msg: "login and password are required"}
	}
	op, err := s.Store.FindByLogin(ctx, login)
	if domain.IsNotFound(err) {
		return "", models.PublicOperator{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", models.PublicOperator{}, err
	}
	if op.Status != models.StatusActive {
		return "", models.PublicOperator{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", models.PublicOperator{}, domain.ErrInvalidCredentials
	}

	token, err := s.Issue(op)
	if err != nil {
		return "", models.PublicOperator{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("operator_id=%d", op.ID))
	return token, op.ToPublic(), nil
}

// Issue signs an HS256 token for op.
func (s AuthService) Issue(op models.Operator) (string, error) {
	if len(s.Secret) == 0 {
		return "", domain.InternalError{Msg: "jwt secret is not configured"}
	}
	now := s.now()
	claims := Claims{
		UserID: op.ID,
		Role:   op.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   op.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", domain.InternalError{Msg: "could not sign token", Err: err}
	}
	return signed, nil
}

// ErrInvalidToken is returned for malformed, expired or foreign tokens.
var ErrInvalidToken = errors.New("invalid token")

// Parse verifies token and returns its claims.
func (s AuthService) Parse(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Register creates an operator account with a bcrypt password hash.
func (s AuthService) Register(ctx context.Context, name, username, email, password, role string) (models.PublicOperator, error) {
	name, username, email = strings.TrimSpace(name), strings.TrimSpace(username), strings.TrimSpace(email)
	switch {
	case username == "":
		return models.PublicOperator{}, domain.ValidationError{Field: "username", Msg: "username is required"}
	case email == "":
		return models.PublicOperator{}, domain.ValidationError{Field: "email", Msg: "email is required"}
	case len(password) < 8:
		return models.PublicOperator{}, domain.ValidationError{Field: "password", Msg: "password must be at least 8 characters"}
	}
	if role == "" {
		role = models.RoleEditor
	}
	if role != models.RoleAdmin && role != models.RoleEditor {
		return models.PublicOperator{}, domain.ValidationError{Field: "role", Msg: "role must be admin or editor"}
	}

	exists, err := s.Store.Exists(ctx, email, username)
	if err != nil {
		return models.PublicOperator{}, err
	}
	if exists {
		return models.PublicOperator{}, domain.ConflictError{Resource: "operator", Msg: "email or username already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.PublicOperator{}, domain.InternalError{Msg: "could not hash password", Err: err}
	}
	now := s.now()
	op, err := s.Store.Create(ctx, models.Operator{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return models.PublicOperator{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("operator_id=%d role=%s", op.ID, op.Role))
	return op.ToPublic(), nil
}
