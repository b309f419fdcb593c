package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cmsadmin/internal/domain"
	m "cmsadmin/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memStore struct {
	ops []m.Operator
}

func (s *memStore) FindByLogin(_ context.Context, login string) (m.Operator, error) {
	for _, o := range s.ops {
		if o.Email == login || o.Username == login {
			return o, nil
		}
	}
	return m.Operator{}, domain.NotFoundError{Resource: "operator"}
}

func (s *memStore) Exists(_ context.Context, email, username string) (bool, error) {
	for _, o := range s.ops {
		if o.Email == email || o.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) Create(_ context.Context, o m.Operator) (m.Operator, error) {
	o.ID = int64(len(s.ops) + 1)
	s.ops = append(s.ops, o)
	return o, nil
}

func TestAuthServiceRegisterLoginParse(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := AuthService{Store: &memStore{}, Secret: []byte("secret"), TTL: time.Hour, Now: func() time.Time { return now }}

	pub, err := svc.Register(context.Background(), "Lan", "lan", "lan@example.com", "password1", "")
	require.NoError(t, err)
	assert.Equal(t, m.RoleEditor, pub.Role)

	token, who, err := svc.Login(context.Background(), "lan@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, pub.ID, who.ID)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, pub.ID, claims.UserID)
	assert.Equal(t, m.RoleEditor, claims.Role)

	svc.Now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthServiceRejectsBadCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	store := &memStore{ops: []m.Operator{
		{ID: 1, Username: "lan", Email: "lan@example.com", PasswordHash: string(hash), Role: m.RoleAdmin, Status: m.StatusActive},
		{ID: 2, Username: "off", Email: "off@example.com", PasswordHash: string(hash), Role: m.RoleAdmin, Status: "disabled"},
	}}
	svc := AuthService{Store: store, Secret: []byte("secret")}

	_, _, err = svc.Login(context.Background(), "lan", "wrong")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	_, _, err = svc.Login(context.Background(), "nobody", "password1")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	_, _, err = svc.Login(context.Background(), "off", "password1")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	_, _, err = svc.Login(context.Background(), "", "")
	assert.True(t, domain.IsValidation(err))
}

func TestAuthServiceRegisterConflict(t *testing.T) {
	svc := AuthService{Store: &memStore{ops: []m.Operator{{ID: 1, Username: "lan", Email: "lan@example.com"}}}, Secret: []byte("s")}
	_, err := svc.Register(context.Background(), "Lan", "lan", "other@example.com", "password1", m.RoleAdmin)
	assert.True(t, domain.IsConflict(err))

	_, err = svc.Register(context.Background(), "X", "x", "x@example.com", "short", "")
	assert.True(t, domain.IsValidation(err))
	_, err = svc.Register(context.Background(), "X", "x", "x@example.com", "password1", "root")
	assert.True(t, domain.IsValidation(err))
}
