// Package service provides testify mocks for the domain service contracts.
package service

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func register(t *testing.T, m *mock.Mock) {
	t.Helper()
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock wired to the test lifecycle.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	register(t, &m.Mock)

	return m
}

func (m *MockTokenService) GenerateTokens(userID uuid.UUID, role string) (string, string, error) {
	args := m.Called(userID, role)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) HashToken(token string) string {
	return m.Called(token).String(0)
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock wired to the test lifecycle.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	register(t, &m.Mock)

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(hashedPassword, password string) error {
	return m.Called(hashedPassword, password).Error(0)
}

// MockEventPublisher mocks service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock wired to the test lifecycle.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	register(t, &m.Mock)

	return m
}

func (m *MockEventPublisher) PublishApprovalDecided(ctx context.Context, event *service.ApprovalDecidedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockShareService mocks service.ShareService.
type MockShareService struct {
	mock.Mock
}

// NewMockShareService creates a mock wired to the test lifecycle.
func NewMockShareService(t *testing.T) *MockShareService {
	m := &MockShareService{}
	register(t, &m.Mock)

	return m
}

func (m *MockShareService) ShareURL(kind entity.EntityKind, id uuid.UUID) string {
	return m.Called(kind, id).String(0)
}

func (m *MockShareService) GenerateShareQR(kind entity.EntityKind, id uuid.UUID) ([]byte, error) {
	args := m.Called(kind, id)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}
