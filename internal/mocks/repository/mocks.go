// Package repository provides testify mocks for the domain repository
// contracts.
package repository

import (
	"context"
	"testing"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func register(t *testing.T, m *mock.Mock) {
	t.Helper()
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockTransactionManager mocks repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock wired to the test lifecycle.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	register(t, &m.Mock)

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

// PassthroughTransactionManager runs the callback against a fixed factory
// without any transaction semantics. Most use case tests want exactly that.
type PassthroughTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (m *PassthroughTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a mock wired to the test lifecycle.
func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	register(t, &m.Mock)

	return m
}

func (m *MockRepositoryFactory) UserRepo() repository.UserRepository {
	return m.Called().Get(0).(repository.UserRepository)
}

func (m *MockRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return m.Called().Get(0).(repository.RefreshTokenRepository)
}

func (m *MockRepositoryFactory) PropertyRepo() repository.PropertyRepository {
	return m.Called().Get(0).(repository.PropertyRepository)
}

func (m *MockRepositoryFactory) LeadRepo() repository.LeadRepository {
	return m.Called().Get(0).(repository.LeadRepository)
}

func (m *MockRepositoryFactory) ApprovalRepo() repository.ApprovalRequestRepository {
	return m.Called().Get(0).(repository.ApprovalRequestRepository)
}

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock wired to the test lifecycle.
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

// MockRefreshTokenRepository mocks repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

// NewMockRefreshTokenRepository creates a mock wired to the test lifecycle.
func NewMockRefreshTokenRepository(t *testing.T) *MockRefreshTokenRepository {
	m := &MockRefreshTokenRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if token, ok := args.Get(0).(*entity.RefreshToken); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepository) ReplaceRefreshToken(ctx context.Context, id uuid.UUID, token *entity.RefreshToken) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockPropertyRepository mocks repository.PropertyRepository.
type MockPropertyRepository struct {
	mock.Mock
}

// NewMockPropertyRepository creates a mock wired to the test lifecycle.
func NewMockPropertyRepository(t *testing.T) *MockPropertyRepository {
	m := &MockPropertyRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *entity.Property) error {
	return m.Called(ctx, property).Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	args := m.Called(ctx, id)
	if property, ok := args.Get(0).(*entity.Property); ok {
		return property, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, page entity.ListPage) ([]*entity.Property, int64, error) {
	args := m.Called(ctx, page)
	if items, ok := args.Get(0).([]*entity.Property); ok {
		return items, args.Get(1).(int64), args.Error(2)
	}

	return nil, 0, args.Error(2)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *entity.Property) error {
	return m.Called(ctx, property).Error(0)
}

func (m *MockPropertyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// MockLeadRepository mocks repository.LeadRepository.
type MockLeadRepository struct {
	mock.Mock
}

// NewMockLeadRepository creates a mock wired to the test lifecycle.
func NewMockLeadRepository(t *testing.T) *MockLeadRepository {
	m := &MockLeadRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if lead, ok := args.Get(0).(*entity.Lead); ok {
		return lead, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, page entity.ListPage) ([]*entity.Lead, int64, error) {
	args := m.Called(ctx, page)
	if items, ok := args.Get(0).([]*entity.Lead); ok {
		return items, args.Get(1).(int64), args.Error(2)
	}

	return nil, 0, args.Error(2)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// MockApprovalRequestRepository mocks repository.ApprovalRequestRepository.
type MockApprovalRequestRepository struct {
	mock.Mock
}

// NewMockApprovalRequestRepository creates a mock wired to the test lifecycle.
func NewMockApprovalRequestRepository(t *testing.T) *MockApprovalRequestRepository {
	m := &MockApprovalRequestRepository{}
	register(t, &m.Mock)

	return m
}

func (m *MockApprovalRequestRepository) Create(ctx context.Context, request *entity.ApprovalRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockApprovalRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ApprovalRequest, error) {
	args := m.Called(ctx, id)
	if request, ok := args.Get(0).(*entity.ApprovalRequest); ok {
		return request, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockApprovalRequestRepository) ListPending(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error) {
	args := m.Called(ctx, kind)
	if requests, ok := args.Get(0).([]*entity.ApprovalRequest); ok {
		return requests, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockApprovalRequestRepository) ListArchive(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error) {
	args := m.Called(ctx, kind)
	if requests, ok := args.Get(0).([]*entity.ApprovalRequest); ok {
		return requests, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockApprovalRequestRepository) Resolve(ctx context.Context, id uuid.UUID, decision entity.ApprovalStatus, decidedBy uuid.UUID) (*entity.ApprovalRequest, error) {
	args := m.Called(ctx, id, decision, decidedBy)
	if request, ok := args.Get(0).(*entity.ApprovalRequest); ok {
		return request, args.Error(1)
	}

	return nil, args.Error(1)
}
