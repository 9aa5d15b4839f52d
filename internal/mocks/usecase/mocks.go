// Package usecase provides testify mocks for the usecase contracts, used by
// delivery-layer tests.
package usecase

import (
	"context"
	"testing"

	"backoffice/internal/domain/entity"
	"backoffice/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func register(t *testing.T, m *mock.Mock) {
	t.Helper()
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockAuthUsecase mocks usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

// NewMockAuthUsecase creates a mock wired to the test lifecycle.
func NewMockAuthUsecase(t *testing.T) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockAuthUsecase) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.RegisterOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.LoginOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.RefreshOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthUsecase) LogoutAllDevices(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthUsecase) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockListingUsecase mocks usecase.ListingUsecase.
type MockListingUsecase struct {
	mock.Mock
}

// NewMockListingUsecase creates a mock wired to the test lifecycle.
func NewMockListingUsecase(t *testing.T) *MockListingUsecase {
	m := &MockListingUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockListingUsecase) CreateProperty(ctx context.Context, input *usecase.CreatePropertyInput) (*entity.Property, error) {
	args := m.Called(ctx, input)
	if property, ok := args.Get(0).(*entity.Property); ok {
		return property, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingUsecase) GetProperty(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	args := m.Called(ctx, id)
	if property, ok := args.Get(0).(*entity.Property); ok {
		return property, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingUsecase) ListProperties(ctx context.Context, input *usecase.ListInput) (*usecase.PropertyListOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.PropertyListOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingUsecase) UpdateProperty(ctx context.Context, input *usecase.UpdatePropertyInput) (*entity.Property, error) {
	args := m.Called(ctx, input)
	if property, ok := args.Get(0).(*entity.Property); ok {
		return property, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingUsecase) CreateLead(ctx context.Context, input *usecase.CreateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, input)
	if lead, ok := args.Get(0).(*entity.Lead); ok {
		return lead, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingUsecase) GetLead(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if lead, ok := args.Get(0).(*entity.Lead); ok {
		return lead, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingUsecase) ListLeads(ctx context.Context, input *usecase.ListInput) (*usecase.LeadListOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.LeadListOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingUsecase) UpdateLead(ctx context.Context, input *usecase.UpdateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, input)
	if lead, ok := args.Get(0).(*entity.Lead); ok {
		return lead, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockListingUsecase) Share(ctx context.Context, kind entity.EntityKind, id uuid.UUID) (*usecase.ShareOutput, error) {
	args := m.Called(ctx, kind, id)
	if output, ok := args.Get(0).(*usecase.ShareOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockApprovalUsecase mocks usecase.ApprovalUsecase.
type MockApprovalUsecase struct {
	mock.Mock
}

// NewMockApprovalUsecase creates a mock wired to the test lifecycle.
func NewMockApprovalUsecase(t *testing.T) *MockApprovalUsecase {
	m := &MockApprovalUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockApprovalUsecase) ChangeStatus(ctx context.Context, input *usecase.ChangeStatusInput) (*usecase.ChangeStatusOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.ChangeStatusOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockApprovalUsecase) ListPending(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error) {
	args := m.Called(ctx, kind)
	if requests, ok := args.Get(0).([]*entity.ApprovalRequest); ok {
		return requests, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockApprovalUsecase) ListArchive(ctx context.Context, kind entity.EntityKind) ([]*entity.ApprovalRequest, error) {
	args := m.Called(ctx, kind)
	if requests, ok := args.Get(0).([]*entity.ApprovalRequest); ok {
		return requests, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockApprovalUsecase) Approve(ctx context.Context, input *usecase.DecideInput) (*entity.ApprovalRequest, error) {
	args := m.Called(ctx, input)
	if request, ok := args.Get(0).(*entity.ApprovalRequest); ok {
		return request, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockApprovalUsecase) Reject(ctx context.Context, input *usecase.DecideInput) (*entity.ApprovalRequest, error) {
	args := m.Called(ctx, input)
	if request, ok := args.Get(0).(*entity.ApprovalRequest); ok {
		return request, args.Error(1)
	}

	return nil, args.Error(1)
}
