//	mockgen -source=internal/usecase/interfaces.go -destination=internal/usecase/mocks/mock_services.go -package=mocks ComplianceService,FeeService,PaymentGateway
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	domain "github.com/sproutfi/stash/internal/domain"
	usecase "github.com/sproutfi/stash/internal/usecase"
)

// MockComplianceService is a mock of ComplianceService interface.
type MockComplianceService struct {
	ctrl     *gomock.Controller
	recorder *MockComplianceServiceMockRecorder
	isgomock struct{}
}

// MockComplianceServiceMockRecorder is the mock recorder for MockComplianceService.
type MockComplianceServiceMockRecorder struct {
	mock *MockComplianceService
}

// NewMockComplianceService creates a new mock instance.
func NewMockComplianceService(ctrl *gomock.Controller) *MockComplianceService {
	mock := &MockComplianceService{ctrl: ctrl}
	mock.recorder = &MockComplianceServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockComplianceService) EXPECT() *MockComplianceServiceMockRecorder {
	return m.recorder
}

// CheckCompliance mocks base method.
func (m *MockComplianceService) CheckCompliance(ctx context.Context, userID string, amount domain.Money) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CheckCompliance", ctx, userID, amount)
	ret0, _ := ret[0].(error)
	return ret0
}

// CheckCompliance indicates an expected call of CheckCompliance.
func (mr *MockComplianceServiceMockRecorder) CheckCompliance(ctx, userID, amount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CheckCompliance", reflect.TypeOf((*MockComplianceService)(nil).CheckCompliance), ctx, userID, amount)
}

// GetTaxWarning mocks base method.
func (m *MockComplianceService) GetTaxWarning(ctx context.Context, amount domain.Money) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTaxWarning", ctx, amount)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetTaxWarning indicates an expected call of GetTaxWarning.
func (mr *MockComplianceServiceMockRecorder) GetTaxWarning(ctx, amount any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTaxWarning", reflect.TypeOf((*MockComplianceService)(nil).GetTaxWarning), ctx, amount)
}

// MockFeeService is a mock of FeeService interface.
type MockFeeService struct {
	ctrl     *gomock.Controller
	recorder *MockFeeServiceMockRecorder
	isgomock struct{}
}

// MockFeeServiceMockRecorder is the mock recorder for MockFeeService.
type MockFeeServiceMockRecorder struct {
	mock *MockFeeService
}

// NewMockFeeService creates a new mock instance.
func NewMockFeeService(ctrl *gomock.Controller) *MockFeeService {
	mock := &MockFeeService{ctrl: ctrl}
	mock.recorder = &MockFeeServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockFeeService) EXPECT() *MockFeeServiceMockRecorder {
	return m.recorder
}

// CalculateFees mocks base method.
func (m *MockFeeService) CalculateFees(ctx context.Context, amount domain.Money, destination domain.WithdrawalDestination, tier domain.KYCTier) (domain.Money, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CalculateFees", ctx, amount, destination, tier)
	ret0, _ := ret[0].(domain.Money)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CalculateFees indicates an expected call of CalculateFees.
func (mr *MockFeeServiceMockRecorder) CalculateFees(ctx, amount, destination, tier any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CalculateFees", reflect.TypeOf((*MockFeeService)(nil).CalculateFees), ctx, amount, destination, tier)
}

// MockPaymentGateway is a mock of PaymentGateway interface.
type MockPaymentGateway struct {
	ctrl     *gomock.Controller
	recorder *MockPaymentGatewayMockRecorder
	isgomock struct{}
}

// MockPaymentGatewayMockRecorder is the mock recorder for MockPaymentGateway.
type MockPaymentGatewayMockRecorder struct {
	mock *MockPaymentGateway
}

// NewMockPaymentGateway creates a new mock instance.
func NewMockPaymentGateway(ctrl *gomock.Controller) *MockPaymentGateway {
	mock := &MockPaymentGateway{ctrl: ctrl}
	mock.recorder = &MockPaymentGatewayMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPaymentGateway) EXPECT() *MockPaymentGatewayMockRecorder {
	return m.recorder
}

// ProcessPayment mocks base method.
func (m *MockPaymentGateway) ProcessPayment(ctx context.Context, input usecase.ProcessPaymentInput) (*usecase.PaymentResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ProcessPayment", ctx, input)
	ret0, _ := ret[0].(*usecase.PaymentResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ProcessPayment indicates an expected call of ProcessPayment.
func (mr *MockPaymentGatewayMockRecorder) ProcessPayment(ctx, input any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ProcessPayment", reflect.TypeOf((*MockPaymentGateway)(nil).ProcessPayment), ctx, input)
}
