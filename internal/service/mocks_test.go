package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/anuragkar/scambait/internal/domain"
	"github.com/anuragkar/scambait/internal/llm"
)

// MockSessionStore mocks the domain.SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionStore) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSessionStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockReportArchive mocks the domain.ReportArchive interface
type MockReportArchive struct {
	mock.Mock
}

func (m *MockReportArchive) Record(ctx context.Context, report *domain.Report, outcome domain.DeliveryOutcome) error {
	args := m.Called(ctx, report, outcome)
	return args.Error(0)
}

func (m *MockReportArchive) List(ctx context.Context, limit int) ([]domain.ArchivedReport, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArchivedReport), args.Error(1)
}

// MockLLMProvider mocks llm.Provider
type MockLLMProvider struct {
	mock.Mock
}

func (m *MockLLMProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLLMProvider) AvailableModels() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockLLMProvider) DefaultModel() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLLMProvider) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockLLMProvider) Complete(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	args := m.Called(ctx, req, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}

// MockVisionProvider mocks llm.VisionProvider
type MockVisionProvider struct {
	MockLLMProvider
}

func (m *MockVisionProvider) DescribeImage(ctx context.Context, req llm.VisionRequest, model string) (*llm.Response, error) {
	args := m.Called(ctx, req, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}
