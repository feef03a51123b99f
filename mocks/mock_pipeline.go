package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"screenguard/internal/domain"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, imagePath string) (string, error) {
	args := m.Called(ctx, imagePath)
	return args.String(0), args.Error(1)
}

// MockRecordExtractor is a mock implementation of port.RecordExtractor.
type MockRecordExtractor struct {
	mock.Mock
}

func (m *MockRecordExtractor) Extract(ctx context.Context, ocrText string) (*domain.ExtractionRecord, error) {
	args := m.Called(ctx, ocrText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionRecord), args.Error(1)
}

// MockSpamClassifier is a mock implementation of port.SpamClassifier.
type MockSpamClassifier struct {
	mock.Mock
}

func (m *MockSpamClassifier) Check(ctx context.Context, text string) domain.DispatchOutcome {
	args := m.Called(ctx, text)
	return args.Get(0).(domain.DispatchOutcome)
}

// MockPhishingClassifier is a mock implementation of port.PhishingClassifier.
type MockPhishingClassifier struct {
	mock.Mock
}

func (m *MockPhishingClassifier) Check(ctx context.Context, url string) domain.DispatchOutcome {
	args := m.Called(ctx, url)
	return args.Get(0).(domain.DispatchOutcome)
}

// MockPipelineService is a mock implementation of service.PipelineService.
type MockPipelineService struct {
	mock.Mock
}

func (m *MockPipelineService) ProcessScreenshot(ctx context.Context, imagePath string) (*domain.PipelineResponse, error) {
	args := m.Called(ctx, imagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineResponse), args.Error(1)
}
