// Package mocks provides mock implementations for testing the dispatch use cases and handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
	"github.com/allisson/dispatcher/internal/queue"
)

// MockQueue is a mock implementation of queue.Queue.
type MockQueue struct {
	mock.Mock
}

// Enqueue mocks the Enqueue method of Queue.
func (m *MockQueue) Enqueue(ctx context.Context, job *domain.DispatchJob) (domain.JobHandle, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(domain.JobHandle), args.Error(1)
}

// Dequeue mocks the Dequeue method of Queue.
func (m *MockQueue) Dequeue(ctx context.Context) (*queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queue.Delivery), args.Error(1)
}

// Close mocks the Close method of Queue.
func (m *MockQueue) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockDispatchRecordRepository is a mock implementation of DispatchRecordRepository.
type MockDispatchRecordRepository struct {
	mock.Mock
}

// Append mocks the Append method of DispatchRecordRepository.
func (m *MockDispatchRecordRepository) Append(ctx context.Context, record *domain.DispatchRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Query mocks the Query method of DispatchRecordRepository.
func (m *MockDispatchRecordRepository) Query(
	ctx context.Context,
	filter domain.RecordFilter,
) ([]*domain.DispatchRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DispatchRecord), args.Error(1)
}

// MockDeliveryGateway is a mock implementation of DeliveryGateway.
type MockDeliveryGateway struct {
	mock.Mock
}

// Send mocks the Send method of DeliveryGateway.
func (m *MockDeliveryGateway) Send(ctx context.Context, recipient, body string) error {
	args := m.Called(ctx, recipient, body)
	return args.Error(0)
}

// MockDispatchUseCase is a mock implementation of DispatchUseCase.
type MockDispatchUseCase struct {
	mock.Mock
}

// Submit mocks the Submit method of DispatchUseCase.
func (m *MockDispatchUseCase) Submit(ctx context.Context, recipient, body string) (domain.JobHandle, error) {
	args := m.Called(ctx, recipient, body)
	return args.Get(0).(domain.JobHandle), args.Error(1)
}

// List mocks the List method of DispatchUseCase.
func (m *MockDispatchUseCase) List(
	ctx context.Context,
	filter domain.RecordFilter,
) ([]*domain.DispatchRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DispatchRecord), args.Error(1)
}

// MockWorkerUseCase is a mock implementation of WorkerUseCase.
type MockWorkerUseCase struct {
	mock.Mock
}

// Start mocks the Start method of WorkerUseCase.
func (m *MockWorkerUseCase) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ProcessJob mocks the ProcessJob method of WorkerUseCase.
func (m *MockWorkerUseCase) ProcessJob(ctx context.Context, job *domain.DispatchJob) domain.DispatchStatus {
	args := m.Called(ctx, job)
	return args.Get(0).(domain.DispatchStatus)
}
