package testutil

import (
	"thermobot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockAdminRepository is a mock for AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) GetAdmin(chatID int64) (*domain.Admin, error) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *MockAdminRepository) SaveAdmin(admin *domain.Admin) error {
	args := m.Called(admin)
	return args.Error(0)
}

func (m *MockAdminRepository) ListAdmins() ([]domain.Admin, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Admin), args.Error(1)
}

func (m *MockAdminRepository) RemoveAdmin(chatID int64) error {
	args := m.Called(chatID)
	return args.Error(0)
}

// MockThresholdRepository is a mock for ThresholdRepository
type MockThresholdRepository struct {
	mock.Mock
}

func (m *MockThresholdRepository) GetThreshold(group, deviceID string) (*domain.Threshold, error) {
	args := m.Called(group, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Threshold), args.Error(1)
}

func (m *MockThresholdRepository) SetThreshold(threshold *domain.Threshold) error {
	args := m.Called(threshold)
	return args.Error(0)
}

func (m *MockThresholdRepository) SetGroupThresholds(group string, min, max float64, updatedBy int64) error {
	args := m.Called(group, min, max, updatedBy)
	return args.Error(0)
}

func (m *MockThresholdRepository) SetGroupsThresholds(groups []string, min, max float64, updatedBy int64) error {
	args := m.Called(groups, min, max, updatedBy)
	return args.Error(0)
}

func (m *MockThresholdRepository) SetAllThresholds(min, max float64, updatedBy int64) error {
	args := m.Called(min, max, updatedBy)
	return args.Error(0)
}

// MockSensorRepository is a mock for SensorRepository
type MockSensorRepository struct {
	mock.Mock
}

func (m *MockSensorRepository) AllGroups() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSensorRepository) GroupDevices(group string) ([]string, error) {
	args := m.Called(group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSensorRepository) LatestReading(deviceID string) (*domain.SensorReading, error) {
	args := m.Called(deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SensorReading), args.Error(1)
}

func (m *MockSensorRepository) CleanOldReadings(days int) error {
	args := m.Called(days)
	return args.Error(0)
}
