package testutil

import (
	"time"

	"thermobot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestAdmin creates a registered admin fixture
func NewTestAdmin(chatID int64, groups ...string) *domain.Admin {
	return &domain.Admin{
		ChatID:       chatID,
		FullName:     "Иванов Иван Иванович",
		Position:     "Менеджер",
		Role:         domain.RoleAdmin,
		Groups:       groups,
		RegisteredAt: time.Now(),
	}
}

// NewTestBigBoss creates a big boss fixture
func NewTestBigBoss(chatID int64) *domain.Admin {
	admin := NewTestAdmin(chatID)
	admin.Role = domain.RoleBigBoss
	admin.Position = "Директор"
	return admin
}

// NewTestThreshold creates a threshold fixture
func NewTestThreshold(group, deviceID string, min, max float64) *domain.Threshold {
	return &domain.Threshold{
		Group:     group,
		DeviceID:  deviceID,
		Min:       min,
		Max:       max,
		UpdatedBy: 1,
		UpdatedAt: time.Now(),
	}
}

// NewTestReading creates a sensor reading fixture
func NewTestReading(deviceID, group string, temperature float64) *domain.SensorReading {
	return &domain.SensorReading{
		DeviceID:    deviceID,
		Group:       group,
		Temperature: temperature,
		MeasuredAt:  time.Now(),
	}
}
