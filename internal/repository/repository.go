package repository

import (
	"thermobot/internal/domain"
)

// AdminRepository defines registered-employee data operations
type AdminRepository interface {
	GetAdmin(chatID int64) (*domain.Admin, error)
	SaveAdmin(admin *domain.Admin) error
	ListAdmins() ([]domain.Admin, error)
	RemoveAdmin(chatID int64) error
}

// ThresholdRepository defines temperature alert band operations
type ThresholdRepository interface {
	GetThreshold(group, deviceID string) (*domain.Threshold, error)
	SetThreshold(threshold *domain.Threshold) error
	SetGroupThresholds(group string, min, max float64, updatedBy int64) error
	SetGroupsThresholds(groups []string, min, max float64, updatedBy int64) error
	SetAllThresholds(min, max float64, updatedBy int64) error
}

// SensorRepository defines sensor topology and measurement reads
type SensorRepository interface {
	AllGroups() ([]string, error)
	GroupDevices(group string) ([]string, error)
	LatestReading(deviceID string) (*domain.SensorReading, error)
	CleanOldReadings(days int) error
}
