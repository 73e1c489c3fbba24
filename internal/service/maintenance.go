package service

import (
	"thermobot/internal/repository"

	"go.uber.org/zap"
)

// Sweeper is any state store able to evict its expired entries
type Sweeper interface {
	SweepExpired() int
}

// MaintenanceService runs the periodic hygiene tasks: sweeping expired
// conversational state and trimming old sensor readings. Correctness never
// depends on it, reads are self-expiring.
type MaintenanceService struct {
	sweepers   map[string]Sweeper
	sensorRepo repository.SensorRepository
	logger     *zap.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(sweepers map[string]Sweeper, sensorRepo repository.SensorRepository, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		sweepers:   sweepers,
		sensorRepo: sensorRepo,
		logger:     logger,
	}
}

// SweepStates evicts expired entries from every registered store and
// returns the total removed count.
func (s *MaintenanceService) SweepStates() int {
	total := 0
	for name, sweeper := range s.sweepers {
		if removed := sweeper.SweepExpired(); removed > 0 {
			s.logger.Info("Swept expired state",
				zap.String("store", name),
				zap.Int("removed", removed),
			)
			total += removed
		}
	}
	return total
}

// CleanupOldReadings removes sensor measurements older than 30 days
func (s *MaintenanceService) CleanupOldReadings() error {
	const retentionDays = 30

	if err := s.sensorRepo.CleanOldReadings(retentionDays); err != nil {
		s.logger.Error("Failed to clean old readings", zap.Error(err))
		return err
	}
	return nil
}
