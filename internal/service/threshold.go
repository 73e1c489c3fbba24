package service

import (
	"fmt"

	"thermobot/internal/domain"
	"thermobot/internal/repository"

	"go.uber.org/zap"
)

// Default alert band used before an explicit threshold is set
const (
	DefaultMinTemp = 18.0
	DefaultMaxTemp = 25.0
)

// ThresholdService applies validated threshold pairs and answers reads
// needed for prompt texts.
type ThresholdService struct {
	thresholdRepo repository.ThresholdRepository
	sensorRepo    repository.SensorRepository
	logger        *zap.Logger
}

// NewThresholdService creates a new threshold service
func NewThresholdService(
	thresholdRepo repository.ThresholdRepository,
	sensorRepo repository.SensorRepository,
	logger *zap.Logger,
) *ThresholdService {
	return &ThresholdService{
		thresholdRepo: thresholdRepo,
		sensorRepo:    sensorRepo,
		logger:        logger,
	}
}

// Band returns the current alert band of a device, falling back to the
// system default when none is stored.
func (s *ThresholdService) Band(group, deviceID string) (min, max float64, err error) {
	threshold, err := s.thresholdRepo.GetThreshold(group, deviceID)
	if err != nil {
		return 0, 0, err
	}
	if threshold == nil {
		return DefaultMinTemp, DefaultMaxTemp, nil
	}
	return threshold.Min, threshold.Max, nil
}

// LatestReading returns the most recent measurement of a device, or nil
func (s *ThresholdService) LatestReading(deviceID string) (*domain.SensorReading, error) {
	return s.sensorRepo.LatestReading(deviceID)
}

// Apply persists a validated pair for the scope of a pending request.
// userGroups is consulted only for the all-my-groups scope.
func (s *ThresholdService) Apply(req *domain.ThresholdEditRequest, min, max float64, userGroups []string) error {
	if req == nil {
		return fmt.Errorf("no pending threshold request")
	}

	var err error
	switch req.Op {
	case domain.OpSingleDevice:
		err = s.thresholdRepo.SetThreshold(&domain.Threshold{
			Group:     req.GroupKey,
			DeviceID:  req.DeviceKey,
			Min:       min,
			Max:       max,
			UpdatedBy: req.UserID,
		})
	case domain.OpWholeGroup:
		err = s.thresholdRepo.SetGroupThresholds(req.GroupKey, min, max, req.UserID)
	case domain.OpAllUserGroups:
		if len(userGroups) == 0 {
			return fmt.Errorf("user has no accessible groups")
		}
		err = s.thresholdRepo.SetGroupsThresholds(userGroups, min, max, req.UserID)
	case domain.OpAllSystem:
		err = s.thresholdRepo.SetAllThresholds(min, max, req.UserID)
	default:
		return fmt.Errorf("unknown threshold operation %q", req.Op)
	}
	if err != nil {
		return fmt.Errorf("apply thresholds: %w", err)
	}

	s.logger.Info("Thresholds updated",
		zap.Int64("user_id", req.UserID),
		zap.String("op", string(req.Op)),
		zap.String("group", req.GroupKey),
		zap.String("device", req.DeviceKey),
		zap.Float64("min", min),
		zap.Float64("max", max),
	)

	return nil
}
