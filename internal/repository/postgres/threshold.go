package postgres

import (
	"database/sql"

	"thermobot/internal/domain"

	"github.com/lib/pq"
)

// ThresholdRepo implements repository.ThresholdRepository
type ThresholdRepo struct {
	db *sql.DB
}

// NewThresholdRepo creates a new threshold repository
func NewThresholdRepo(db *sql.DB) *ThresholdRepo {
	return &ThresholdRepo{db: db}
}

// GetThreshold returns the alert band of a device, or nil when none is set
func (r *ThresholdRepo) GetThreshold(group, deviceID string) (*domain.Threshold, error) {
	threshold := &domain.Threshold{Group: group, DeviceID: deviceID}

	query := `
		SELECT min_temp, max_temp, updated_by, updated_at
		FROM thresholds
		WHERE group_name = $1 AND device_id = $2
	`
	err := r.db.QueryRow(query, group, deviceID).
		Scan(&threshold.Min, &threshold.Max, &threshold.UpdatedBy, &threshold.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return threshold, nil
}

// SetThreshold upserts the alert band of one device
func (r *ThresholdRepo) SetThreshold(threshold *domain.Threshold) error {
	query := `
		INSERT INTO thresholds (group_name, device_id, min_temp, max_temp, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (group_name, device_id)
		DO UPDATE SET min_temp = $3, max_temp = $4, updated_by = $5, updated_at = NOW()
	`
	_, err := r.db.Exec(query, threshold.Group, threshold.DeviceID, threshold.Min, threshold.Max, threshold.UpdatedBy)
	return err
}

// SetGroupThresholds applies one band to every device of a group
func (r *ThresholdRepo) SetGroupThresholds(group string, min, max float64, updatedBy int64) error {
	query := `
		UPDATE thresholds
		SET min_temp = $2, max_temp = $3, updated_by = $4, updated_at = NOW()
		WHERE group_name = $1
	`
	_, err := r.db.Exec(query, group, min, max, updatedBy)
	return err
}

// SetGroupsThresholds applies one band to every device of the listed groups
func (r *ThresholdRepo) SetGroupsThresholds(groups []string, min, max float64, updatedBy int64) error {
	query := `
		UPDATE thresholds
		SET min_temp = $2, max_temp = $3, updated_by = $4, updated_at = NOW()
		WHERE group_name = ANY($1)
	`
	_, err := r.db.Exec(query, pq.Array(groups), min, max, updatedBy)
	return err
}

// SetAllThresholds applies one band to every device in the system
func (r *ThresholdRepo) SetAllThresholds(min, max float64, updatedBy int64) error {
	query := `
		UPDATE thresholds
		SET min_temp = $1, max_temp = $2, updated_by = $3, updated_at = NOW()
	`
	_, err := r.db.Exec(query, min, max, updatedBy)
	return err
}
