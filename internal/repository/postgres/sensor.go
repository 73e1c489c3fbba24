package postgres

import (
	"database/sql"

	"thermobot/internal/domain"
)

// SensorRepo implements repository.SensorRepository
type SensorRepo struct {
	db *sql.DB
}

// NewSensorRepo creates a new sensor repository
func NewSensorRepo(db *sql.DB) *SensorRepo {
	return &SensorRepo{db: db}
}

// AllGroups returns every group known to the monitoring system
func (r *SensorRepo) AllGroups() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT group_name FROM sensor_readings ORDER BY group_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var group string
		if err := rows.Scan(&group); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// GroupDevices returns the sensor ids of a group
func (r *SensorRepo) GroupDevices(group string) ([]string, error) {
	rows, err := r.db.Query(
		`SELECT DISTINCT device_id FROM sensor_readings WHERE group_name = $1 ORDER BY device_id`,
		group,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []string
	for rows.Next() {
		var device string
		if err := rows.Scan(&device); err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}
	return devices, rows.Err()
}

// LatestReading returns the most recent measurement of a device,
// or nil when the device has never reported
func (r *SensorRepo) LatestReading(deviceID string) (*domain.SensorReading, error) {
	reading := &domain.SensorReading{DeviceID: deviceID}

	query := `
		SELECT group_name, temperature, measured_at
		FROM sensor_readings
		WHERE device_id = $1
		ORDER BY measured_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(query, deviceID).Scan(&reading.Group, &reading.Temperature, &reading.MeasuredAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return reading, nil
}

// CleanOldReadings removes measurements older than the given number of days
func (r *SensorRepo) CleanOldReadings(days int) error {
	query := `
		DELETE FROM sensor_readings
		WHERE measured_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}
