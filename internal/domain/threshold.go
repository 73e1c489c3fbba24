package domain

import "time"

// OperationKind is the scope of a pending threshold edit
type OperationKind string

const (
	OpSingleDevice  OperationKind = "single_device"
	OpWholeGroup    OperationKind = "whole_group"
	OpAllUserGroups OperationKind = "all_user_groups"
	OpAllSystem     OperationKind = "all_system"
)

// ThresholdEditRequest is the single pending "awaiting numeric pair" slot
// of a user, referencing the message that should receive the result.
type ThresholdEditRequest struct {
	UserID          int64
	ChatID          int64
	TargetMessageID int
	Op              OperationKind
	GroupKey        string
	DeviceKey       string
	CreatedAt       time.Time
}

// Threshold is a temperature alert band for a device
type Threshold struct {
	Group     string
	DeviceID  string
	Min       float64
	Max       float64
	UpdatedBy int64
	UpdatedAt time.Time
}

// SensorReading is the latest known measurement of a device
type SensorReading struct {
	DeviceID    string
	Group       string
	Temperature float64
	MeasuredAt  time.Time
}
