package service

import (
	"thermobot/internal/domain"
	"thermobot/internal/repository"
)

// AccessService resolves roles and accessible groups for registered users.
// It is consumed read-only during menu control reconstruction.
type AccessService struct {
	adminRepo  repository.AdminRepository
	sensorRepo repository.SensorRepository
}

// NewAccessService creates a new access service
func NewAccessService(adminRepo repository.AdminRepository, sensorRepo repository.SensorRepository) *AccessService {
	return &AccessService{
		adminRepo:  adminRepo,
		sensorRepo: sensorRepo,
	}
}

// IsRegistered reports whether the chat has a completed registration
func (s *AccessService) IsRegistered(chatID int64) (bool, error) {
	admin, err := s.adminRepo.GetAdmin(chatID)
	if err != nil {
		return false, err
	}
	return admin != nil, nil
}

// Admin returns the admin record of a chat, or nil if not registered
func (s *AccessService) Admin(chatID int64) (*domain.Admin, error) {
	return s.adminRepo.GetAdmin(chatID)
}

// Role returns the role of a chat, RoleUnknown for unregistered users
func (s *AccessService) Role(chatID int64) (domain.Role, error) {
	admin, err := s.adminRepo.GetAdmin(chatID)
	if err != nil {
		return domain.RoleUnknown, err
	}
	if admin == nil {
		return domain.RoleUnknown, nil
	}
	return admin.Role, nil
}

// AccessibleGroups returns the groups a chat may see: its own memberships
// for admins, every group in the system for big boss.
func (s *AccessService) AccessibleGroups(chatID int64) ([]string, error) {
	admin, err := s.adminRepo.GetAdmin(chatID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, nil
	}
	if admin.Role.CanAccessGroup() {
		return s.sensorRepo.AllGroups()
	}
	return admin.Groups, nil
}

// CanAccessGroup reports whether a chat may see a group
func (s *AccessService) CanAccessGroup(chatID int64, group string) (bool, error) {
	groups, err := s.AccessibleGroups(chatID)
	if err != nil {
		return false, err
	}
	for _, g := range groups {
		if g == group {
			return true, nil
		}
	}
	return false, nil
}

// AllGroups returns every group known to the monitoring system
func (s *AccessService) AllGroups() ([]string, error) {
	return s.sensorRepo.AllGroups()
}

// GroupDevices returns the sensors of a group
func (s *AccessService) GroupDevices(group string) ([]string, error) {
	return s.sensorRepo.GroupDevices(group)
}

// ListAdmins returns all registered admins
func (s *AccessService) ListAdmins() ([]domain.Admin, error) {
	return s.adminRepo.ListAdmins()
}
