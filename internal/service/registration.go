package service

import (
	"fmt"

	"thermobot/internal/domain"
	"thermobot/internal/repository"

	"go.uber.org/zap"
)

// RegistrationService persists completed registrations
type RegistrationService struct {
	adminRepo repository.AdminRepository
	bigBossID int64
	logger    *zap.Logger
}

// NewRegistrationService creates a new registration service. bigBossID,
// when non-zero, names the chat that registers with the big boss role.
func NewRegistrationService(adminRepo repository.AdminRepository, bigBossID int64, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		adminRepo: adminRepo,
		bigBossID: bigBossID,
		logger:    logger,
	}
}

// Complete stores the consumed wizard result as an admin record
func (s *RegistrationService) Complete(chatID int64, result *domain.RegistrationResult) (*domain.Admin, error) {
	if result == nil {
		return nil, fmt.Errorf("no completed registration data")
	}
	if len(result.Groups) == 0 {
		return nil, fmt.Errorf("registration without groups")
	}

	role := domain.RoleAdmin
	if s.bigBossID != 0 && chatID == s.bigBossID {
		role = domain.RoleBigBoss
	}

	admin := &domain.Admin{
		ChatID:   chatID,
		FullName: result.Name,
		Position: result.Position,
		Role:     role,
		Groups:   result.Groups,
	}

	if err := s.adminRepo.SaveAdmin(admin); err != nil {
		return nil, fmt.Errorf("save admin: %w", err)
	}

	s.logger.Info("Registration completed",
		zap.Int64("chat_id", chatID),
		zap.String("role", string(role)),
		zap.Strings("groups", result.Groups),
	)

	return admin, nil
}
