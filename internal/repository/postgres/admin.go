package postgres

import (
	"database/sql"
	"fmt"

	"thermobot/internal/domain"
)

// AdminRepo implements repository.AdminRepository
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo creates a new admin repository
func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

// GetAdmin returns the admin record for a chat, or nil if not registered
func (r *AdminRepo) GetAdmin(chatID int64) (*domain.Admin, error) {
	admin := &domain.Admin{ChatID: chatID}

	query := `SELECT full_name, position, role, registered_at FROM admins WHERE chat_id = $1`
	err := r.db.QueryRow(query, chatID).Scan(&admin.FullName, &admin.Position, &admin.Role, &admin.RegisteredAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	groups, err := r.adminGroups(chatID)
	if err != nil {
		return nil, err
	}
	admin.Groups = groups

	return admin, nil
}

// SaveAdmin upserts the admin record and replaces its group memberships
func (r *AdminRepo) SaveAdmin(admin *domain.Admin) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save admin: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO admins (chat_id, full_name, position, role, registered_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (chat_id)
		DO UPDATE SET full_name = $2, position = $3, role = $4
	`
	if _, err := tx.Exec(query, admin.ChatID, admin.FullName, admin.Position, admin.Role); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM admin_groups WHERE chat_id = $1`, admin.ChatID); err != nil {
		return err
	}
	for _, group := range admin.Groups {
		if _, err := tx.Exec(
			`INSERT INTO admin_groups (chat_id, group_name) VALUES ($1, $2)`,
			admin.ChatID, group,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListAdmins returns all registered admins with their groups
func (r *AdminRepo) ListAdmins() ([]domain.Admin, error) {
	query := `SELECT chat_id, full_name, position, role, registered_at FROM admins ORDER BY registered_at`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []domain.Admin
	for rows.Next() {
		var admin domain.Admin
		if err := rows.Scan(&admin.ChatID, &admin.FullName, &admin.Position, &admin.Role, &admin.RegisteredAt); err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range admins {
		groups, err := r.adminGroups(admins[i].ChatID)
		if err != nil {
			return nil, err
		}
		admins[i].Groups = groups
	}

	return admins, nil
}

// RemoveAdmin deletes the admin record; group rows go with it via cascade
func (r *AdminRepo) RemoveAdmin(chatID int64) error {
	_, err := r.db.Exec(`DELETE FROM admins WHERE chat_id = $1`, chatID)
	return err
}

func (r *AdminRepo) adminGroups(chatID int64) ([]string, error) {
	rows, err := r.db.Query(
		`SELECT group_name FROM admin_groups WHERE chat_id = $1 ORDER BY group_name`,
		chatID,
	)
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
