package database

import (
	"database/sql"
	"errors"
	"time"

	"carepro-gateway/internal/models"

	"github.com/jmoiron/sqlx"
)

// GetCareproPrefs loads a carepro's offer preferences. A carepro with no row
// yet gets the defaults: available, all service types.
func GetCareproPrefs(db *sqlx.DB, userID string) (models.CareproPrefs, error) {
	var prefs models.CareproPrefs
	err := db.Get(&prefs, `
		SELECT user_id, is_available, service_type, updated_at
		FROM carepro_prefs
		WHERE user_id = $1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CareproPrefs{
			UserID:      userID,
			IsAvailable: true,
			ServiceType: "",
		}, nil
	}
	if err != nil {
		return models.CareproPrefs{}, err
	}
	return prefs, nil
}

// SaveCareproPrefs upserts a carepro's offer preferences
func SaveCareproPrefs(db *sqlx.DB, userID string, isAvailable bool, serviceType string) (models.CareproPrefs, error) {
	now := time.Now().Unix()
	_, err := db.Exec(`
		INSERT INTO carepro_prefs (user_id, is_available, service_type, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET is_available = $2, service_type = $3, updated_at = $4
	`, userID, isAvailable, serviceType, now)
	if err != nil {
		return models.CareproPrefs{}, err
	}

	return models.CareproPrefs{
		UserID:      userID,
		IsAvailable: isAvailable,
		ServiceType: serviceType,
		UpdatedAt:   now,
	}, nil
}
