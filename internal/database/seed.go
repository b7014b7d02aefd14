package database

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func SeedUsers(db *sqlx.DB) error {
	// Check if users already exist
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding test users...")

	// Hash passwords
	careproPassword, err := bcrypt.GenerateFromPassword([]byte("carepro123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []map[string]interface{}{
		{
			"id":       uuid.New().String(),
			"email":    "carepro@o2ocare.vn",
			"password": string(careproPassword),
			"name":     "Nguyễn Thị An",
			"phone":    "0903123456",
			"role":     "carepro",
		},
		{
			"id":       uuid.New().String(),
			"email":    "admin@o2ocare.vn",
			"password": string(adminPassword),
			"name":     "Admin User",
			"phone":    "",
			"role":     "admin",
		},
	}

	for _, user := range users {
		query := `
			INSERT INTO users (id, email, password, name, phone, role)
			VALUES (:id, :email, :password, :name, :phone, :role)
		`
		if _, err := db.NamedExec(query, user); err != nil {
			return err
		}
		log.Printf("  ✓ Created user: %s (%s)", user["email"], user["role"])

		// New carepros start available with no service-type filter
		if user["role"] == "carepro" {
			if _, err := db.Exec(
				`INSERT INTO carepro_prefs (user_id) VALUES ($1)`,
				user["id"],
			); err != nil {
				return err
			}
		}
	}

	log.Println("✓ Successfully seeded users")
	return nil
}
