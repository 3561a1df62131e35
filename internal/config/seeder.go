package config

import (
	"log"

	"lifelink-registry/internal/adapters/persistence/models"
	"lifelink-registry/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminRegistrant(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminRegistrant seeds the administrator account from config.
// The admin is an ordinary registrant row with Role=ADMIN; nothing in the
// request path treats any email specially.
func (s *Seeder) seedAdminRegistrant() error {
	if s.cfg.Admin.Password == "" {
		log.Println("⚠️ Skipping admin seed: ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	s.db.Model(&models.Registrant{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.Registrant{
		FirstName:  "Registry",
		LastName:   "Admin",
		BloodGroup: "O+",
		Email:      s.cfg.Admin.Email,
		Password:   hashedPassword,
		Role:       models.RoleAdmin,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin registrant created: %s", admin.Email)
	return nil
}
