package database

import (
	"log"

	"forestry-backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.RefreshToken{},
		&model.Province{},
		&model.ForestOffice{},
		&model.AuditLog{},
		&model.TimberProductionReport{},
		&model.ForestProductReport{},
		&model.ForestFireReport{},
		&model.ReforestationReport{},
		&model.TourismVisitReport{},
		&model.TransactionValueReport{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// SeedSystemRoles makes sure the built-in approval-chain roles exist.
func SeedSystemRoles(db *gorm.DB) error {
	roles := []model.Role{
		{Name: string(model.RoleAdmin), Description: "System administrator, bypasses every workflow role gate", IsSystem: true},
		{Name: string(model.RoleOperator), Description: "Regional forest office staff submitting reports", IsSystem: true},
		{Name: string(model.RoleKasi), Description: "Section head, first approval tier", IsSystem: true},
		{Name: string(model.RoleKadis), Description: "Department head, final approval tier", IsSystem: true},
	}
	for _, role := range roles {
		if err := db.Where(model.Role{Name: role.Name}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
