package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/glamflow/salon-scheduler/internal/config"
	"github.com/glamflow/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Staff{},
		&models.Service{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
		&models.Message{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Slot exclusivity: two bookings may not consume the same
	// staff/date/slot at once. AutoMigrate cannot express a partial index.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_staff_slot
        ON bookings (staff_id, date, time_slot)
        WHERE status IN ('pending_payment', 'pending', 'confirmed')
    `)

	return db
}
