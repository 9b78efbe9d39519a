package store

import (
	"fmt"

	"spotbook/models"

	"gorm.io/gorm"
)

const bookingOverlapConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (spot_id WITH =, daterange(start_date, end_date, '[)') WITH &&);
	END IF;
END $$;`

// Migrate creates or updates the schema, including the exclusion constraint
// that keeps bookings of one spot from overlapping.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Spot{},
		&models.SpotImage{},
		&models.Booking{},
		&models.Review{},
		&models.ReviewImage{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}
	if err := db.Exec(bookingOverlapConstraint).Error; err != nil {
		return fmt.Errorf("add booking overlap constraint: %w", err)
	}
	return nil
}
