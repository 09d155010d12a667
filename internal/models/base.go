package models

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}

// InitDB opens the MySQL connection and migrates the schema. The returned
// handle is passed explicitly to the components that need it; there is no
// package-level connection.
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(config.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto migrate the database models
	err = db.AutoMigrate(
		&Doctor{},
		&Patient{},
		&Appointment{},
		&AppointmentSerial{},
		&Prescription{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
