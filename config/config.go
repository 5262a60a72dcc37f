package config

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mdzoubir/eventconnect-backend/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the repository maps onto domain conflicts.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Location{},
		&models.User{},
		&models.EventCategory{},
		&models.EventTag{},
		&models.Event{},
		&models.EventImage{},
		&models.Ticket{},
		&models.RSVP{},
		&models.Transaction{},
		&models.Waitlist{},
		&models.Review{},
		&models.Notification{},
		&models.Message{},
		&models.Contact{},
		&models.Subscriber{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
