package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "danset_exchange/internal/feature/auth/domain/entity"
	marketentity "danset_exchange/internal/feature/market/domain/entity"
	newsentity "danset_exchange/internal/feature/news/domain/entity"
	priceadapters "danset_exchange/internal/feature/pricehistory/adapters"
	schedentity "danset_exchange/internal/feature/schedule/domain/entity"
	tradingentity "danset_exchange/internal/feature/trading/domain/entity"
)

// Config holds the database connection settings.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

// LoadConfigFromEnv reads the connection settings from environment variables.
// DB_PORT defaults to 5432 when unset.
func LoadConfigFromEnv() Config {
	cfg := Config{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	return cfg
}

// BuildDSN builds a Postgres DSN from the config.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

// Opener abstracts gorm.Open so connection retries can be tested without a
// running database.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry opens a connection, retrying every 3 seconds until the
// timeout elapses. The service survives a database that is still booting.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		gdb, err := open(dsn)
		if err == nil {
			return gdb, nil
		}
		if time.Now().After(deadline) {
			return nil, errors.New("DB connect failed after " + timeout.String() + ": " + err.Error())
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB connects to Postgres using environment configuration, retrying for
// up to 60 seconds. It runs migrations when RUN_MIGRATIONS=true.
func OpenDB() *gorm.DB {
	dsn := BuildDSN(LoadConfigFromEnv())

	gdb, err := ConnectWithRetry(dsn, 60*time.Second, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	})
	if err != nil {
		log.Fatal(err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := Migrate(gdb); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return gdb
}

// Migrate creates or updates every table the exchange uses.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&authentity.User{},
		&marketentity.Company{},
		&tradingentity.Holding{},
		&tradingentity.Transaction{},
		&schedentity.MarketSchedule{},
		&schedentity.MarketStatus{},
		&newsentity.News{},
		&priceadapters.PricePointModel{},
	)
}
