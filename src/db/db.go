package db

import (
	"log"
	"strings"
	"travelhub/src/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// Dialector picks the driver from the DSN. "sqlite:" and "file:" DSNs open
// a local SQLite database for development; anything else is postgres.
func Dialector(dsn string) gorm.Dialector {
	if rest, ok := strings.CutPrefix(dsn, "sqlite:"); ok {
		return sqlite.Open(rest)
	}
	if strings.HasPrefix(dsn, "file:") {
		return sqlite.Open(dsn)
	}
	return postgres.Open(dsn)
}

func Open(dsn string, maxOpen int) (*gorm.DB, error) {
	if maxOpen <= 0 {
		maxOpen = 100
	}
	_db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := _db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(min(10, maxOpen))
	sqlDB.SetMaxOpenConns(maxOpen)
	return _db, nil
}

func GetDb() *gorm.DB {
	if db != nil {
		return db
	}
	_db, err := Open(config.GetDSN(), config.Get().DBMaxOpenConns)
	if err != nil {
		log.Printf("Error connecting to database: %s\n", err.Error())
		panic(err)
	}
	db = _db
	return _db
}

func NewDB(newdb *gorm.DB) {
	db = newdb
}
