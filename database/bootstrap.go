package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"carbonledger/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatalf("automigrate: %v", err)
	}
	return db
}

// Migrate creates or updates the ledger schema. Split out so tests can run
// it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Farmer{},
		&entities.Plot{},
		&entities.PracticeEvent{},
		&entities.CreditLot{},
		&entities.Purchase{},
		&entities.Payout{},
	)
}
