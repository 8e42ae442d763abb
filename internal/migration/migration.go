package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	invoicedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/domain"
	ratedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/domain"
	readingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/domain"
	spdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/domain"
)

// RunMigrations applies the embedded SQL migrations against postgres.
// All core billing tables are created automatically on startup.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate covers the non-postgres dialects where the embedded SQL does
// not apply (mysql, sqlite for local development).
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&spdomain.SupplyPoint{},
		&readingdomain.MeterReading{},
		&ratedomain.TariffVersion{},
		&ratedomain.ConversionFactor{},
		&ratedomain.TaxVersion{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceLine{},
	)
}
