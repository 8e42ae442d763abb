package migration

import (
	"strings"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/config"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if strings.EqualFold(cfg.DBType, "postgres") {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := AutoMigrate(conn); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
