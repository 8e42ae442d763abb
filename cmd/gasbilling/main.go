package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/clock"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/config"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/logger"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/migration"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/server"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
