package main

import (
	"github.com/formbridge/formbridge/internal/config"
	"github.com/formbridge/formbridge/internal/observability"
	"github.com/formbridge/formbridge/internal/server"
	"github.com/formbridge/formbridge/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		server.Module,
	)
	app.Run()
}
