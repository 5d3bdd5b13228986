package main

import (
	"Margin/config"
	"Margin/models"
	"Margin/pkg/database"
	"Margin/pkg/log"
	"Margin/pkg/server"
	"Margin/pkg/snowflake"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "margin notes api",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   fmt.Sprintf("configs/config.%s.yaml", env),
				Usage:   "config file path",
			},
			&cli.Int64Flag{
				Name:    "node",
				Value:   1,
				Usage:   "snowflake node id (0-1023)",
				EnvVars: []string{"SNOWFLAKE_NODE"},
			},
		},
		Before: func(ctx *cli.Context) error {
			return snowflake.SetNode(ctx.Int64("node"))
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}
					app, err := InitServer(cfg)
					if err != nil {
						return err
					}
					return server.Run(ctx.Context, app)
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update database tables",
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}
					db, err := database.NewDB(cfg)
					if err != nil {
						return err
					}
					if err := db.WithContext(ctx.Context).AutoMigrate(models.Tables()...); err != nil {
						return fmt.Errorf("migrate: %w", err)
					}
					log.L.Info("migrate done", zap.Int("tables", len(models.Tables())))
					return nil
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("api-server exited", zap.Error(err))
	}
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	if err := log.SetLevel(cfg.App.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}
