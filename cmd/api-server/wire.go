//go:build wireinject
// +build wireinject

package main

import (
	"Margin/config"
	"Margin/dao"
	"Margin/dao/cache"
	"Margin/handler"
	"Margin/pkg/client"
	"Margin/pkg/database"
	"Margin/pkg/server"
	"Margin/service"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		wire.Bind(new(redis.Cmdable), new(*redis.Client)),
		config.ProvideAccountConfig,

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Account), "*"),
		wire.Struct(new(handler.ContextHandler), "*"),
		wire.Struct(new(handler.Note), "*"),

		server.NewGinEngine,
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil, nil
}
