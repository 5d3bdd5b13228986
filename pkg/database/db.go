package database

import (
	"Margin/config"
	"Margin/pkg/log"
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	pingAttempts = 5
	pingDelay    = 300 * time.Millisecond
)

// NewDB 初始化数据库连接，配置了 sqlite.path 时使用 SQLite
func NewDB(conf *config.Config) (*gorm.DB, error) {
	gormConf := &gorm.Config{}
	if !conf.Debug() {
		gormConf.Logger = logger.Default.LogMode(logger.Warn)
	}

	var dialector gorm.Dialector
	if conf.SQLite.Path != "" {
		dialector = sqlite.Open(conf.SQLite.Path)
	} else {
		dialector = mysql.Open(conf.MySQL.Dsn())
	}

	db, err := gorm.Open(dialector, gormConf)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Ping(context.Background(), db); err != nil {
		return nil, err
	}

	log.L.Info("connect database success", zap.String("dialector", dialector.Name()))
	return db, nil
}

// Ping 带重试地检查连接
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	err = retry.Do(
		func() error { return sqlDB.PingContext(ctx) },
		retry.Context(ctx),
		retry.Delay(pingDelay),
		retry.Attempts(pingAttempts),
		retry.OnRetry(func(attempt uint, err error) {
			log.L.Warn("failed ping to database", zap.Error(err), zap.Uint("attempt", attempt))
		}),
	)
	if err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}
