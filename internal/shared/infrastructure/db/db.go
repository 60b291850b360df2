package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"MedievalKingdoms/internal/shared/logs"
	"MedievalKingdoms/internal/shared/serverconfig"
)

// Open 打开账号库。慢查询阈值 200ms，超过的 SQL 进慢日志。
func Open(cfg serverconfig.MySQLConfig) (*gorm.DB, error) {
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		charset,
	)
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logs.NewGormLogger(logger.Info, 200*time.Millisecond),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)

	logs.Info("mysql connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User),
	)
	return gdb, nil
}
