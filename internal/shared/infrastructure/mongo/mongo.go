package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"MedievalKingdoms/internal/shared/serverconfig"
)

const defaultConnectTimeout = 3 * time.Second

// Open 建立连接并用一次 Ping 验活。王国、建造队列、战报、挂单、
// 联盟、聊天、商店流水都落在这个库里，连不上直接启动失败。
func Open(cfg serverconfig.MongoDBConfig, log *zap.Logger) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb uri is empty")
	}
	if log == nil {
		log = zap.NewNop()
	}

	timeout := time.Duration(cfg.ConnectTimeoutS) * time.Second
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("mongodb connected",
		zap.String("uri", cfg.URI),
		zap.String("database", cfg.Database),
	)
	return client, nil
}
