package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accountapp "MedievalKingdoms/internal/account/app"
	accountdomain "MedievalKingdoms/internal/account/domain"
	accountrepo "MedievalKingdoms/internal/account/infra/repo"
	accountctrl "MedievalKingdoms/internal/account/interfaces/controller"
	accounthandler "MedievalKingdoms/internal/account/interfaces/handler"
	allianceapp "MedievalKingdoms/internal/alliance/app"
	alliancemongo "MedievalKingdoms/internal/alliance/infra/persistence/mongodb"
	alliancehandler "MedievalKingdoms/internal/alliance/interfaces/handler"
	chatapp "MedievalKingdoms/internal/chat/app"
	chatmongo "MedievalKingdoms/internal/chat/infra/persistence/mongodb"
	chatctrl "MedievalKingdoms/internal/chat/interfaces/controller"
	chathandler "MedievalKingdoms/internal/chat/interfaces/handler"
	combatapp "MedievalKingdoms/internal/combat/app"
	combatmongo "MedievalKingdoms/internal/combat/infra/persistence/mongodb"
	combathandler "MedievalKingdoms/internal/combat/interfaces/handler"
	kingdomactor "MedievalKingdoms/internal/kingdom/actor"
	kingdomapp "MedievalKingdoms/internal/kingdom/app"
	kingdommongo "MedievalKingdoms/internal/kingdom/infra/persistence/mongodb"
	kingdomhandler "MedievalKingdoms/internal/kingdom/interfaces/handler"
	marketapp "MedievalKingdoms/internal/market/app"
	marketmongo "MedievalKingdoms/internal/market/infra/persistence/mongodb"
	markethandler "MedievalKingdoms/internal/market/interfaces/handler"
	"MedievalKingdoms/internal/shared/infrastructure/db"
	"MedievalKingdoms/internal/shared/infrastructure/mongo"
	"MedievalKingdoms/internal/shared/logs"
	"MedievalKingdoms/internal/shared/security"
	"MedievalKingdoms/internal/shared/serverconfig"
	transporthttp "MedievalKingdoms/internal/shared/transport/http"
	"MedievalKingdoms/internal/shared/transport/ws"
	"MedievalKingdoms/internal/shared/utils"
	shopapp "MedievalKingdoms/internal/shop/app"
	shopmongo "MedievalKingdoms/internal/shop/infra/persistence/mongodb"
	shophandler "MedievalKingdoms/internal/shop/interfaces/handler"
	"MedievalKingdoms/internal/ticker"
	"MedievalKingdoms/modules/kit/logx"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("game", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))
	logger := logx.NewZapLogger(logs.Logger())

	// MySQL：账号体系
	gormDB, err := db.Open(serverconfig.Conf.MySQL)
	if err != nil {
		logs.Fatal("open db failed", zap.Error(err))
	}
	if err = gormDB.AutoMigrate(
		&accountdomain.User{},
		&accountdomain.LoginHistory{},
		&accountdomain.LoginLast{},
	); err != nil {
		logs.Fatal("auto migrate failed", zap.Error(err))
	}

	// Mongo：王国、建造、战报、挂单、联盟、聊天、商店
	mongoClient, err := mongo.Open(serverconfig.Conf.MongoDB, logs.Logger())
	if err != nil {
		logs.Fatal("open mongodb failed", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	mdb := mongoClient.Database(serverconfig.Conf.MongoDB.Database)

	kingdomRepo := kingdommongo.NewKingdomRepository(mdb)
	queueRepo := kingdommongo.NewConstructionRepository(mdb)
	raidRepo := combatmongo.NewRaidRepository(mdb)
	offerRepo := marketmongo.NewOfferRepository(mdb)
	allianceRepo := alliancemongo.NewAllianceRepository(mdb)
	inviteRepo := alliancemongo.NewInviteRepository(mdb)
	messageRepo := chatmongo.NewMessageRepository(mdb)
	purchaseRepo := shopmongo.NewPurchaseRepository(mdb)
	inventoryRepo := shopmongo.NewInventoryRepository(mdb)

	// 单写者 actor runtime：所有玩家账本变更都经它路由
	runtime := kingdomactor.NewRuntime(kingdomRepo, queueRepo, 0)
	defer runtime.Shutdown()

	hub := ws.NewHub()

	game := serverconfig.Conf.Game
	protection := time.Duration(game.ProtectionWindowS) * time.Second
	tradeDefault := time.Duration(game.TradeDefaultDurationS) * time.Second

	kingdomSvc := kingdomapp.NewKingdomService(runtime, kingdomRepo, queueRepo, protection)
	raidSvc := combatapp.NewRaidService(runtime, kingdomRepo, raidRepo, hub, nil, protection, logger)
	tradeSvc := marketapp.NewTradeService(runtime, offerRepo, tradeDefault, logger)
	allianceSvc := allianceapp.NewAllianceService(runtime, allianceRepo, inviteRepo, kingdomRepo, logger)
	shopSvc := shopapp.NewShopService(runtime, purchaseRepo, inventoryRepo, logger)
	chatSvc := chatapp.NewChatService(runtime, messageRepo, kingdomRepo, hub, logger)

	// 单实例部署，雪花节点号固定
	idGen, err := utils.NewSnowflake(1)
	if err != nil {
		logs.Fatal("snowflake init failed", zap.Error(err))
	}
	userSvc := accountapp.NewUserService(
		accountrepo.NewUserRepo(gormDB),
		accountrepo.NewLoginHistoryRepo(gormDB),
		accountrepo.NewLoginLastRepo(gormDB),
		kingdomRepo,
		security.Password,
		utils.RandSeq,
		idGen,
		logger,
	)

	// HTTP
	engine := gin.New()
	engine.Use(gin.Recovery())
	httpAddr := fmt.Sprintf("%s:%d", serverconfig.Conf.HTTPServer.Host, serverconfig.Conf.HTTPServer.Port)
	httpSrv := transporthttp.NewHttpServer(httpAddr, engine, logger)

	api := httpSrv.Group()
	accounthandler.NewAccount(userSvc, logger).RegisterRoutes(api)
	kingdomhandler.NewKingdom(kingdomSvc).RegisterRoutes(api)
	combathandler.NewCombat(raidSvc).RegisterRoutes(api)
	markethandler.NewMarket(tradeSvc).RegisterRoutes(api)
	alliancehandler.NewAlliance(allianceSvc, kingdomRepo).RegisterRoutes(api)
	shophandler.NewShop(shopSvc).RegisterRoutes(api)
	chathandler.NewChat(chatSvc).RegisterRoutes(api)

	// WS：进场绑定 + 聊天 + 服务端推送
	wsRouter := ws.NewRouter(logger)
	accountctrl.NewGate(hub).RegisterRoutes(wsRouter)
	chatctrl.NewChat(chatSvc).RegisterRoutes(wsRouter)
	wsSrv := ws.NewServer(wsRouter, hub, serverconfig.Conf.WSServer.NeedSecret, logger)
	engine.GET("/ws", gin.WrapH(wsSrv))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 后台四循环：资源累计、建造完工、战力重算、过期清理
	sched := ticker.NewScheduler(ticker.Config{
		AccrualInterval:      time.Duration(game.AccrualIntervalS) * time.Second,
		ConstructionInterval: time.Duration(game.ConstructionIntervalS) * time.Second,
		PowerInterval:        time.Duration(game.PowerIntervalS) * time.Second,
		CleanupInterval:      time.Duration(game.CleanupIntervalS) * time.Second,
		ActiveWindow:         time.Duration(game.ActiveWindowH) * time.Hour,
		ChatHistoryCap:       int64(game.ChatHistoryCap),
		MessageRetention:     time.Duration(game.MessageRetentionDays) * 24 * time.Hour,
		RaidRetention:        time.Duration(game.RaidRetentionDays) * 24 * time.Hour,
		BuildRetention:       time.Duration(game.BuildRetentionDays) * 24 * time.Hour,
	}, runtime, kingdomRepo, queueRepo, raidRepo, offerRepo, inviteRepo, messageRepo, hub, logger)
	go func() { _ = sched.Run(ctx) }()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("game http server started", zap.String("addr", httpAddr))
		errCh <- httpSrv.Start()
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logs.Error("http shutdown failed", zap.Error(err))
	}
}
