package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ower-data/internal/config"
	"ower-data/internal/database"
	httpapi "ower-data/internal/http"
	"ower-data/internal/logger"
	"ower-data/internal/repository"
	"ower-data/internal/service"
	"ower-data/internal/store"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "ower-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// The remote registry is optional; phone lookups degrade to direct
	// inserts when it is down, so a failed connection is not fatal.
	var remoteDB *sql.DB
	if cfg.RemoteEnabled {
		remoteDB, err = database.NewPostgresDB(&cfg.RemoteDatabase)
		if err != nil {
			log.Warn("Remote registry unreachable, IPN cross-referencing disabled", zap.Error(err))
			remoteDB = nil
		} else {
			defer remoteDB.Close()
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	kv := store.NewRedisKV(redisClient)

	debtorsRepo := repository.NewPostgresDebtorsRepository(db)
	phonesRepo := repository.NewPostgresPhonesRepository(db)
	registryRepo := repository.NewPostgresRegistryRepository(remoteDB, cfg.RemoteTable, log)
	historyRepo := repository.NewPostgresHistoryRepository(db)
	callsRepo := repository.NewPostgresCallsRepository(db)
	kindergartenRepo := repository.NewPostgresKindergartenRepository(db)
	groupsRepo := repository.NewPostgresGroupsRepository(db)
	childrenRepo := repository.NewPostgresChildrenRepository(db)
	attendanceRepo := repository.NewPostgresAttendanceRepository(db)
	auditRepo := repository.NewPostgresAuditRepository(db)

	docClient := service.NewRestyDocumentClient(cfg.DocService.BaseURL, log)

	debtorSvc := service.NewDebtorService(debtorsRepo, phonesRepo, registryRepo, docClient, auditRepo, kv, cfg.Match, log)
	callSvc := service.NewCallService(debtorsRepo, historyRepo, callsRepo, auditRepo, cfg.Match, log)
	kindergartenSvc := service.NewKindergartenService(kindergartenRepo, docClient, auditRepo, kv, log)
	groupSvc := service.NewGroupService(groupsRepo, auditRepo, log)
	childrenSvc := service.NewChildrenService(childrenRepo, groupsRepo, auditRepo, log)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, auditRepo, log)

	router := httpapi.NewRouter(log)
	router.RegisterDebtorRoutes(
		httpapi.NewDebtorHandler(debtorSvc, log),
		httpapi.NewCallsHandler(callSvc, log),
	)
	router.RegisterKindergartenRoutes(
		httpapi.NewKindergartenHandler(kindergartenSvc, log),
		httpapi.NewGroupsHandler(groupSvc, log),
	)
	router.RegisterChildrenRoutes(httpapi.NewChildrenHandler(childrenSvc, log))
	router.RegisterAttendanceRoutes(httpapi.NewAttendanceHandler(attendanceSvc, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal("HTTP server failed", zap.Error(err))
	case sig := <-quit:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
