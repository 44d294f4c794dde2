package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fastcard/config"
	"fastcard/controllers"
	"fastcard/database"
	"fastcard/database/seeders"
	"fastcard/services"
	"fastcard/utils"

	"github.com/gin-gonic/gin"
)

// newNotifier выбирает канал уведомлений администраторов
func newNotifier(cfg *config.Config) services.ApplicationNotifier {
	if cfg.Telegram.Token == "" || len(cfg.Telegram.AdminIDs) == 0 {
		utils.LogInfo("Telegram не настроен, заявки пишутся в лог")
		return services.LogNotifier{}
	}

	notifier, err := services.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.AdminIDs)
	if err != nil {
		utils.LogError("Telegram недоступен, заявки пишутся в лог: %v", err)
		return services.LogNotifier{}
	}
	return notifier
}

// newDependencies собирает сервисы приложения
func newDependencies(cfg *config.Config, db *database.Database) controllers.Dependencies {
	hasher := services.NewPasswordHasher(cfg.Security.BcryptCost)
	tokens := services.NewTokenService(cfg.JWT.SecretKey, time.Duration(cfg.JWT.ExpiresIn)*time.Hour)
	activation := services.NewActivationWorkflow(db, services.NewEmailService(cfg), cfg.ActivationURL)

	return controllers.Dependencies{
		DB:           db,
		Tokens:       tokens,
		Users:        services.NewUserService(db, hasher, tokens, activation),
		Cards:        services.NewCardService(db, cfg.CardURL),
		Applications: services.NewApplicationService(db, newNotifier(cfg), cfg.PhoneRegion),
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	// Миграции выполняются до открытия пула gorm
	if cfg.DB.Migrate {
		if err := database.Migrate(cfg); err != nil {
			return err
		}
		utils.LogInfo("Миграции применены")
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.HasAdminSeed() {
		admin := seeders.AdminAccount{
			Username: cfg.Admin.Username,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		}
		hasher := services.NewPasswordHasher(cfg.Security.BcryptCost)
		if err := seeders.SeedAdmin(ctx, db, hasher, admin); err != nil {
			return fmt.Errorf("ошибка создания администратора: %w", err)
		}
	}

	if !cfg.Server.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := controllers.NewRouter(cfg.Server.APIPrefix, newDependencies(cfg, db))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.LogInfo("Сервер запущен на порту %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.LogInfo("Остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if err := utils.InitLogger(cfg.Log.Level, cfg.Server.Development); err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer utils.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		utils.LogError("Ошибка запуска сервера: %v", err)
		utils.SyncLogger()
		os.Exit(1)
	}
}
