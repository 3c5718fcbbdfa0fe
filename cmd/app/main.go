package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BloggingApp/vanguard/internal/announce"
	"github.com/BloggingApp/vanguard/internal/config"
	"github.com/BloggingApp/vanguard/internal/handler"
	"github.com/BloggingApp/vanguard/internal/rabbitmq"
	"github.com/BloggingApp/vanguard/internal/repository"
	"github.com/BloggingApp/vanguard/internal/repository/postgres"
	"github.com/BloggingApp/vanguard/internal/server"
	"github.com/BloggingApp/vanguard/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Sugar().Panicf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	dbConfig := config.DBConfig{
		Username: os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		DBName:   os.Getenv("POSTGRES_DATABASE"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
	db, err := postgres.DB(ctx, dbConfig.DSN())
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
	}
	logger.Info("Successfully connected to PostgreSQL")

	if err := postgres.RunMigrations(ctx, db, viper.GetString("db.migrations")); err != nil {
		logger.Sugar().Panicf("failed to run migrations: %s", err.Error())
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
	}
	logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

	mq, err := rabbitmq.New(os.Getenv("RABBITMQ_CONN_STRING"))
	if err != nil {
		logger.Sugar().Panicf("failed to connect to rabbitmq: %s", err.Error())
	}
	defer mq.Close()
	logger.Info("Successfully connected to RabbitMQ")

	baseURL := viper.GetString("app.baseURL")

	repos := repository.New(db, rdb)

	smtpConfig := config.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     viper.GetInt("smtp.port"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     viper.GetString("smtp.from"),
	}
	announcer := announce.NewDispatcher(
		logger,
		repos.Postgres.Category,
		announce.NewEmailNotifier(smtpConfig),
		announce.NewSlackNotifier(&http.Client{Timeout: viper.GetDuration("slack.timeout")}),
		config.AnnounceConfig{
			BaseURL:              baseURL,
			FallbackSlackWebhook: os.Getenv("SLACK_WEBHOOK_URL"),
		},
	)

	services := service.New(logger, repos, announcer, mq, service.Config{BaseURL: baseURL})
	handlers := handler.New(services, logger, config.HTTPConfig{
		AccessSecret: []byte(os.Getenv("ACCESS_SECRET")),
		ClientOrigin: viper.GetString("client.origin"),
	})

	srv := server.New(config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	})
	go func() {
		if err := srv.Run(); err != nil {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}()

	go services.StartConsumeAll(ctx)

	logger.Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shutdown http server: %s", err.Error())
	}
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
