package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"orchestrator/cmd"
	_ "orchestrator/docs"
	httpadapter "orchestrator/internal/adapters/in/http"
	"orchestrator/internal/adapters/out/postgres/agentlogrepo"
	"orchestrator/internal/adapters/out/postgres/auditrepo"
	"orchestrator/internal/adapters/out/postgres/messagerepo"
	"orchestrator/internal/adapters/out/postgres/taskrepo"
	"orchestrator/internal/adapters/out/postgres/ticketrepo"
	"orchestrator/internal/generated/servers"
	"orchestrator/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	echoswagger "github.com/swaggo/echo-swagger"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(app.CreateGetStaleTasksQueryHandler(), app.Logger())
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:                      envVariable("HTTP_PORT"),
		DBHost:                        envVariable("DB_HOST"),
		DBPort:                        envVariable("DB_PORT"),
		DBUser:                        envVariable("DB_USER"),
		DBPassword:                    envVariable("DB_PASSWORD"),
		DBName:                        envVariable("DB_NAME"),
		DBSslMode:                     envVariable("DB_SSLMODE"),
		EscalationConfidenceThreshold: floatEnvVariable("ESCALATION_CONFIDENCE_THRESHOLD", 0.7),
	}
}

func envVariable(key string) string {
	return os.Getenv(key)
}

func floatEnvVariable(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&ticketrepo.TicketDTO{},
		&messagerepo.MessageDTO{},
		&auditrepo.EntryDTO{},
		&agentlogrepo.EntryDTO{},
		&taskrepo.TaskDTO{},
	)
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true

	healthHandler := func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	}
	e.GET("/health", healthHandler)
	e.GET("/api/health", healthHandler)
	e.GET("/swagger/*", echoswagger.WrapHandler)

	server := httpadapter.NewServer(
		app.CreateEmitCommandHandler(),
		app.CreateGetTicketHistoryQueryHandler(),
	)
	servers.RegisterHandlers(e, server)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
