package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/campus-erp/leave-backend-go/internal/config"
	appHTTP "github.com/campus-erp/leave-backend-go/internal/handler/http"
	"github.com/campus-erp/leave-backend-go/internal/pkg/cron"
	"github.com/campus-erp/leave-backend-go/internal/pkg/database"
	"github.com/campus-erp/leave-backend-go/internal/pkg/jwt"
	"github.com/campus-erp/leave-backend-go/internal/repository/postgresql"
	leaveService "github.com/campus-erp/leave-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	}))

	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	weeklyOffRepo := postgresql.NewWeeklyOffRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveTypeRuleRepo := postgresql.NewLeaveTypeRuleRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveTakenRepo := postgresql.NewLeaveTakenRepository(db)
	leaveAdjustmentRepo := postgresql.NewLeaveAdjustmentRepository(db)
	leaveAssignmentRepo := postgresql.NewLeaveAssignmentRepository(db)

	txManager := postgresql.NewTxManager(db)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	leaveSvc := leaveService.NewService(txManager, leaveService.Repositories{
		LeaveTypes:  leaveTypeRepo,
		Rules:       leaveTypeRuleRepo,
		Requests:    leaveRequestRepo,
		Taken:       leaveTakenRepo,
		Adjustments: leaveAdjustmentRepo,
		Assignments: leaveAssignmentRepo,
		Employees:   employeeRepo,
		Holidays:    holidayRepo,
		WeeklyOffs:  weeklyOffRepo,
	}, logger)

	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	configHandler := appHTTP.NewConfigHandler(holidayRepo, weeklyOffRepo, leaveTypeRepo)

	router := appHTTP.NewRouter(cfg, JWTService, leaveHandler, configHandler)

	accrualInterval, err := time.ParseDuration(cfg.Accrual.CheckInterval)
	if err != nil {
		log.Fatal("Invalid accrual check interval: ", err)
	}
	scheduler := cron.NewScheduler()
	scheduler.AddJob("leave-accrual", accrualInterval, leaveSvc.Balances.AccrueMonthly)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
