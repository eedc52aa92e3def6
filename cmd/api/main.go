package main

import (
	"fmt"
	"net/http"

	"github.com/samarqand/backoffice-go/internal/config"
	appHTTP "github.com/samarqand/backoffice-go/internal/handler/http"
	"github.com/samarqand/backoffice-go/internal/pkg/database"
	"github.com/samarqand/backoffice-go/internal/pkg/jwt"
	"github.com/samarqand/backoffice-go/internal/pkg/punchfile"
	"github.com/samarqand/backoffice-go/internal/repository/postgresql"
	attendanceService "github.com/samarqand/backoffice-go/internal/service/attendance"
	"github.com/samarqand/backoffice-go/internal/service/master"
	payrollService "github.com/samarqand/backoffice-go/internal/service/payroll"
	timeclockService "github.com/samarqand/backoffice-go/internal/service/timeclock"
	workerService "github.com/samarqand/backoffice-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	workerRepo := postgresql.NewWorkerRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	runLogRepo := postgresql.NewRunLogRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	workerSvc := workerService.NewWorkerService(db, workerRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, workerRepo, projectRepo)
	importSvc := timeclockService.NewImportService(
		workerRepo,
		projectRepo,
		attendanceRepo,
		runLogRepo,
		punchfile.NewLocalSource(),
		cfg.Timeclock,
	)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, workerRepo, attendanceRepo, runLogRepo)
	masterSvc := master.NewMasterService(projectRepo, runLogRepo)

	workerHandler := appHTTP.NewWorkerHandler(workerSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	timeclockHandler := appHTTP.NewTimeclockHandler(importSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)

	router := appHTTP.NewRouter(
		cfg.App,
		jwtService,
		workerHandler,
		attendanceHandler,
		timeclockHandler,
		payrollHandler,
		masterHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
