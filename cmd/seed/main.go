package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/google/uuid"
	"github.com/samarqand/backoffice-go/internal/config"
	"github.com/samarqand/backoffice-go/internal/domain/attendance"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/samarqand/backoffice-go/internal/pkg/database"
	"github.com/samarqand/backoffice-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

// Seeds a development database with a project registry, a mixed roster and
// one month of attendance so the import and generation endpoints have data
// to work against.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	ctx := context.Background()
	workerRepo := postgresql.NewWorkerRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	projectIDs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		_, err := db.Pool.Exec(ctx,
			`INSERT INTO projects (id, name, active) VALUES ($1, $2, true)`,
			id, fmt.Sprintf("%s site", gofakeit.Company()),
		)
		if err != nil {
			log.Fatal("Error seeding project: ", err)
		}
		projectIDs = append(projectIDs, id)
	}

	workers := make([]worker.Worker, 0, 20)
	for i := 0; i < 20; i++ {
		w := worker.Worker{
			Kind:   worker.KindWorker,
			Active: true,
			Name:   gofakeit.Name(),
		}

		// Half the roster punches a physical clock.
		if i%2 == 0 {
			clockID := fmt.Sprintf("TC-%04d", gofakeit.Number(1000, 9999)+i)
			w.TimeClockID = &clockID
		}

		if i%3 == 0 {
			w.Kind = worker.KindEmployee
			salary := decimal.NewFromInt(int64(gofakeit.Number(2000, 6000)))
			w.MonthlySalary = &salary
		} else {
			cost := decimal.NewFromInt(int64(gofakeit.Number(80, 200)))
			w.DailyCost = &cost
		}

		created, err := workerRepo.Create(ctx, w)
		if err != nil {
			log.Fatal("Error seeding worker: ", err)
		}
		workers = append(workers, created)
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	statuses := []attendance.Status{
		attendance.StatusPresent,
		attendance.StatusPresent,
		attendance.StatusPresent,
		attendance.StatusHalfDay,
		attendance.StatusAbsent,
		attendance.StatusLeave,
	}

	records := 0
	for _, w := range workers {
		for day := monthStart; day.Before(now); day = day.AddDate(0, 0, 1) {
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				continue
			}

			status := statuses[gofakeit.Number(0, len(statuses)-1)]
			rec := attendance.AttendanceRecord{
				WorkerID: w.ID,
				Date:     day,
				Status:   status,
			}
			if status == attendance.StatusPresent {
				hours := decimal.NewFromInt(8)
				rec.Hours = &hours
				projectID := projectIDs[gofakeit.Number(0, len(projectIDs)-1)]
				rec.ProjectID = &projectID
			}

			if _, _, err := attendanceRepo.Upsert(ctx, rec); err != nil {
				log.Fatal("Error seeding attendance: ", err)
			}
			records++
		}
	}

	fmt.Printf("Seeded %d projects, %d workers, %d attendance records\n",
		len(projectIDs), len(workers), records)
}
