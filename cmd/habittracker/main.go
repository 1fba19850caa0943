package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habit-tracker/internal/api"
	"habit-tracker/internal/bot"
	"habit-tracker/internal/calendar"
	"habit-tracker/internal/config"
	"habit-tracker/internal/logger"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(cfg.Development); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout)
	habitSvc := service.NewHabitService(client)
	agendaSvc := service.NewAgendaService(habitSvc)
	projector := calendar.NewProjector(client)

	telegramBot, err := bot.New(cfg.TelegramToken, userRepo, settingRepo, habitSvc, agendaSvc, projector, &cfg)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	scheduler := service.NewSchedulerService(time.Local)
	report := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := telegramBot.SendDailyReports(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("report: %v", err)
		}
	}
	switch {
	case cfg.ReportTime != "":
		if _, err := scheduler.ScheduleDaily(cfg.ReportTime, report); err != nil {
			log.Fatalf("schedule daily report: %v", err)
		}
	case cfg.ReportInterval > 0:
		// The job runs on a short check cadence and decides per chat whether
		// the configured interval (or a /interval override) has elapsed.
		tick := cfg.ReportInterval
		if tick > time.Hour {
			tick = time.Hour
		}
		if _, err := scheduler.ScheduleInterval(tick, report); err != nil {
			log.Fatalf("schedule reports: %v", err)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Habit tracker bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
