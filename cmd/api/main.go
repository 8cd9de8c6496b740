package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/taskhive/taskhive-backend/internal/config"
	"github.com/taskhive/taskhive-backend/internal/logging"
	"github.com/taskhive/taskhive-backend/internal/repository/postgres"
	"github.com/taskhive/taskhive-backend/internal/service"
	transporthttp "github.com/taskhive/taskhive-backend/internal/transport/http"
	"github.com/taskhive/taskhive-backend/internal/transport/mail"
	"github.com/taskhive/taskhive-backend/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	ctx := context.Background()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	taskRepo := postgres.NewTaskRepo(db)

	mailer := mail.NewOTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	authService := service.NewAuthService(userRepo, mailer, jwtManager, cfg.GoogleAudience, cfg.OTPTTL)
	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo)
	paymentService := service.NewPaymentService(cfg.RazorpayKeyID, cfg.RazorpaySecret)

	if cfg.OTPSweepInterval > 0 {
		go authService.RunOTPSweeper(ctx, cfg.OTPSweepInterval)
	}

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterUsers(e, authService, userService)
	transporthttp.RegisterTasks(e, authService, taskService)
	transporthttp.RegisterPayments(e, paymentService)
	transporthttp.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
