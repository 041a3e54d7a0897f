package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookwise/bookwise/config"
	repository "github.com/bookwise/bookwise/internal/database/postgres"
	redisdb "github.com/bookwise/bookwise/internal/database/redis"
	"github.com/bookwise/bookwise/internal/entity"
	"github.com/bookwise/bookwise/internal/service"
	"github.com/bookwise/bookwise/internal/transport"
	"github.com/bookwise/bookwise/internal/worker"

	"github.com/bookwise/bookwise/pkg/notifier"
	"github.com/bookwise/bookwise/pkg/postgres"
	"github.com/bookwise/bookwise/pkg/rabbitmq"
	"github.com/bookwise/bookwise/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// Preference cache is optional; the gate falls back to the database.
	var cache *redisdb.CacheRepository
	if cfg.Redis.Host != "" {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		cache = redisdb.NewCacheRepository(redisClient, cfg.Redis.CacheTTL)
		logrus.Info("Preference cache initialized")
	} else {
		logrus.Warn("Redis not configured, preference cache disabled")
	}

	// Delivery queue is optional too; dispatch records are still appended and
	// can be delivered by a later run.
	var queue rabbitmq.Queue
	var taskPublisher service.TaskPublisher
	if cfg.RabbitMQ.URL != "" {
		rmq, err := rabbitmq.NewRabbitMQ(rabbitmq.RabbitMQConfig{
			URL:       cfg.RabbitMQ.URL,
			QueueName: cfg.RabbitMQ.QueueName,
		})
		if err != nil {
			logrus.Errorf("Failed to initialize RabbitMQ: %v. Continuing without delivery queue...", err)
		} else {
			defer rmq.Close()
			queue = rmq
			taskPublisher = service.NewQueueAdapter(rmq)
			logrus.Info("Delivery queue initialized")
		}
	} else {
		logrus.Warn("RabbitMQ not configured, delivery disabled")
	}

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, preferenceRepo, cache, taskPublisher)
	bookingService := service.NewBookingService(bookingRepo, notificationService)
	profileService := service.NewProfileService(profileRepo, preferenceRepo, cache)
	paymentService := service.NewPaymentService(bookingService, cfg.Payment.ProcessingDelay)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start delivery consumer if the queue is available
	if queue != nil {
		senders := map[entity.NotificationChannel]notifier.Sender{
			entity.ChannelEmail: notifier.NewEmailSender(cfg.Notify.EmailGateway, cfg.Notify.SendTimeout),
			entity.ChannelSMS:   notifier.NewSMSSender(cfg.Notify.SMSGateway, cfg.Notify.SendTimeout),
			entity.ChannelPush:  notifier.NewPushSender(cfg.Notify.PushGateway, cfg.Notify.SendTimeout),
		}
		deliveryWorker := worker.NewDeliveryWorker(notificationService, profileRepo, senders, cfg.Notify.SendTimeout)
		if err := queue.Consume(ctx, deliveryWorker.HandleTask); err != nil {
			logrus.Errorf("Queue consumer error: %v", err)
		} else {
			logrus.Info("Delivery consumer started")
		}
	}

	// Start reminder/completion worker
	maintenanceWorker := worker.NewBookingMaintenanceWorker(
		bookingService,
		notificationService,
		bookingRepo,
		notificationRepo,
		cfg.Worker.Interval,
		cfg.Worker.ReminderWindow,
	)
	go maintenanceWorker.Start(ctx)

	// Initialize handlers
	bookingHandler := transport.NewBookingHandler(bookingService, paymentService)
	profileHandler := transport.NewProfileHandler(profileService)
	notificationHandler := transport.NewNotificationHandler(notificationService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		router := transport.InitRoutes(bookingHandler, profileHandler, notificationHandler, cfg.Auth.JWTSecret, cfg.Server.Timeout)
		if err := srv.Run(cfg, router); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
