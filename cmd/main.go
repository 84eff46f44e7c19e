package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockSlotHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/get_booking"
	getCustomerHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/get_customer"
	getCustomerBookingsHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/get_customer_bookings"
	getProfessionalAgendaHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/get_professional_agenda"
	rescheduleBookingHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/reschedule_booking"
	topServicesHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/top_services"
	touchContactHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/touch_contact"
	unblockSlotHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/unblock_slot"
	updateBookingStatusHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/update_booking_status"
	updateConsentHandler "github.com/barberbot-br/BookingCore/internal/api/handlers/update_consent"
	"github.com/barberbot-br/BookingCore/internal/api/middleware"
	"github.com/barberbot-br/BookingCore/internal/config"
	bookingRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/booking"
	customerRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/customer"
	slotRepo "github.com/barberbot-br/BookingCore/internal/infra/storage/slot"
	notifyClient "github.com/barberbot-br/BookingCore/internal/integrations/notify"
	professionalsClient "github.com/barberbot-br/BookingCore/internal/integrations/professionals"
	bookingsService "github.com/barberbot-br/BookingCore/internal/service/bookings"
	customersService "github.com/barberbot-br/BookingCore/internal/service/customers"
	reportsService "github.com/barberbot-br/BookingCore/internal/service/reports"
	scheduleService "github.com/barberbot-br/BookingCore/internal/service/schedule"
	"github.com/barberbot-br/BookingCore/internal/timeslot"
	cancelBookingUC "github.com/barberbot-br/BookingCore/internal/usecase/cancel_booking"
	createBookingUC "github.com/barberbot-br/BookingCore/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/barberbot-br/BookingCore/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/barberbot-br/BookingCore/internal/usecase/reschedule_booking"
	"github.com/barberbot-br/BookingCore/pkg/dbmetrics"
	"github.com/barberbot-br/BookingCore/pkg/logger"
	"github.com/barberbot-br/BookingCore/pkg/metrics"
	"github.com/barberbot-br/BookingCore/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting BookingCore...")
	log.Info("Configuration loaded from config.toml")

	// Static business window: timezone, opening hours, slot grid
	window, err := timeslot.NewWindow(
		cfg.Business.Timezone,
		cfg.Business.OpenTime,
		cfg.Business.CloseTime,
		cfg.Business.SlotMinutes,
		cfg.Business.ClosedWeekday,
	)
	if err != nil {
		log.Fatal("Failed to build business window: %v", err)
	}
	log.Info("Business window: %s-%s %s, %d-minute slots, closed on weekday %d",
		cfg.Business.OpenTime, cfg.Business.CloseTime, cfg.Business.Timezone,
		cfg.Business.SlotMinutes, cfg.Business.ClosedWeekday)

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Integration clients
	directory := professionalsClient.NewClient(
		cfg.Professionals.URL,
		time.Duration(cfg.Professionals.Timeout)*time.Second,
		log,
	)
	notifier := notifyClient.NewClient(
		cfg.Notify.URL,
		time.Duration(cfg.Notify.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (professionals=%s timeout=%ds, notify=%s timeout=%ds)",
		cfg.Professionals.URL, cfg.Professionals.Timeout, cfg.Notify.URL, cfg.Notify.Timeout)

	// Executor used by repositories and the transaction manager: either the
	// metrics-observing wrapper or the plain adapter.
	var executor interface {
		dbmetrics.DBExecutor
		dbmetrics.TxBeginner
	}
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		executor = dbmetrics.Std(db)
	}

	slotRepository := slotRepo.NewRepository(executor)
	bookingRepository := bookingRepo.NewRepository(executor)
	customerRepository := customerRepo.NewRepository(executor)
	txMgr := txmanager.NewTransactionManager(executor)

	// Services
	bookingSvc := bookingsService.NewService(bookingRepository, customerRepository, txMgr, log)
	customerSvc := customersService.NewService(customerRepository, log)
	scheduleSvc := scheduleService.NewService(slotRepository, txMgr, window, log)
	reportSvc := reportsService.NewService(bookingRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		customerRepository,
		directory,
		notifier,
		txMgr,
		window,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		customerRepository,
		notifier,
		txMgr,
		window,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		notifier,
		txMgr,
		window,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(slotRepository, window, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, window.Location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getProfessionalAgenda := getProfessionalAgendaHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomer := getCustomerHandler.NewHandler(customerSvc, log)
	updateConsent := updateConsentHandler.NewHandler(customerSvc, log)
	touchContact := touchContactHandler.NewHandler(customerSvc, log)
	blockSlot := blockSlotHandler.NewHandler(scheduleSvc, log)
	unblockSlot := unblockSlotHandler.NewHandler(scheduleSvc, log)
	topServices := topServicesHandler.NewHandler(reportSvc, log)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Protected routes (require X-Client-ID header)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Bookings
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Customers
	protected.HandleFunc("/customers/{customerId}", getCustomer.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}/consent", updateConsent.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/customers/{customerId}/contact", touchContact.Handle).Methods(http.MethodPost)

	// Professional schedule management
	protected.HandleFunc("/professionals/{professionalId}/agenda", getProfessionalAgenda.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/blocks", blockSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/professionals/{professionalId}/blocks", unblockSlot.Handle).Methods(http.MethodDelete)

	// Reports
	protected.HandleFunc("/reports/top-services", topServices.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
