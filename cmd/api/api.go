package main

import (
	"net/http"
	"time"

	"github.com/dewoprasetyo/olist-insights/internal/dataset"
	"github.com/dewoprasetyo/olist-insights/internal/logger"
	"github.com/dewoprasetyo/olist-insights/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type application struct {
	config   config
	logger   *logger.Logger
	data     *dataset.Dataset
	pipeline *pipeline.Pipeline
}

type config struct {
	addr     string
	logLevel string
	backend  string
	csvPath  string
	db       dbConfig
}

type dbConfig struct {
	addr         string
	table        string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/filters/options", app.handleGetFilterOptions)
		r.Get("/metrics/summary", app.handleGetSummary)
		r.Get("/trends/monthly", app.handleGetMonthlyTrends)
		r.Route("/customers", func(r chi.Router) {
			r.Get("/by-city", app.handleGetCustomersByCity)
			r.Get("/by-payment", app.handleGetCustomersByPayment)
			r.Get("/by-category", app.handleGetCustomersByCategory)
			r.Get("/by-review", app.handleGetCustomersByReview)
			r.Get("/frequency", app.handleGetPurchaseFrequency)
		})
		r.Route("/rfm", func(r chi.Router) {
			r.Get("/", app.handleGetRFM)
			r.Get("/summary", app.handleGetRFMSummary)
			r.Get("/segments", app.handleGetRFMSegments)
		})
		r.Get("/shipping/times", app.handleGetShippingTimes)
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info("Server", "Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
