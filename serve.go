package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	httpLayer "mortcalc/http"
	"mortcalc/repository"
	"mortcalc/service"
)

func runServe(cctx *cli.Context) error {
	calc, err := calculatorFromFlags(policyLookup(cctx))
	if err != nil {
		return err
	}

	paymentRepo := repository.NewPaymentRepositoryMemory()

	cache, closeCache, err := newCache(cctx.String("redis-addr"), cctx.Duration("cache-ttl"))
	if err != nil {
		return err
	}
	defer closeCache()

	paymentService := service.NewPaymentService(calc, paymentRepo, cache)
	paymentHandler := httpLayer.NewPaymentHandler(paymentService)

	termComparisonService := service.NewTermComparisonService(paymentService)
	termComparisonHandler := httpLayer.NewTermComparisonHandler(termComparisonService)

	rateLimiter := httpLayer.NewRateLimiter(cctx.Int("rate-limit"), time.Minute)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/payment/calculate",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(paymentHandler.CalculatePayment),
		),
	)

	mux.Handle(
		"/payment/compare-terms",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(termComparisonHandler.CompareTerms),
		),
	)

	addr := cctx.String("addr")
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("mortcalc API listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Printf("Server exited after %d calculations", len(paymentService.History()))
	return nil
}

// newCache returns a Redis-backed cache when addr is set and an in-memory
// one otherwise.
func newCache(addr string, ttl time.Duration) (repository.CacheRepository, func(), error) {
	if addr == "" {
		return repository.NewMockCache(), func() {}, nil
	}

	cache := repository.NewRedisCache(addr, ttl)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		cache.Close()
		return nil, nil, err
	}
	log.Printf("Caching results in Redis at %s", addr)

	return cache, func() {
		if err := cache.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}, nil
}
