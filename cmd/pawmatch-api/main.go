// README: Entry point; loads config, wires services, starts HTTP server and background tickers.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pawmatch/internal/config"
	httptransport "pawmatch/internal/http"
	"pawmatch/internal/infra"
	"pawmatch/internal/modules/assignment"
	"pawmatch/internal/modules/matching"
	"pawmatch/internal/modules/owner"
	"pawmatch/internal/modules/recommend"
	"pawmatch/internal/modules/reputation"
	"pawmatch/internal/modules/request"
	"pawmatch/internal/modules/review"
	"pawmatch/internal/modules/walker"
)

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	walkerStore := walker.NewStore(dbPool)
	walkerGeo := walker.NewGeoStore(redisClient)
	ownerStore := owner.NewStore(dbPool)
	reviewStore := review.NewStore(dbPool)
	requestStore := request.NewStore(dbPool)
	recommendStore := recommend.NewStore(dbPool)

	requestSvc := request.NewService(requestStore, walkerStore, cfg.Engine.Value)

	scorer := matching.NewScorer(cfg.Engine.Weights, cfg.Engine.Baselines)
	matchingSvc := matching.NewService(scorer, walkerStore, walkerGeo, ownerStore, requestStore, cfg.Engine.Matching)

	assignmentSvc := assignment.NewService(requestStore, walkerStore, ownerStore, scorer, cfg.Engine.Assignment)

	estimator := reputation.NewEstimator(cfg.Engine.Reputation)
	reputationSvc := reputation.NewService(reviewStore, walkerStore, estimator)

	recommendSvc := recommend.NewService(recommendStore, cfg.Engine.Recommend)

	walkerSvc := walker.NewService(walkerStore, walkerGeo)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Requests:   requestSvc,
		Matching:   matchingSvc,
		Assignment: assignmentSvc,
		Recommend:  recommendSvc,
		Reputation: reputationSvc,
		Walkers:    walkerSvc,
		JWTSecret:  cfg.Auth.JWTSecret,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go assignmentSvc.RunSweeper(ctx, time.Duration(cfg.Background.AssignmentSweepSeconds)*time.Second)
	go reputationSvc.RunRefreshTicker(ctx, time.Duration(cfg.Background.ReputationRefreshSeconds)*time.Second)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("pawmatch api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
