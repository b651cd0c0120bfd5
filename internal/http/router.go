// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pawmatch/internal/http/handlers"
	"pawmatch/internal/http/middleware"
	"pawmatch/internal/modules/assignment"
	"pawmatch/internal/modules/matching"
	"pawmatch/internal/modules/recommend"
	"pawmatch/internal/modules/reputation"
	"pawmatch/internal/modules/request"
	"pawmatch/internal/modules/walker"
)

type RouterDeps struct {
	Requests   *request.Service
	Matching   *matching.Service
	Assignment *assignment.Service
	Recommend  *recommend.Service
	Reputation *reputation.Service
	Walkers    *walker.Service

	// JWTSecret enables bearer auth on the API group when non-empty.
	JWTSecret string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(middleware.Auth([]byte(deps.JWTSecret)))
	}

	requestHandler := handlers.NewRequestHandler(deps.Requests)
	api.POST("/requests", requestHandler.Create)
	api.GET("/requests/:id", requestHandler.Get)
	api.POST("/requests/:id/accept", requestHandler.Accept)
	api.POST("/requests/:id/complete", requestHandler.Complete)
	api.POST("/requests/:id/cancel", requestHandler.Cancel)

	matchHandler := handlers.NewMatchHandler(deps.Matching)
	api.GET("/requests/:id/matches", matchHandler.Matches)

	scheduleHandler := handlers.NewScheduleHandler(deps.Requests)
	api.GET("/walkers/:id/schedule/optimal", scheduleHandler.OptimalSchedule)
	api.POST("/walkers/:id/conflicts", scheduleHandler.CheckConflicts)

	assignmentHandler := handlers.NewAssignmentHandler(deps.Assignment)
	api.POST("/assignments", assignmentHandler.Sweep)

	recommendHandler := handlers.NewRecommendHandler(deps.Recommend)
	api.GET("/owners/:id/recommendations", recommendHandler.WalkersForOwner)
	api.GET("/walkers/:id/recommendations", recommendHandler.OwnersForWalker)

	reputationHandler := handlers.NewReputationHandler(deps.Reputation)
	api.GET("/walkers/:id/reputation", reputationHandler.Report)

	walkerHandler := handlers.NewWalkerHandler(deps.Walkers)
	api.PUT("/walkers/:id/location", walkerHandler.UpdateLocation)
	api.POST("/walkers/:id/availability", walkerHandler.SetAvailability)

	return r
}
