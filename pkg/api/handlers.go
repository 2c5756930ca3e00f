package api

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ja7ad/bouncy/pkg/bounce"
	"github.com/ja7ad/bouncy/pkg/metrics"
)

var startTime = time.Now()

const (
	Version = "1.0.0"

	// MaxPasses caps the bounce loop length a single request may ask for.
	MaxPasses = 1_000_000
	// MaxPoints caps the number of trajectory samples in one response.
	MaxPoints = 200_000
)

var (
	ErrTooManyPasses = errors.New("api: drop needs too many bounces to simulate")
	ErrTooManyPoints = errors.New("api: trajectory has too many points")
)

type bouncesResponse struct {
	Bounces   int     `json:"bounces"`
	TotalTime float64 `json:"total_time"`
	Gravity   float64 `json:"gravity"`
}

type trajectoryResponse struct {
	bouncesResponse
	Duration float64        `json:"duration"`
	Points   []bounce.Point `json:"points"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// HealthCheck returns server health status
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "bouncy",
		"version": Version,
		"uptime":  time.Since(startTime).String(),
	})
}

// Bounces counts the bounces of the drop described by the JSON body.
func Bounces(m *bounce.Model, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := bindParams(c, log)
		if !ok {
			return
		}
		r, err := m.Simulate(p)
		if err != nil {
			reject(c, log, err)
			return
		}
		metrics.ObserveSimulation("bounces", r.Bounces)
		c.JSON(http.StatusOK, bouncesResponse{Bounces: r.Bounces, TotalTime: r.TotalTime, Gravity: r.Gravity})
	}
}

// Trajectory returns the counted bounces plus the sampled trajectory.
func Trajectory(m *bounce.Model, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := bindParams(c, log)
		if !ok {
			return
		}
		r, err := m.Simulate(p)
		if err != nil {
			reject(c, log, err)
			return
		}
		// one fall and one rise per pass, plus the final fall
		if n := m.Config().Samples * (2*(r.Bounces+1) + 1); n > MaxPoints {
			reject(c, log, ErrTooManyPoints)
			return
		}

		pts := m.Trajectory(p)
		metrics.ObserveSimulation("trajectory", r.Bounces)
		c.JSON(http.StatusOK, trajectoryResponse{
			bouncesResponse: bouncesResponse{Bounces: r.Bounces, TotalTime: r.TotalTime, Gravity: r.Gravity},
			Duration:        pts[len(pts)-1].Time,
			Points:          pts,
		})
	}
}

func bindParams(c *gin.Context, log *slog.Logger) (bounce.Params, bool) {
	var p bounce.Params
	if err := c.ShouldBindJSON(&p); err != nil {
		log.Debug("bad request body", "path", c.FullPath(), "err", err)
		metrics.ObserveRejected("body")
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return p, false
	}
	if err := p.Validate(); err != nil {
		reject(c, log, err)
		return p, false
	}
	// ln(h_min/h)/ln(eta) passes until the apex drops below h_min
	if passes := math.Log(p.HeightMin/p.Height) / math.Log(p.Eta); passes > MaxPasses {
		reject(c, log, ErrTooManyPasses)
		return p, false
	}
	return p, true
}

func reject(c *gin.Context, log *slog.Logger, err error) {
	field := fieldOf(err)
	log.Debug("rejected request", "path", c.FullPath(), "field", field, "err", err)
	metrics.ObserveRejected(field)
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Field: field})
}

func fieldOf(err error) string {
	switch {
	case errors.Is(err, bounce.ErrHeight):
		return "height"
	case errors.Is(err, bounce.ErrHeightMin), errors.Is(err, ErrTooManyPasses), errors.Is(err, ErrTooManyPoints):
		return "height_min"
	case errors.Is(err, bounce.ErrEta):
		return "eta"
	default:
		return ""
	}
}
