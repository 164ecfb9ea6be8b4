package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/iyouport-org/sspanel/pkg/config"
	"github.com/iyouport-org/sspanel/pkg/store"
	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"go.uber.org/fx"
)

type Server struct {
	repo   *store.Repository
	conf   *config.WebGo
	cache  *cache.Cache
	engine *gin.Engine
	http   *http.Server
	now    func() time.Time
}

func New(repo *store.Repository, conf *config.WebGo) *Server {
	if conf.Mode != "" {
		gin.SetMode(conf.Mode)
	}
	server := &Server{
		repo:   repo,
		conf:   conf,
		engine: gin.New(),
		now:    time.Now,
	}
	if conf.StatsTTL > 0 {
		server.cache = cache.New(conf.StatsTTL, 2*conf.StatsTTL)
	}
	server.engine.Use(gin.Recovery(), requestLogger())
	if conf.Gzip {
		server.engine.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	server.routes()
	server.http = &http.Server{
		Addr:              conf.Addr,
		Handler:           server.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return server
}

// NewServer ties the HTTP listener to the fx lifecycle.
func NewServer(lc fx.Lifecycle, conf *config.ConfigGo, repo *store.Repository) *Server {
	server := New(repo, conf.Web)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.http.Addr)
			if err != nil {
				log.WithField("web.listen", server.http.Addr).Error(err)
				return err
			}
			log.WithField("addr", ln.Addr().String()).Info("server start")
			go func() {
				if err := server.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("server shutdown")
			return server.http.Shutdown(ctx)
		},
	})
	return server
}

func (server *Server) Handler() http.Handler {
	return server.engine
}

func (server *Server) routes() {
	api := server.engine.Group("/api")

	api.POST("/accounts", server.PostAccount)
	api.GET("/accounts/:id", server.GetAccount)
	api.POST("/accounts/:id/checkin", server.PostCheckIn)
	api.GET("/accounts/:id/subscription", server.GetSubscription)

	api.GET("/nodes", server.GetNodes)
	api.POST("/nodes", server.PostNode)
	api.GET("/nodes/:node_id", server.GetNode)
	api.GET("/nodes/:node_id/traffic", server.GetNodeTraffic)
	api.POST("/nodes/:node_id/traffic", server.PostNodeTraffic)
	api.POST("/nodes/:node_id/info", server.PostNodeInfo)
	api.POST("/nodes/:node_id/online", server.PostNodeOnline)

	api.GET("/stats", server.GetStats)
	api.GET("/logs", server.GetLogs)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": float64(time.Since(start).Nanoseconds()) / 1e6,
			"client":   c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request")
	}
}
