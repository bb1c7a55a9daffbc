package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/formbridge/formbridge/internal/config"
	"github.com/formbridge/formbridge/internal/migration"
	"github.com/formbridge/formbridge/internal/notify"
	"github.com/formbridge/formbridge/internal/observability"
	obsmiddleware "github.com/formbridge/formbridge/internal/observability/logger"
	obsmetrics "github.com/formbridge/formbridge/internal/observability/metrics"
	obstracing "github.com/formbridge/formbridge/internal/observability/tracing"
	"github.com/formbridge/formbridge/internal/ratelimit"
	"github.com/formbridge/formbridge/internal/submission"
	submissiondomain "github.com/formbridge/formbridge/internal/submission/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	migration.Module,
	notify.Module,
	ratelimit.Module,
	submission.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	log           *zap.Logger
	submissionSvc submissiondomain.Service
	limiter       ratelimit.Limiter
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	Log           *zap.Logger
	SubmissionSvc submissiondomain.Service
	Limiter       ratelimit.Limiter
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		log:           p.Log.Named("server"),
		submissionSvc: p.SubmissionSvc,
		limiter:       p.Limiter,
	}

	svc.registerAPIRoutes()
	svc.registerUIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(ratelimit.GinMiddleware(s.limiter, s.log))

	api.POST("/submit-form", s.SubmitForm)
	api.GET("/submissions", s.ListSubmissions)
	api.GET("/export-csv", s.ExportCSV)
}

func (s *Server) registerUIRoutes() {
	if s.cfg.IsProduction() {
		s.engine.GET("/", serveIndex)
		return
	}

	// Development has no built frontend; the root answers with a
	// quick service directory instead.
	s.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "FormBridge API server is running",
			"endpoints": gin.H{
				"submit":      "POST /api/submit-form",
				"submissions": "GET /api/submissions",
				"export":      "GET /api/export-csv",
			},
		})
	})
}

func (s *Server) registerFallback() {
	if !s.cfg.IsProduction() {
		return
	}

	s.engine.NoRoute(func(c *gin.Context) {
		// static assets
		if path, ok := staticFilePath("./public", c.Request.URL.Path); ok {
			c.File(path)
			return
		}

		// SPA fallback
		c.File("./public/index.html")
	})
}

func serveIndex(c *gin.Context) {
	c.File("./public/index.html")
}

// staticFilePath resolves a request path inside the public dir and
// reports whether it names a regular file. The returned path is the
// one that was checked, rooted so ".." segments cannot escape.
func staticFilePath(publicDir, reqPath string) (string, bool) {
	clean := filepath.Clean("/" + reqPath)
	if clean == "/" {
		return "", false
	}

	fullPath := filepath.Join(publicDir, clean)

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return "", false
	}

	return fullPath, true
}
