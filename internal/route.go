package internal

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/riskbases/riskbases/docs"
	"github.com/riskbases/riskbases/internal/handler"
	"github.com/riskbases/riskbases/internal/middleware"
	"github.com/riskbases/riskbases/pkg/config"
	"github.com/riskbases/riskbases/pkg/metrics"
)

const apiPrefix = "/v1"

type Backend struct {
	R *gin.Engine
}

func Register(conf *handler.RegisterConfig) *Backend {
	s := new(Backend)
	s.R = gin.Default()
	s.R.Use(metrics.RequestObserver())

	// Health check for the ingress
	s.R.GET("/v1/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "ok",
		})
	})
	s.R.GET("/metrics", metrics.Handler())

	s.registerService(conf)

	// Swagger
	docs.SwaggerInfo.BasePath = "/"
	s.R.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return s
}

func (b *Backend) registerService(conf *handler.RegisterConfig) {
	// Enable CORS for the frontend origin in debug mode
	if gin.Mode() == gin.DebugMode {
		fe := config.GetConfig().Frontend.BaseURL
		if fe != "" {
			corsConf := cors.DefaultConfig()
			corsConf.AllowOrigins = []string{fe}
			corsConf.AllowHeaders = append(corsConf.AllowHeaders, "Authorization")
			b.R.Use(cors.New(corsConf))
		}
	}

	managers := registerManagers(conf)

	publicRouter := b.R.Group(apiPrefix)

	protectedRouter := b.R.Group(apiPrefix)
	protectedRouter.Use(middleware.AuthProtected())

	adminRouter := b.R.Group(apiPrefix + "/admin")
	adminRouter.Use(middleware.AuthProtected(), middleware.AuthAdmin())

	// Managers sharing a name share the route group prefix.
	for _, mgr := range managers {
		mgr.RegisterPublic(publicRouter.Group(mgr.GetName()))
		mgr.RegisterProtected(protectedRouter.Group(mgr.GetName()))
		mgr.RegisterAdmin(adminRouter.Group(mgr.GetName()))
	}
}
