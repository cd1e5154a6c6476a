package controllers

import (
	"net/http"
	"sport-reel-generator/application/ports/inbound"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/infrastructure/gin_interface/dto"

	"github.com/gin-gonic/gin"
)

type VideoCatalogController interface {
	ListVideos(c *gin.Context)
	Health(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type videoCatalogController struct {
	logger  outbound.LoggerPort
	catalog inbound.VideoCatalogPort
}

func NewVideoCatalogController(logger outbound.LoggerPort, catalog inbound.VideoCatalogPort) VideoCatalogController {
	return &videoCatalogController{
		logger:  logger,
		catalog: catalog,
	}
}

func (v *videoCatalogController) ListVideos(c *gin.Context) {
	videos, err := v.catalog.ListVideos(c.Request.Context())
	if err != nil {
		abortWithPipelineError(c, v.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.VideosResponse{Videos: videos})
}

func (v *videoCatalogController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (v *videoCatalogController) RegisterRoutes(g *gin.Engine) {
	g.GET("/videos", v.ListVideos)
	g.GET("/health", v.Health)
}
