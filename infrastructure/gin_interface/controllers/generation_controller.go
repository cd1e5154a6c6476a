package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"sport-reel-generator/application/ports/inbound"
	"sport-reel-generator/application/ports/outbound"
	"sport-reel-generator/domain"
	"sport-reel-generator/infrastructure/gin_interface/dto"

	"github.com/gin-gonic/gin"
)

// bodyOverhead leaves room for the sport field and JSON framing around the encoded photo.
const bodyOverhead = 64 * 1024

type GenerationController interface {
	Generate(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type generationController struct {
	logger        outbound.LoggerPort
	assetPipeline inbound.AssetPipelinePort
	maxPhotoBytes int64
}

func NewGenerationController(
	logger outbound.LoggerPort,
	assetPipeline inbound.AssetPipelinePort,
	maxPhotoBytes int64,
) GenerationController {
	return &generationController{
		logger:        logger,
		assetPipeline: assetPipeline,
		maxPhotoBytes: maxPhotoBytes,
	}
}

func (g *generationController) Generate(c *gin.Context) {
	if g.maxPhotoBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, base64Len(g.maxPhotoBytes)+bodyOverhead)
	}

	var generateRequest dto.GenerateRequest
	if err := c.ShouldBindJSON(&generateRequest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithPipelineError(c, g.logger, g.photoTooLarge())
			return
		}
		abortWithPipelineError(c, g.logger, domain.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	photo, err := generateRequest.DecodePhoto()
	if err != nil {
		abortWithPipelineError(c, g.logger, domain.NewValidationError(err.Error()))
		return
	}
	if g.maxPhotoBytes > 0 && int64(len(photo)) > g.maxPhotoBytes {
		abortWithPipelineError(c, g.logger, g.photoTooLarge())
		return
	}

	res, err := g.assetPipeline.Run(c.Request.Context(), inbound.RunPipelineParams{
		Sport: generateRequest.Sport,
		Photo: photo,
	})
	if err != nil {
		abortWithPipelineError(c, g.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateResponse{
		RequestID:    res.RequestID,
		ScriptURL:    res.ScriptURL,
		VoiceoverURL: res.VoiceoverURL,
		VideoURL:     res.VideoURL,
	})
}

func (g *generationController) photoTooLarge() error {
	return domain.NewValidationError(fmt.Sprintf("photo exceeds %d bytes", g.maxPhotoBytes))
}

func (g *generationController) RegisterRoutes(r *gin.Engine) {
	r.POST("/generate", g.Generate)
}

func base64Len(n int64) int64 {
	return (n + 2) / 3 * 4
}
