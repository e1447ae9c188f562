// Package server exposes the detection pipeline over HTTP. It is a thin
// machine-readable surface: one detect operation plus liveness. Rendering
// and capture stay with the clients.
package server

import (
	"github.com/gin-gonic/gin"

	"github.com/platesight/platesight/internal/pipeline"
)

// NewRouter builds the HTTP routing table around a pipeline. The pipeline
// is shared across requests; it is stateless per frame, so concurrent
// requests are fine as long as the OCR engine is.
func NewRouter(pipe *pipeline.Pipeline) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", Health)

	v1 := router.Group("/api/v1")
	{
		detect := NewDetectHandler(pipe)
		v1.POST("/detect", detect.Detect)
	}

	return router
}
