package server

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platesight/platesight/internal/imaging"
	"github.com/platesight/platesight/internal/pipeline"
	"github.com/platesight/platesight/internal/plates"
)

// DetectHandler serves single-frame plate detection over HTTP.
type DetectHandler struct {
	pipe *pipeline.Pipeline
}

// NewDetectHandler wraps a pipeline for HTTP use.
func NewDetectHandler(pipe *pipeline.Pipeline) *DetectHandler {
	return &DetectHandler{pipe: pipe}
}

// DetectRequest is the detection payload: a base64-encoded image frame.
type DetectRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// DetectResponse carries the detections for one frame. AnnotatedBase64 is
// only populated when annotation is requested.
type DetectResponse struct {
	Plates          []plates.DetectedPlate `json:"plates"`
	Count           int                    `json:"count"`
	Width           int                    `json:"width"`
	Height          int                    `json:"height"`
	AnnotatedBase64 string                 `json:"annotated_base64,omitempty"`
}

// Detect handles POST /api/v1/detect.
//
// The frame arrives base64-encoded in the JSON body; pass ?annotate=1 to
// get the annotated frame back as base64 PNG. Undecodable payloads are the
// client's fault (400); an OCR engine failure is ours (500).
func (h *DetectHandler) Detect(c *gin.Context) {
	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid base64 image data"})
		return
	}

	frame, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "undecodable image"})
		return
	}

	result, err := h.pipe.ProcessFrame(frame)
	if err != nil {
		log.Printf("detect: frame processing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "frame processing failed", "details": err.Error()})
		return
	}

	resp := DetectResponse{
		Plates: result.Plates,
		Count:  len(result.Plates),
		Width:  frame.Bounds().Dx(),
		Height: frame.Bounds().Dy(),
	}

	if c.Query("annotate") == "1" {
		var buf bytes.Buffer
		if err := png.Encode(&buf, result.Annotated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode annotated frame"})
			return
		}
		resp.AnnotatedBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	}

	c.JSON(http.StatusOK, resp)
}

// Health handles GET /healthz.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
