package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/resolve"
	"github.com/claimlens/claimlens/internal/store"
)

// submitRequest is the body of POST /api/fact-check. Exactly one of the
// inputs is effective: text wins over image, image wins over url.
type submitRequest struct {
	Text        string `json:"text"`
	Image       string `json:"image"`
	ImageFormat string `json:"imageFormat"`
	URL         string `json:"url"`
}

type submitResponse struct {
	RequestID     string `json:"requestId"`
	Status        string `json:"status"`
	EstimatedTime string `json:"estimatedTime"`
	ResultURL     string `json:"resultUrl"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	text, err := s.resolver.Resolve(c.Request.Context(), resolve.Input{
		Text:        req.Text,
		ImageBase64: req.Image,
		ImageFormat: req.ImageFormat,
		PostURL:     req.URL,
	})
	if err != nil {
		var rerr *resolve.Error
		if errors.As(err, &rerr) {
			s.log.Infow("resolution rejected", "stage", rerr.Stage, "reason", rerr.Message)
			c.JSON(http.StatusBadRequest, errorResponse{Error: clientMessage(rerr)})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "text resolution failed"})
		return
	}

	if len(text) > s.cfg.MaxTextLength {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error: "post text exceeds the maximum supported length",
		})
		return
	}

	accepted, err := s.pipeline.Submit(c.Request.Context(), pipeline.Request{
		Text:      text,
		SourceURL: req.URL,
	})
	if err != nil {
		s.log.Errorw("submit failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to accept request"})
		return
	}

	c.JSON(http.StatusOK, submitResponse{
		RequestID:     accepted.RequestID,
		Status:        "processing",
		EstimatedTime: "30-60 seconds",
		ResultURL:     accepted.ResultURL,
	})
}

func (s *Server) handleResult(c *gin.Context) {
	id := c.Param("id")

	result, err := s.store.Get(c.Request.Context(), id)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, errorResponse{Error: "no result for this request ID"})
		return
	}
	if err != nil {
		s.log.Errorw("result lookup failed", "requestID", id, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load result"})
		return
	}

	// Terminal results never change again; allow short client caching.
	if result.Status == model.StatusProcessing {
		c.Header("Cache-Control", "no-store")
	} else {
		c.Header("Cache-Control", "public, max-age=60")
	}

	c.JSON(http.StatusOK, result)
}

// clientMessage maps a typed resolution failure to the short diagnostic the
// caller sees. Stage detail stays in the logs.
func clientMessage(err *resolve.Error) string {
	switch err.Stage {
	case resolve.StageImage:
		return "unable to read post text from the image"
	case resolve.StageURL:
		return "unable to extract tweet content; please enter the post text manually"
	default:
		return "no post text was provided"
	}
}
