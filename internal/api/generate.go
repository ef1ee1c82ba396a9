package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quoteforge/internal/service/generator"
)

// corsMiddleware answers preflight requests and marks the generation
// endpoints callable from any origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

type generateQuoteRequest struct {
	Text         string              `json:"text"`
	Files        []generator.FileRef `json:"files"`
	Directions   string              `json:"directions"`
	Model        string              `json:"model"`
	SystemPrompt string              `json:"systemPrompt"`
}

// generateQuote always answers 200 with a quote. Any failure, including a
// malformed body, degrades to the fallback sentence so the caller never has
// to branch on errors.
func (h *Handler) generateQuote(c *gin.Context) {
	var req generateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid quote request body", "err", err)
		c.JSON(http.StatusOK, gin.H{"quote": generator.FallbackQuote})
		return
	}
	quote := h.generator.GenerateQuote(c.Request.Context(), generator.QuoteRequest{
		Text:         req.Text,
		Files:        req.Files,
		Directions:   req.Directions,
		Model:        req.Model,
		SystemPrompt: req.SystemPrompt,
	})
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

type generatePromptRequest struct {
	Text         string `json:"text"`
	Directions   string `json:"directions"`
	Model        string `json:"model"`
	SystemPrompt string `json:"systemPrompt"`
}

// generateFluxPrompt surfaces failures to the caller, unlike the quote
// endpoint: bad input is 400, an unreachable or failing model is 502.
func (h *Handler) generateFluxPrompt(c *gin.Context) {
	var req generatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	prompt, err := h.generator.GeneratePrompt(c.Request.Context(), generator.PromptRequest{
		Text:         req.Text,
		Directions:   req.Directions,
		Model:        req.Model,
		SystemPrompt: req.SystemPrompt,
	})
	if err != nil {
		if errors.Is(err, generator.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var upstream *generator.UpstreamError
		if errors.As(err, &upstream) || errors.Is(err, generator.ErrUpstreamUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate prompt"})
	} else {
		c.JSON(http.StatusOK, gin.H{"prompt": prompt})
	}
}
