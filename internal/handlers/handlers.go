// Package handlers registers the storefront's HTTP routes. Each area gets a
// RegisterXRoutes function taking the router and an explicit dependency
// bundle; nothing is reached through globals.
package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seoulstyle/storefront/internal/metrics"
	"github.com/seoulstyle/storefront/internal/session"
	"github.com/seoulstyle/storefront/internal/store"
)

// Config groups the dependencies every route area draws from.
type Config struct {
	Stores   store.Stores
	Sessions *session.Manager
	Metrics  metrics.Publisher
}

// RegisterRoutes wires every area onto the router.
func RegisterRoutes(r *gin.Engine, cfg Config) {
	RegisterAuthRoutes(r, cfg)
	RegisterProductRoutes(r, cfg)
	RegisterCartRoutes(r, cfg)
	RegisterMypageRoutes(r, cfg)
}

// serverError logs the full error and hands the client a generic 500.
func serverError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "server error",
		"success": false,
	})
}

// alertRedirect renders the original system's form-failure behavior: an
// injected script alert followed by a redirect to the originating form.
func alertRedirect(c *gin.Context, message, location string) {
	body := fmt.Sprintf("<script>alert(%q);location.href=%q;</script>", message, location)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}
