package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scholar-ai/internal/profile"
)

// overall ceiling for one scrape run across all sites.
const scrapeRunTimeout = 90 * time.Second

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// POST /api/scrape-sync
// Runs the scraper under a bounded deadline and persists the results.
// A fresh cached run is served as-is instead of hammering the sites.
func ScrapeSyncHandler(scraper ListingScraper, catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		runID := uuid.NewString()

		if cached, ok := catalog.CachedScrape(c.Request.Context()); ok {
			log.Printf("[API] scrape %s served from cache (%d listings)", runID, len(cached))
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"cached":  true,
				"runId":   runID,
				"count":   len(cached),
				"data":    cached,
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), scrapeRunTimeout)
		defer cancel()

		log.Printf("[API] scrape %s starting", runID)
		results := scraper.ScrapeAll(ctx)

		if err := catalog.StoreScrape(c.Request.Context(), results); err != nil {
			abortWithError(c, err)
			return
		}

		log.Printf("[API] scrape %s stored %d listings", runID, len(results))
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"cached":  false,
			"runId":   runID,
			"count":   len(results),
			"data":    results,
		})
	}
}

// GET /api/ai/recommend-scholarships/:userId
func RecommendHandler(users UserDirectory, catalog CatalogService, picker Picker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		ctx := c.Request.Context()

		all, err := users.FetchAll(ctx)
		if err != nil {
			abortWithError(c, err)
			return
		}

		var matched *profile.User
		for i := range all {
			if all[i].ID == userID {
				matched = &all[i]
				break
			}
		}
		if matched == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		listings, err := catalog.All(ctx)
		if err != nil {
			abortWithError(c, err)
			return
		}

		picks, err := picker.Recommend(ctx, *matched, listings)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"userId":          userID,
			"recommendations": picks,
		})
	}
}
