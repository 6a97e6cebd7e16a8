package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kyri56xcaesar/teamdash/internal/geo"
	"kyri56xcaesar/teamdash/internal/members"
	"kyri56xcaesar/teamdash/internal/tasks"
)

func handleGeoSearch(client *geo.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates, err := client.Search(c.Request.Context(), c.Query("q"))
		if err != nil {
			log.Printf("address search failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "address lookup failed"})

			return
		}
		if candidates == nil {
			candidates = []geo.Candidate{}
		}

		c.JSON(http.StatusOK, gin.H{"items": candidates})
	}
}

func handleGeoReverse(client *geo.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
		if latErr != nil || lngErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing/invalid coordinates"})

			return
		}

		label, err := client.Reverse(c.Request.Context(), lat, lng)
		if err != nil {
			log.Printf("reverse lookup failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "address lookup failed"})

			return
		}

		c.JSON(http.StatusOK, gin.H{"label": label})
	}
}

func handleStats(membersSvc *members.Service, tasksSvc *tasks.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		memberCounts, err := membersSvc.Counts(c.Request.Context())
		if err != nil {
			log.Printf("failed to compute member stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

			return
		}

		taskCounts, err := tasksSvc.Counts(c.Request.Context())
		if err != nil {
			log.Printf("failed to compute task stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

			return
		}

		c.JSON(http.StatusOK, gin.H{
			"members": memberCounts,
			"tasks":   taskCounts,
		})
	}
}
