package api

import (
	"net/http" // HTTP status codes

	"bike_market/internal/domain"     // Importing domain models
	"bike_market/internal/middleware" // Caller identity
	"bike_market/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ListReportsHandler returns one page of reports, newest first
func ListReportsHandler(reports ReportStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pagination(c)
		list, total, err := reports.List(c.Request.Context(), page, pageSize)
		if err != nil {
			respondError(c, err, "Failed to fetch reports")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"reports":     list,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages(total, pageSize),
		})
	}
}

// CreateReportHandler flags a bike for review
func CreateReportHandler(reports ReportStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var report domain.Report
		if err := c.ShouldBindJSON(&report); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		report.Email = middleware.CallerEmail(c) // Reporter is always the caller
		id, err := reports.Create(c.Request.Context(), &report)
		if err != nil {
			respondError(c, err, "Failed to create report")
			return
		}
		created(c, id)
	}
}

// DeleteReportHandler resolves a report by removing it and the reported bike.
// A bike that is already gone leaves complete=false in the response.
func DeleteReportHandler(reports ReportStore, bikes BikeStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		report, err := reports.Delete(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Failed to delete report")
			return
		}
		deleted, err := bikes.Delete(c.Request.Context(), report.BikeID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"report_id": id.Hex(),
				"bike_id":   report.BikeID.Hex(),
				"error":     err.Error(),
			}).Error("Reported bike delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":         "Failed to delete reported bike",
				"reportDeleted": 1,
			})
			return
		}
		if deleted > 0 {
			invalidateBikes(c.Request.Context(), cache)
		}
		c.JSON(http.StatusOK, gin.H{
			"reportDeleted": 1,
			"bikeDeleted":   deleted,
			"complete":      deleted == 1,
		})
	}
}
