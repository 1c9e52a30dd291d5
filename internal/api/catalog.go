package api

import (
	"context"  // Context for store calls
	"net/http" // HTTP status codes

	"bike_market/internal/domain" // Importing domain models
	"bike_market/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Cache keys for catalog reads
const (
	categoriesKey     = "catalog:categories"
	categoryNamesKey  = "catalog:names"
	categoryBikesKey  = "catalog:category:"
	cacheStatusHeader = "X-Cache"
)

// readThrough serves key from the cache, loading and storing it on a miss.
// Cache failures are logged and fall back to the store.
func readThrough[T any](c *gin.Context, cache *utils.Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	ctx := c.Request.Context()
	var value T
	found, err := cache.Get(ctx, key, &value)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache read failed")
	}
	if found {
		c.Header(cacheStatusHeader, "HIT")
		return value, nil
	}
	value, err = load(ctx)
	if err != nil {
		return value, err
	}
	if err := cache.Set(ctx, key, value); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
	c.Header(cacheStatusHeader, "MISS")
	return value, nil
}

// invalidateBikes drops every cached per-category bike list
func invalidateBikes(ctx context.Context, cache *utils.Cache) {
	if err := cache.DeletePrefix(ctx, categoryBikesKey); err != nil {
		logrus.WithError(err).Warn("Cache invalidation failed")
	}
}

// ListCategoriesHandler returns every category
func ListCategoriesHandler(catalog CatalogStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := readThrough(c, cache, categoriesKey, catalog.ListCategories)
		if err != nil {
			respondError(c, err, "Failed to fetch categories")
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// ListCategoryNamesHandler returns only the category names
func ListCategoryNamesHandler(catalog CatalogStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := readThrough(c, cache, categoryNamesKey, catalog.ListCategoryNames)
		if err != nil {
			respondError(c, err, "Failed to fetch category names")
			return
		}
		c.JSON(http.StatusOK, names)
	}
}

// CategoryBikesHandler returns the bikes listed under one category
func CategoryBikesHandler(bikes BikeStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		list, err := readThrough(c, cache, categoryBikesKey+name, func(ctx context.Context) ([]domain.Bike, error) {
			return bikes.ListByCategory(ctx, name)
		})
		if err != nil {
			respondError(c, err, "Failed to fetch bikes")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ListBlogsHandler returns every blog post
func ListBlogsHandler(catalog CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogs, err := catalog.ListBlogs(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch blogs")
			return
		}
		c.JSON(http.StatusOK, blogs)
	}
}
