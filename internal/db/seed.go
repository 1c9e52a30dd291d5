package db

import (
	"context" // Context for timeouts and cancellation
	"fmt"     // Error wrapping
	"io"      // Seed input

	"bike_market/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gopkg.in/yaml.v3"           // YAML seed decoding
)

// SeedData is the reference content loaded by the seed command
type SeedData struct {
	Categories []domain.Category `yaml:"categories"`
	Blogs      []domain.Blog     `yaml:"blogs"`
}

// CatalogWriter inserts reference documents, reporting whether each was new
type CatalogWriter interface {
	UpsertCategory(ctx context.Context, c domain.Category) (bool, error)
	UpsertBlog(ctx context.Context, b domain.Blog) (bool, error)
}

// ParseSeed decodes a YAML seed file
func ParseSeed(r io.Reader) (*SeedData, error) {
	var data SeedData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	for i, c := range data.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("parse seed: category %d has no name", i)
		}
	}
	for i, b := range data.Blogs {
		if b.Title == "" {
			return nil, fmt.Errorf("parse seed: blog %d has no title", i)
		}
	}
	return &data, nil
}

// Seed writes the seed data, skipping entries that already exist, and
// returns how many documents were inserted
func Seed(ctx context.Context, w CatalogWriter, data *SeedData) (int, error) {
	inserted := 0
	for _, c := range data.Categories {
		created, err := w.UpsertCategory(ctx, c)
		if err != nil {
			return inserted, err
		}
		if created {
			inserted++
		}
	}
	for _, b := range data.Blogs {
		created, err := w.UpsertBlog(ctx, b)
		if err != nil {
			return inserted, err
		}
		if created {
			inserted++
		}
	}
	logrus.WithFields(logrus.Fields{
		"categories": len(data.Categories),
		"blogs":      len(data.Blogs),
		"inserted":   inserted,
	}).Info("Seed completed")
	return inserted, nil
}
