package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"childrens-bookshop/internal/config"
)

// StorageFactory creates storage services with proper fallback configuration
type StorageFactory struct {
	config *config.Config
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config) *StorageFactory {
	return &StorageFactory{config: cfg}
}

// CreateStorageService creates a storage service with R2 primary and
// local fallback
func (f *StorageFactory) CreateStorageService() StorageService {
	fallbackPath := filepath.Join("web", "static", "uploads")
	fallbackURL := fmt.Sprintf("http://%s:%s/static/uploads", f.config.Server.Host, f.config.Server.Port)
	fallbackService := NewFallbackStorageService(fallbackPath, fallbackURL)

	r2Service, err := NewR2Service(f.config.R2)
	if err != nil {
		log.Printf("Warning: R2 service unavailable, using fallback storage only: %v", err)
		return fallbackService
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := r2Service.HealthCheck(ctx); err != nil {
		log.Printf("Warning: R2 health check failed, using fallback storage only: %v", err)
		return fallbackService
	}

	log.Println("R2 storage service initialized successfully")
	return NewStorageServiceWithFallback(r2Service, fallbackService)
}

// CreateImageService creates an image service with the configured storage
func (f *StorageFactory) CreateImageService() ImageServiceInterface {
	return NewImageService(f.CreateStorageService())
}
