package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ImageService handles cover image processing and storage
type ImageService struct {
	storage StorageService
}

// NewImageService creates a new image service
func NewImageService(storage StorageService) *ImageService {
	return &ImageService{
		storage: storage,
	}
}

// ImageVariantConfig defines the configuration for image variants
type ImageVariantConfig struct {
	Name   string
	Width  int
	Height int
	Fit    imaging.ResampleFilter
}

// Cover image variants served by the storefront
var CoverVariants = []ImageVariantConfig{
	{Name: "thumbnail", Width: 150, Height: 150, Fit: imaging.Lanczos},
	{Name: "medium", Width: 400, Height: 600, Fit: imaging.Lanczos},
	{Name: "large", Width: 800, Height: 1200, Fit: imaging.Lanczos},
}

const jpegQuality = 85

// UploadImage processes an uploaded cover and stores the original plus
// resized variants under a shared key prefix
func (s *ImageService) UploadImage(ctx context.Context, reader io.Reader, filename string) (*ImageUploadResult, error) {
	imageData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if !isValidImageFormat(format) {
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	keyPrefix := generateImageKey(filename)
	bounds := img.Bounds()

	originalData, err := encodeImage(img, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode original image: %w", err)
	}

	originalKey := fmt.Sprintf("%s/original.%s", keyPrefix, format)
	originalURL, err := s.uploadImageData(ctx, originalKey, originalData, getContentType(format))
	if err != nil {
		return nil, fmt.Errorf("failed to upload original image: %w", err)
	}

	result := &ImageUploadResult{
		Original: ImageMetadata{
			Key:         originalKey,
			URL:         originalURL,
			Size:        int64(len(originalData)),
			ContentType: getContentType(format),
			Width:       bounds.Dx(),
			Height:      bounds.Dy(),
			UploadedAt:  time.Now(),
		},
	}

	// Variants are always JPEG so their URLs are predictable from the
	// key prefix alone
	for _, config := range CoverVariants {
		variant, err := s.createVariant(ctx, img, keyPrefix, config, "jpeg")
		if err != nil {
			// A failed variant never blocks the upload, the original
			// is already stored
			log.Printf("Failed to create variant %s: %v", config.Name, err)
			continue
		}
		result.Variants = append(result.Variants, *variant)
	}

	return result, nil
}

// createVariant creates and uploads a resized variant of the image
func (s *ImageService) createVariant(ctx context.Context, img image.Image, keyPrefix string, config ImageVariantConfig, format string) (*ImageVariant, error) {
	resized := imaging.Fit(img, config.Width, config.Height, config.Fit)

	imageData, err := encodeImage(resized, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode variant image: %w", err)
	}

	variantKey := fmt.Sprintf("%s/%s.%s", keyPrefix, config.Name, format)
	variantURL, err := s.uploadImageData(ctx, variantKey, imageData, getContentType(format))
	if err != nil {
		return nil, fmt.Errorf("failed to upload variant: %w", err)
	}

	bounds := resized.Bounds()
	return &ImageVariant{
		Name:   config.Name,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Key:    variantKey,
		URL:    variantURL,
	}, nil
}

// DeleteImage removes the original and all variants under a key prefix
func (s *ImageService) DeleteImage(ctx context.Context, keyPrefix string) error {
	keys := []string{
		fmt.Sprintf("%s/original.jpeg", keyPrefix),
		fmt.Sprintf("%s/original.png", keyPrefix),
	}
	for _, config := range CoverVariants {
		keys = append(keys, fmt.Sprintf("%s/%s.jpeg", keyPrefix, config.Name))
	}

	var lastErr error
	for _, key := range keys {
		exists, err := s.storage.Exists(ctx, key)
		if err != nil || !exists {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// ValidateImage checks that the reader holds a decodable image within
// the size limit
func (s *ImageService) ValidateImage(reader io.Reader, maxSize int64) error {
	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	if int64(len(data)) > maxSize {
		return fmt.Errorf("image exceeds maximum size of %d bytes", maxSize)
	}

	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}

	if !isValidImageFormat(format) {
		return fmt.Errorf("unsupported image format: %s", format)
	}

	return nil
}

// GetImageURL returns the public URL for a variant of the image
func (s *ImageService) GetImageURL(keyPrefix, variant string) string {
	if variant == "" || variant == "original" {
		return s.storage.GetURL(fmt.Sprintf("%s/original.jpeg", keyPrefix))
	}
	return s.storage.GetURL(fmt.Sprintf("%s/%s.jpeg", keyPrefix, variant))
}

// uploadImageData uploads encoded image bytes to storage
func (s *ImageService) uploadImageData(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return s.storage.Upload(ctx, key, bytes.NewReader(data), contentType, int64(len(data)))
}

// encodeImage encodes an image in the given format
func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported encoding format: %s", format)
	}

	return buf.Bytes(), nil
}

// isValidImageFormat reports whether the decoded format is accepted
func isValidImageFormat(format string) bool {
	switch format {
	case "jpeg", "jpg", "png":
		return true
	default:
		return false
	}
}

// getContentType returns the MIME type for an image format
func getContentType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// generateImageKey generates a unique storage key prefix for an upload
func generateImageKey(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	slug := strings.ToLower(strings.ReplaceAll(base, " ", "-"))
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return fmt.Sprintf("covers/%s-%s", slug, uuid.New().String())
}
