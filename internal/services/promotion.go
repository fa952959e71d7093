package services

import (
	"time"

	"childrens-bookshop/internal/models"
)

// PromotionService handles promotion business logic
type PromotionService struct {
	promotionRepo PromotionRepositoryInterface
	now           func() time.Time
}

// NewPromotionService creates a new promotion service
func NewPromotionService(promotionRepo PromotionRepositoryInterface) *PromotionService {
	return &PromotionService{
		promotionRepo: promotionRepo,
		now:           time.Now,
	}
}

// PromotionRepositoryInterface defines the interface for promotion repository operations
type PromotionRepositoryInterface interface {
	Create(req *models.PromotionCreateRequest) (*models.Promotion, error)
	GetByID(id int) (*models.Promotion, error)
	GetActiveByKind(kind models.PromotionKind, now time.Time) (*models.Promotion, error)
	List() ([]*models.Promotion, error)
	Delete(id int) error
}

// GetActivePromotion retrieves the active promotion of the given kind
// along with its current countdown
func (s *PromotionService) GetActivePromotion(kind models.PromotionKind) (*models.Promotion, models.Countdown, error) {
	now := s.now()

	promotion, err := s.promotionRepo.GetActiveByKind(kind, now)
	if err != nil {
		return nil, models.Countdown{}, err
	}

	return promotion, promotion.Remaining(now), nil
}

// ListPromotions retrieves all promotions
func (s *PromotionService) ListPromotions() ([]*models.Promotion, error) {
	return s.promotionRepo.List()
}

// CreatePromotion creates a new promotion. The deadline must be in the
// future.
func (s *PromotionService) CreatePromotion(req *models.PromotionCreateRequest) (*models.Promotion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if !req.EndsAt.After(s.now()) {
		return nil, models.ErrInvalidInput
	}

	return s.promotionRepo.Create(req)
}

// DeletePromotion deletes a promotion
func (s *PromotionService) DeletePromotion(id int) error {
	return s.promotionRepo.Delete(id)
}
