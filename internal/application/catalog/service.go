package catalog

import (
	"context"
	"errors"
	"strings"

	"gavel-backend/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrNameRequired = errors.New("Name is required")
	ErrDuplicate    = errors.New("Name already exists")
)

// Service manages the classification reference tables.
type Service struct {
	DB *gorm.DB
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	var out []domain.Brand
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ListModels(ctx context.Context) ([]domain.ProductModel, error) {
	var out []domain.ProductModel
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	var existing domain.Category
	if err := s.DB.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrDuplicate
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	cat := &domain.Category{Name: name}
	if err := s.DB.WithContext(ctx).Create(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) CreateBrand(ctx context.Context, name string) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	var existing domain.Brand
	if err := s.DB.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrDuplicate
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	brand := &domain.Brand{Name: name}
	if err := s.DB.WithContext(ctx).Create(brand).Error; err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *Service) CreateModel(ctx context.Context, name string) (*domain.ProductModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	var existing domain.ProductModel
	if err := s.DB.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrDuplicate
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	model := &domain.ProductModel{Name: name}
	if err := s.DB.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model, nil
}
