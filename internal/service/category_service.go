package service

import (
	"strings"

	"github.com/pazar-next/internal/models"
	"github.com/pazar-next/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo *repository.GormCategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo *repository.GormCategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// GetByID 获取分类
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// Create 创建分类
func (s *CategoryService) Create(name, description string, parentID *uint, sortOrder int) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryInvalid
	}
	if parentID != nil {
		parent, err := s.categoryRepo.GetByID(*parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCategoryInvalid
		}
	}
	category := &models.Category{
		Slug:        generateSlug(name),
		Name:        name,
		Description: strings.TrimSpace(description),
		ParentID:    parentID,
		SortOrder:   sortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}
