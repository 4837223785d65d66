package services

import (
	"fmt"
	"strings"

	"printstore/internal/models"
	"printstore/internal/repositories"
)

type CatalogService interface {
	CreateCategory(c *models.Category) error
	ListCategories() ([]*models.Category, error)
	GetCategory(id int) (*models.Category, error)
	DeleteCategory(id int) error
	CreateSubCategory(sc *models.SubCategory) error

	CreateProduct(p *models.Product) error
	GetProduct(id int) (*models.Product, error)
	ListProducts(subCategoryID int, includeInactive bool) ([]*models.Product, error)
	UpdateProduct(p *models.Product) error
	DeleteProduct(id int) error
	AddMaterialOption(o *models.MaterialOption) error
}

type catalogService struct {
	repo repositories.CatalogRepository
}

func NewCatalogService(repo repositories.CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) CreateCategory(c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	return s.repo.CreateCategory(c)
}

func (s *catalogService) ListCategories() ([]*models.Category, error) {
	return s.repo.ListCategories()
}

func (s *catalogService) GetCategory(id int) (*models.Category, error) {
	return s.repo.GetCategory(id)
}

func (s *catalogService) DeleteCategory(id int) error {
	return s.repo.DeleteCategory(id)
}

func (s *catalogService) CreateSubCategory(sc *models.SubCategory) error {
	sc.Name = strings.TrimSpace(sc.Name)
	if sc.Name == "" {
		return fmt.Errorf("sub-category name is required")
	}
	parent, err := s.repo.GetCategory(sc.CategoryID)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("category %d not found", sc.CategoryID)
	}
	return s.repo.CreateSubCategory(sc)
}

func (s *catalogService) CreateProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return s.repo.CreateProduct(p)
}

func (s *catalogService) GetProduct(id int) (*models.Product, error) {
	return s.repo.GetProduct(id)
}

func (s *catalogService) ListProducts(subCategoryID int, includeInactive bool) ([]*models.Product, error) {
	return s.repo.ListProducts(subCategoryID, !includeInactive)
}

func (s *catalogService) UpdateProduct(p *models.Product) error {
	if p.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return s.repo.UpdateProduct(p)
}

func (s *catalogService) DeleteProduct(id int) error {
	return s.repo.DeleteProduct(id)
}

func (s *catalogService) AddMaterialOption(o *models.MaterialOption) error {
	o.Name = strings.TrimSpace(o.Name)
	if o.Name == "" {
		return fmt.Errorf("material option name is required")
	}
	return s.repo.AddMaterialOption(o)
}
