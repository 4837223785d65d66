package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"printstore/internal/models"
	"printstore/internal/services"
)

type CatalogHandler struct {
	service services.CatalogService
}

func NewCatalogHandler(service services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// @Summary      List categories with their sub-categories
// @Tags         Catalog
// @Produce      json
// @Success      200  {array}  models.Category
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		businessError(c, "Invalid category id.")
		return
	}
	category, err := h.service.GetCategory(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		businessError(c, "Invalid category payload.")
		return
	}
	if err := h.service.CreateCategory(&category); err != nil {
		businessError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		businessError(c, "Invalid category id.")
		return
	}
	if err := h.service.DeleteCategory(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) CreateSubCategory(c *gin.Context) {
	var sc models.SubCategory
	if err := c.ShouldBindJSON(&sc); err != nil {
		businessError(c, "Invalid sub-category payload.")
		return
	}
	if err := h.service.CreateSubCategory(&sc); err != nil {
		businessError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, sc)
}

// @Summary      List products
// @Tags         Catalog
// @Produce      json
// @Param        sub_category_id  query  int  false  "Filter by sub-category"
// @Success      200  {array}  models.Product
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	subCategoryID, _ := strconv.Atoi(c.DefaultQuery("sub_category_id", "0"))
	products, err := h.service.ListProducts(subCategoryID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		businessError(c, "Invalid product id.")
		return
	}
	product, err := h.service.GetProduct(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		businessError(c, "Invalid product payload.")
		return
	}
	if err := h.service.CreateProduct(&p); err != nil {
		businessError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		businessError(c, "Invalid product id.")
		return
	}
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		businessError(c, "Invalid product payload.")
		return
	}
	p.ID = id
	if err := h.service.UpdateProduct(&p); err != nil {
		businessError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		businessError(c, "Invalid product id.")
		return
	}
	if err := h.service.DeleteProduct(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) AddMaterialOption(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		businessError(c, "Invalid product id.")
		return
	}
	var o models.MaterialOption
	if err := c.ShouldBindJSON(&o); err != nil {
		businessError(c, "Invalid material option payload.")
		return
	}
	o.ProductID = productID
	if err := h.service.AddMaterialOption(&o); err != nil {
		businessError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, o)
}
