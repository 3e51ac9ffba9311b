package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListProducts godoc
// @Summary      List products
// @Description  Products under a category, narrowed by gender/brand/price filters
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Category name"
// @Param        gender    query     string  false  "Comma-separated genders"
// @Param        brand     query     string  false  "Comma-separated brands"
// @Param        minPrice  query     int     false  "Minimum price"
// @Param        maxPrice  query     int     false  "Maximum price"
// @Success      200       {array}   Product
// @Failure      500       {object}  gin.H
// @Router       /products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	filters := Filters{
		Genders: splitCSV(c.Query("gender")),
		Brands:  splitCSV(c.Query("brand")),
	}

	minPrice, maxPrice := c.Query("minPrice"), c.Query("maxPrice")
	if minPrice != "" || maxPrice != "" {
		band := PriceBand{}
		var err error
		if minPrice != "" {
			if band.Min, err = strconv.ParseInt(minPrice, 10, 64); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minPrice"})
				return
			}
		}
		if maxPrice != "" {
			if band.Max, err = strconv.ParseInt(maxPrice, 10, 64); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maxPrice"})
				return
			}
		}
		filters.PriceBands = []PriceBand{band}
	}

	products, err := h.service.ListProducts(c.Request.Context(), c.Query("category"), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct godoc
// @Summary      Get product by ID
// @Tags         products
// @Produce      json
// @Param        productID  path      string  true  "Product ID"
// @Success      200        {object}  Product
// @Failure      404        {object}  gin.H
// @Router       /products/{productID} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.service.GetProduct(c.Request.Context(), c.Param("productID"))
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// CreateProduct godoc
// @Summary      Create product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateProductRequest  true  "Product data"
// @Success      201      {object}  Product
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListCategories godoc
// @Summary      List categories
// @Tags         products
// @Produce      json
// @Success      200  {array}   Category
// @Failure      500  {object}  gin.H
// @Router       /products/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Navigate godoc
// @Summary      Resolve a category navigation click
// @Description  Replays the breadcrumb path then applies the clicked item
// @Tags         products
// @Produce      json
// @Param        item  query     string  true   "Clicked item"
// @Param        path  query     string  false  "Comma-separated prior clicks from the root"
// @Success      200   {object}  NavigateResponse
// @Failure      400   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /products/navigate [get]
func (h *Handler) Navigate(c *gin.Context) {
	item := c.Query("item")
	if item == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item is required"})
		return
	}

	resp, err := h.service.Navigate(c.Request.Context(), splitCSV(c.Query("path")), item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve navigation"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
