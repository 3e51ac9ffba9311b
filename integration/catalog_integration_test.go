package integration_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FieldFinderOrganization/fieldfinder/internal/catalog"
)

func newCatalogRouter(db *sqlx.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := catalog.NewHandler(catalog.NewService(catalog.NewRepository(db)))

	router := gin.New()
	router.GET("/products", handler.ListProducts)
	router.GET("/products/categories", handler.ListCategories)
	router.GET("/products/navigate", handler.Navigate)
	router.GET("/products/:productID", handler.GetProduct)
	router.POST("/products", handler.CreateProduct)
	return router
}

func seedCategories(t *testing.T, db *sqlx.DB) {
	rows := []struct {
		name   string
		parent interface{}
	}{
		{"All Products", nil},
		{"Running Shoes", "Shoes"},
		{"Football Shoes", "Shoes"},
		{"Tops", "Clothing"},
	}
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO categories (name, parent_name) VALUES ($1, $2)`, r.name, r.parent)
		require.NoError(t, err)
	}
}

func createTestProduct(t *testing.T, router *gin.Engine, req catalog.CreateProductRequest) catalog.Product {
	w := postJSON(router, "/products", "", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product catalog.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	require.NotEmpty(t, product.ID)
	return product
}

func TestCatalogIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	router := newCatalogRouter(db)

	t.Run("Create and fetch product", func(t *testing.T) {
		cleanDatabase(t, db)
		seedCategories(t, db)

		sale := int64(1800000)
		created := createTestProduct(t, router, catalog.CreateProductRequest{
			Name:      "Pegasus 41",
			Category:  "Running Shoes",
			Brand:     "Nike",
			Gender:    "Men",
			Price:     2500000,
			SalePrice: &sale,
			Sizes:     []string{"40", "41", "42"},
		})

		req := httptest.NewRequest("GET", "/products/"+created.ID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var fetched catalog.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
		assert.Equal(t, "Pegasus 41", fetched.Name)
		assert.Equal(t, int64(1800000), fetched.EffectivePrice())
	})

	t.Run("Aggregate category and filters", func(t *testing.T) {
		cleanDatabase(t, db)
		seedCategories(t, db)

		createTestProduct(t, router, catalog.CreateProductRequest{
			Name: "Pegasus 41", Category: "Running Shoes", Brand: "Nike", Gender: "Men", Price: 2500000,
		})
		createTestProduct(t, router, catalog.CreateProductRequest{
			Name: "Predator Elite", Category: "Football Shoes", Brand: "Adidas", Gender: "Men", Price: 3200000,
		})
		createTestProduct(t, router, catalog.CreateProductRequest{
			Name: "Dri-FIT Tee", Category: "Tops", Brand: "Nike", Gender: "Women", Price: 600000,
		})

		req := httptest.NewRequest("GET", "/products?category=Shoes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var shoes []catalog.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shoes))
		assert.Len(t, shoes, 2)

		req = httptest.NewRequest("GET", "/products?category=Shoes&brand=Nike&maxPrice=3000000", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var filtered []catalog.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
		require.Len(t, filtered, 1)
		assert.Equal(t, "Pegasus 41", filtered[0].Name)
	})

	t.Run("Navigate sport flow", func(t *testing.T) {
		cleanDatabase(t, db)
		seedCategories(t, db)

		req := httptest.NewRequest("GET", "/products/navigate?path=Shop+By+Sport,Running&item=Shoes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp catalog.NavigateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Running Shoes", resp.State.SelectedCategory)
		assert.Equal(t, "Running", resp.State.ActiveSport)
	})
}
