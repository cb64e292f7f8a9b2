package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/claudiojas/rockbandpay-table-client/models"
	"github.com/claudiojas/rockbandpay-table-client/utils"
)

type CatalogController struct {
	DB *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

// GetAllProducts -> GET /products
func (cc *CatalogController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := cc.DB.Preload("Category").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondData(c, http.StatusOK, products)
}

// GetAllCategories -> GET /categories
func (cc *CatalogController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondData(c, http.StatusOK, categories)
}
