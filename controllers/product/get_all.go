package productcontroller

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
	"github.com/TheManUnderTheHood/Loomly/utils"
)

const resultsPerPage = 12

var sortColumns = map[string]string{
	"price":       "price",
	"-price":      "price DESC",
	"ratings":     "ratings",
	"-ratings":    "ratings DESC",
	"created_at":  "created_at",
	"-created_at": "created_at DESC",
}

type ProductPage struct {
	Products      []models.Product `json:"products"`
	ProductCount  int64            `json:"product_count"`
	ResultPerPage int              `json:"result_per_page"`
	TotalPages    int              `json:"total_pages"`
}

// GET /products?keyword&price[gte]&price[lte]&sort&page
func GetAllProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Category")

		if keyword := c.Query("keyword"); keyword != "" {
			likePattern := "%" + keyword + "%"
			query = query.Where("name ILIKE ? OR description ILIKE ?", likePattern, likePattern)
		}

		if raw := c.Query("price[gte]"); raw != "" {
			min, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid price[gte]"))
				return
			}
			query = query.Where("price >= ?", min)
		}
		if raw := c.Query("price[lte]"); raw != "" {
			max, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid price[lte]"))
				return
			}
			query = query.Where("price <= ?", max)
		}

		orderClause := "created_at DESC"
		if sort := c.Query("sort"); sort != "" {
			clauses := make([]string, 0, 2)
			for _, field := range strings.Split(sort, ",") {
				col, ok := sortColumns[strings.TrimSpace(field)]
				if !ok {
					middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, fmt.Sprintf("Invalid sort field %q", field)))
					return
				}
				clauses = append(clauses, col)
			}
			orderClause = strings.Join(clauses, ", ")
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		page := 1
		if raw := c.Query("page"); raw != "" {
			p, err := strconv.Atoi(raw)
			if err != nil || p < 1 {
				middleware.AbortWithError(c, utils.NewApiError(http.StatusBadRequest, "Invalid page"))
				return
			}
			page = p
		}

		var products []models.Product
		if err := query.
			Order(orderClause).
			Limit(resultsPerPage).
			Offset(resultsPerPage * (page - 1)).
			Find(&products).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		utils.Respond(c, http.StatusOK, ProductPage{
			Products:      products,
			ProductCount:  count,
			ResultPerPage: resultsPerPage,
			TotalPages:    int(math.Ceil(float64(count) / float64(resultsPerPage))),
		}, "All products fetched successfully")
	}
}
