package orderControllers

import (
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/TheManUnderTheHood/Loomly/middleware"
	"github.com/TheManUnderTheHood/Loomly/models"
)

// GET /orders/admin/export — download all orders as an Excel workbook.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Owner").Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}

		headers := []string{
			"ID", "OrderRef", "Owner", "Email", "Status", "PaymentStatus",
			"TotalPrice", "Items", "City", "Country", "CreatedAt", "DeliveredAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.OrderRef)
			if o.Owner != nil {
				row.AddCell().SetValue(o.Owner.FullName)
				row.AddCell().SetValue(o.Owner.Email)
			} else {
				row.AddCell().SetValue("")
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(string(o.Payment.Status))
			row.AddCell().SetValue(o.TotalPrice.String())
			row.AddCell().SetValue(len(o.Items))
			row.AddCell().SetValue(o.Shipping.City)
			row.AddCell().SetValue(o.Shipping.Country)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			if o.DeliveredAt != nil {
				row.AddCell().SetValue(o.DeliveredAt.Format("2006-01-02 15:04:05"))
			} else {
				row.AddCell().SetValue("")
			}
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			middleware.AbortWithError(c, err)
			return
		}
	}
}
