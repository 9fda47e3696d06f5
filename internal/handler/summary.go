package handler

import (
	"net/http"

	"budget-tracker/internal/models"
	"budget-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SummaryHandler 负责分类汇总接口
type SummaryHandler struct {
	DB *gorm.DB
}

func NewSummaryHandler(db *gorm.DB) *SummaryHandler {
	return &SummaryHandler{DB: db}
}

type summaryRow struct {
	Category  string
	TotalCent int64
}

type summaryItem struct {
	Category   string  `json:"category"`
	TotalSpent float64 `json:"total_spent"`
}

// GetSummary 按分类汇总支出总额
// 内连接：没有交易的分类不出现在结果里
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	var rows []summaryRow
	if err := h.DB.Model(&models.Transaction{}).
		Select("categories.name AS category, SUM(transactions.amount_cent) AS total_cent").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Group("categories.name").
		Order("categories.name ASC").
		Scan(&rows).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	items := make([]summaryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, summaryItem{
			Category:   row.Category,
			TotalSpent: fromCent(row.TotalCent),
		})
	}

	util.JSON(c, http.StatusOK, util.Response{
		"summary": items,
	})
}
