package handler

import (
	"errors"
	"net/http"
	"strconv"

	"budget-tracker/internal/models"
	"budget-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler 负责交易记录相关接口
type TransactionHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewTransactionHandler(db *gorm.DB, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &TransactionHandler{
		DB:       db,
		PageSize: pageSize,
	}
}

// ---------- 请求/响应结构 ----------

// pointer fields distinguish "absent" from a zero value
type createTransactionReq struct {
	Date       string   `json:"date"`
	Amount     *float64 `json:"amount"`
	CategoryID *uint    `json:"category_id"`
	Notes      string   `json:"notes"`
}

type updateTransactionReq struct {
	Date       *string  `json:"date"`
	Amount     *float64 `json:"amount"`
	CategoryID *uint    `json:"category_id"`
	Notes      *string  `json:"notes"`
}

type transactionResp struct {
	ID         uint    `json:"id"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	CategoryID uint    `json:"category_id"`
	Notes      string  `json:"notes"`
}

// transactionRow is the list/export projection joined with the category name.
type transactionRow struct {
	ID         uint
	Date       string
	AmountCent int64
	CategoryID uint
	Category   string
	Notes      string
}

type transactionListItem struct {
	ID         uint    `json:"id"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	Category   string  `json:"category"`
	CategoryID uint    `json:"category_id"`
	Notes      string  `json:"notes"`
}

// ---------- 工具函数 ----------

// toCent 将金额（元）转换为分，四舍五入到两位小数
func toCent(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

func fromCent(amountCent int64) float64 {
	return float64(amountCent) / 100.0
}

func toTransactionResp(txn *models.Transaction) transactionResp {
	return transactionResp{
		ID:         txn.ID,
		Date:       txn.Date,
		Amount:     fromCent(txn.AmountCent),
		CategoryID: txn.CategoryID,
		Notes:      txn.Notes,
	}
}

// joined 返回带分类名称的基础查询
func (h *TransactionHandler) joined() *gorm.DB {
	return h.DB.Model(&models.Transaction{}).
		Select("transactions.id, transactions.date, transactions.amount_cent, transactions.category_id, categories.name AS category, transactions.notes").
		Joins("JOIN categories ON categories.id = transactions.category_id")
}

// ---------- 记一笔 ----------

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	// combined required-field check runs before any per-field validation
	if req.Date == "" || req.Amount == nil || req.CategoryID == nil {
		util.Error(c, http.StatusBadRequest, "Date, amount, and category_id are required fields")
		return
	}

	if err := util.ValidateDate(req.Date); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
		return
	}

	amountCent := toCent(*req.Amount)
	if err := util.ValidateAmount(*req.Amount); err != nil || amountCent <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid amount. Must be a positive number.")
		return
	}

	var cat models.Category
	if err := h.DB.First(&cat, *req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to load category")
		}
		return
	}

	txn := models.Transaction{
		Date:       req.Date,
		AmountCent: amountCent,
		CategoryID: cat.ID,
		Notes:      req.Notes,
	}
	if err := h.DB.Create(&txn).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	util.JSON(c, http.StatusCreated, util.Response{
		"message":     "Transaction created successfully",
		"transaction": toTransactionResp(&txn),
	})
}

// ---------- 交易列表：筛选 + 分页 ----------

// ListTransactions 查询交易列表，筛选条件（分类、日期区间、金额区间）
// 按 AND 组合，且与 limit/offset 分页可同时使用
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	q := h.joined()

	if s := c.Query("category_id"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			util.Error(c, http.StatusBadRequest, "Invalid category_id filter")
			return
		}
		q = q.Where("transactions.category_id = ?", n)
	}

	// 日期区间（含边界）
	if s := c.Query("start_date"); s != "" {
		if err := util.ValidateDate(s); err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
			return
		}
		q = q.Where("transactions.date >= ?", s)
	}
	if s := c.Query("end_date"); s != "" {
		if err := util.ValidateDate(s); err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
			return
		}
		q = q.Where("transactions.date <= ?", s)
	}

	// 金额区间（含边界）
	if s := c.Query("min_amount"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid min_amount filter")
			return
		}
		q = q.Where("transactions.amount_cent >= ?", toCent(f))
	}
	if s := c.Query("max_amount"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid max_amount filter")
			return
		}
		q = q.Where("transactions.amount_cent <= ?", toCent(f))
	}

	limit := h.PageSize
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}
	offset := 0
	if s := c.Query("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			offset = n
		}
	}

	var rows []transactionRow
	if err := q.Order("transactions.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	items := make([]transactionListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, transactionListItem{
			ID:         row.ID,
			Date:       row.Date,
			Amount:     fromCent(row.AmountCent),
			Category:   row.Category,
			CategoryID: row.CategoryID,
			Notes:      row.Notes,
		})
	}

	util.JSON(c, http.StatusOK, util.Response{
		"transactions": items,
	})
}

// ---------- 部分更新 ----------

// UpdateTransaction replaces only the supplied fields. Every supplied field
// is validated before the single save, so a rejected update persists nothing.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusNotFound, "Transaction not found")
		return
	}

	var req updateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var txn models.Transaction
	if err := h.DB.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to load transaction")
		}
		return
	}

	if req.Date != nil {
		if err := util.ValidateDate(*req.Date); err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD.")
			return
		}
	}
	var amountCent int64
	if req.Amount != nil {
		amountCent = toCent(*req.Amount)
		if err := util.ValidateAmount(*req.Amount); err != nil || amountCent <= 0 {
			util.Error(c, http.StatusBadRequest, "Invalid amount. Must be a positive number.")
			return
		}
	}
	if req.CategoryID != nil {
		var cat models.Category
		if err := h.DB.First(&cat, *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Error(c, http.StatusNotFound, "Category not found")
			} else {
				util.Error(c, http.StatusInternalServerError, "Failed to load category")
			}
			return
		}
	}

	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Amount != nil {
		txn.AmountCent = amountCent
	}
	if req.CategoryID != nil {
		txn.CategoryID = *req.CategoryID
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}

	if err := h.DB.Save(&txn).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"message":     "Transaction updated successfully",
		"transaction": toTransactionResp(&txn),
	})
}

// ---------- 删除一条记录 ----------

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusNotFound, "Transaction not found")
		return
	}

	var txn models.Transaction
	if err := h.DB.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to load transaction")
		}
		return
	}

	if err := h.DB.Delete(&txn).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"message": "Transaction deleted successfully",
	})
}
