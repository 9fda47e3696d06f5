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

// CategoryHandler 负责分类相关接口
type CategoryHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewCategoryHandler(db *gorm.DB, pageSize int) *CategoryHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &CategoryHandler{
		DB:       db,
		PageSize: pageSize,
	}
}

// ---------- 请求/响应结构 ----------

type categoryReq struct {
	Name string `json:"name"`
}

type categoryResp struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	return categoryResp{
		ID:   cat.ID,
		Name: cat.Name,
	}
}

// listAll returns every category in insertion order, for list-style callers.
func (h *CategoryHandler) listAll() ([]categoryResp, error) {
	var cats []models.Category
	if err := h.DB.Order("id ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	items := make([]categoryResp, 0, len(cats))
	for i := range cats {
		items = append(items, toCategoryResp(&cats[i]))
	}
	return items, nil
}

// ---------- 新建分类 ----------

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		util.Error(c, http.StatusBadRequest, "Category name is required")
		return
	}
	if err := util.ValidateName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, "Category name is too long")
		return
	}

	// no query-then-insert check: the unique index is the single
	// enforcement point, so concurrent duplicate creates cannot race
	cat := models.Category{Name: req.Name}
	if err := h.DB.Create(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusBadRequest, "Category already exists")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to create category")
		}
		return
	}

	items, err := h.listAll()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	util.JSON(c, http.StatusCreated, util.Response{
		"message":    "Category created successfully",
		"category":   toCategoryResp(&cat),
		"categories": items,
	})
}

// ---------- 分类列表 ----------

func (h *CategoryHandler) ListCategories(c *gin.Context) {
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

	var cats []models.Category
	if err := h.DB.Order("id ASC").Limit(limit).Offset(offset).Find(&cats).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	items := make([]categoryResp, 0, len(cats))
	for i := range cats {
		items = append(items, toCategoryResp(&cats[i]))
	}

	util.JSON(c, http.StatusOK, util.Response{
		"categories": items,
	})
}

// ---------- 重命名分类 ----------

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusNotFound, "Category not found")
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		util.Error(c, http.StatusBadRequest, "Category name is required")
		return
	}
	if err := util.ValidateName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, "Category name is too long")
		return
	}

	var cat models.Category
	if err := h.DB.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to load category")
		}
		return
	}

	// rename goes through the same unique index as create
	cat.Name = req.Name
	if err := h.DB.Save(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusBadRequest, "Category already exists")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to update category")
		}
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"message":  "Category updated successfully",
		"category": toCategoryResp(&cat),
	})
}

// ---------- 删除分类 ----------

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusNotFound, "Category not found")
		return
	}

	var cat models.Category
	if err := h.DB.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to load category")
		}
		return
	}

	var dependents int64
	if err := h.DB.Model(&models.Transaction{}).
		Where("category_id = ?", cat.ID).
		Count(&dependents).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to check transactions")
		return
	}
	if dependents > 0 {
		util.Error(c, http.StatusBadRequest, "Category cannot be deleted while transactions reference it")
		return
	}

	if err := h.DB.Delete(&cat).Error; err != nil {
		// foreign_keys is on for every pooled connection, so a racing
		// insert surfaces here as a constraint violation
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			util.Error(c, http.StatusBadRequest, "Category cannot be deleted while transactions reference it")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}

	items, err := h.listAll()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	util.JSON(c, http.StatusOK, util.Response{
		"message":    "Category deleted successfully",
		"categories": items,
	})
}
