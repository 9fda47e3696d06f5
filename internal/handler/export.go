package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"budget-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func (h *ExportHandler) rows() ([]transactionRow, error) {
	th := TransactionHandler{DB: h.DB}
	var rows []transactionRow
	err := th.joined().
		Order("transactions.date ASC, transactions.id ASC").
		Scan(&rows).Error
	return rows, err
}

// ExportCSV 导出交易为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, err := h.rows()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to export transactions")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so Excel opens the file correctly
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Date", "Category", "Amount", "Notes"})
	for _, row := range rows {
		writer.Write([]string{
			row.Date,
			row.Category,
			strconv.FormatFloat(fromCent(row.AmountCent), 'f', 2, 64),
			row.Notes,
		})
	}
}

// ExportXLSX 导出交易为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	rows, err := h.rows()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to export transactions")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to create worksheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Category", "Amount", "Notes"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, row := range rows {
		r := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", r), row.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", r), row.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", r), fromCent(row.AmountCent))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", r), row.Notes)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to export transactions")
	}
}
