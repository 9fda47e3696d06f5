package util

import (
	"fmt"
	"time"
)

// ValidateAmount 验证金额（必须为正数且不超过上限）
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 10000000 { // 限制最大金额为1千万
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidateDate 验证日期格式（必须为 YYYY-MM-DD）
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateName 验证分类名（不能为空且长度合理）
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long, max 64 characters")
	}
	return nil
}
