package models

import "time"

// Transaction 表示一笔支出记录
// 金额用分存储，避免浮点误差，比如 12.34 元 = 1234 分
type Transaction struct {
	ID         uint   `gorm:"primaryKey"`
	Date       string `gorm:"size:10;index;not null"` // YYYY-MM-DD，字符串比较即按日期排序
	AmountCent int64  `gorm:"not null"`
	CategoryID uint   `gorm:"index;not null"`
	Notes      string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category Category
}
