package models

import (
	"time"
)

// SaleRecord is the durable audit row written for every mined sale block.
// The in-memory chain stays authoritative; these rows feed the history
// endpoints and survive restarts.
type SaleRecord struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BlockIndex int       `gorm:"not null;index" json:"block_index"`
	TxID       string    `gorm:"size:16;not null;uniqueIndex" json:"txid"`
	StoreID    string    `gorm:"size:64;not null;index" json:"store_id"`
	Total      float64   `gorm:"not null" json:"total"`
	ItemCount  int       `gorm:"not null" json:"item_count"`
	Nonce      int       `gorm:"not null" json:"nonce"`
	BlockHash  string    `gorm:"size:64;not null" json:"block_hash"`
	SoldAt     time.Time `gorm:"not null" json:"sold_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SaleRecord) TableName() string {
	return "sale_records"
}
