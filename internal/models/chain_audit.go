package models

import (
	"time"
)

// ChainAudit is one recorded run of the scheduled integrity check.
// BadIndex is -1 when the chain verified clean.
type ChainAudit struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BlockCount int       `gorm:"not null" json:"block_count"`
	Valid      bool      `gorm:"not null" json:"valid"`
	BadIndex   int       `gorm:"not null;default:-1" json:"bad_index"`
	Reason     string    `gorm:"size:255" json:"reason"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ChainAudit) TableName() string {
	return "chain_audits"
}
