package ledger

import "time"

// TransactionView is the display form of a sale transaction.
type TransactionView struct {
	TxID      string    `json:"txid"`
	StoreID   string    `json:"storeId"`
	Total     float64   `json:"total"`
	Timestamp string    `json:"timestamp"`
	Products  []Product `json:"products"`
}

// BlockView is the display form of a block. Hashes are truncated to 8 hex
// chars plus an ellipsis; validation always works on the full digests.
type BlockView struct {
	Index        int             `json:"index"`
	Hash         string          `json:"hash"`
	PreviousHash string          `json:"previousHash"`
	Nonce        int             `json:"nonce"`
	Timestamp    string          `json:"timestamp"`
	Transaction  TransactionView `json:"transaction"`
}

// SnapshotData projects the whole chain plus validity, summary and
// configuration into one structure for dashboards.
type SnapshotData struct {
	Chain       []BlockView `json:"chain"`
	IsValid     bool        `json:"isValid"`
	Summary     Summary     `json:"summary"`
	Difficulty  int         `json:"difficulty"`
	TotalBlocks int         `json:"totalBlocks"`
}

func (c *Chain) Snapshot() SnapshotData {
	c.mu.RLock()
	defer c.mu.RUnlock()

	views := make([]BlockView, len(c.blocks))
	for i, b := range c.blocks {
		views[i] = BlockView{
			Index:        b.Index,
			Hash:         truncateHash(b.Hash),
			PreviousHash: displayPreviousHash(b.PreviousHash),
			Nonce:        b.Nonce,
			Timestamp:    millisToRFC3339(b.Timestamp),
			Transaction: TransactionView{
				TxID:      b.Transaction.TxID,
				StoreID:   b.Transaction.StoreID,
				Total:     b.Transaction.Total,
				Timestamp: millisToRFC3339(b.Transaction.Timestamp),
				Products:  b.Transaction.Products,
			},
		}
	}

	return SnapshotData{
		Chain:       views,
		IsValid:     c.validateLocked().Valid,
		Summary:     c.summaryLocked(""),
		Difficulty:  c.difficulty,
		TotalBlocks: len(c.blocks),
	}
}

func truncateHash(hash string) string {
	if len(hash) <= 8 {
		return hash
	}
	return hash[:8] + "..."
}

func displayPreviousHash(hash string) string {
	if hash == genesisPreviousHash {
		return "Genesis"
	}
	return truncateHash(hash)
}

func millisToRFC3339(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
