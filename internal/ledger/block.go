package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Product is one item in a recorded sale. Identity is the barcode.
type Product struct {
	Barcode  string  `json:"barcode"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// SaleTransaction is an immutable record of one point-of-sale event.
// TxID is the first 16 hex chars of SHA-256 over storeId+total+timestamp.
type SaleTransaction struct {
	StoreID   string    `json:"storeId"`
	Products  []Product `json:"products"`
	Total     float64   `json:"total"`
	Timestamp int64     `json:"timestamp"`
	TxID      string    `json:"txid"`
}

// Block wraps exactly one sale transaction in the hash-linked chain.
// Timestamps are Unix milliseconds.
type Block struct {
	Index        int             `json:"index"`
	Transaction  SaleTransaction `json:"transaction"`
	PreviousHash string          `json:"previousHash"`
	Nonce        int             `json:"nonce"`
	Timestamp    int64           `json:"timestamp"`
	Hash         string          `json:"hash"`
}

// blockPayload is the hash preimage. Field order is fixed: encoding/json
// marshals struct fields in declaration order, so the digest is stable.
type blockPayload struct {
	Index        int             `json:"index"`
	Transaction  SaleTransaction `json:"transaction"`
	PreviousHash string          `json:"previousHash"`
	Nonce        int             `json:"nonce"`
	Timestamp    int64           `json:"timestamp"`
}

func newTransaction(storeID string, products []Product) SaleTransaction {
	if products == nil {
		products = []Product{}
	}

	var total float64
	for _, p := range products {
		total += p.Price
	}

	now := time.Now().UnixMilli()
	return SaleTransaction{
		StoreID:   storeID,
		Products:  products,
		Total:     total,
		Timestamp: now,
		TxID:      transactionID(storeID, total, now),
	}
}

func transactionID(storeID string, total float64, timestamp int64) string {
	preimage := storeID + formatAmount(total) + strconv.FormatInt(timestamp, 10)
	sum := sha256.Sum256([]byte(preimage))
	return hex.EncodeToString(sum[:])[:16]
}

// formatAmount renders a monetary value without trailing zeros, so the
// txid preimage for 42.50 is "42.5" and for 100.00 is "100".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newBlock(index int, tx SaleTransaction, previousHash string) *Block {
	b := &Block{
		Index:        index,
		Transaction:  tx,
		PreviousHash: previousHash,
		Nonce:        0,
		Timestamp:    time.Now().UnixMilli(),
	}
	b.Hash = b.computeHash()
	return b
}

func (b *Block) computeHash() string {
	payload := blockPayload{
		Index:        b.Index,
		Transaction:  b.Transaction,
		PreviousHash: b.PreviousHash,
		Nonce:        b.Nonce,
		Timestamp:    b.Timestamp,
	}

	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// mine brute-forces the nonce until the hash carries the required number
// of leading zero hex digits. Always terminates at the low difficulties
// this chain is configured with.
func (b *Block) mine(difficulty int) {
	target := strings.Repeat("0", difficulty)
	for !strings.HasPrefix(b.Hash, target) {
		b.Nonce++
		b.Hash = b.computeHash()
	}
}

const barcodeLength = 12

func randomBarcode() string {
	digits := make([]byte, barcodeLength)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}
