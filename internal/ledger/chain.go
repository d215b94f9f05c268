package ledger

import (
	"fmt"
	"math"
	"sync"

	"github.com/Aayush-D-C/Syntax-HackForBusiness/pkg/errors"
)

const (
	// DefaultDifficulty is the number of leading zero hex digits a mined
	// block hash must carry.
	DefaultDifficulty = 2

	// MaxDifficulty bounds worst-case mining latency; proof-of-work cost
	// grows 16x per extra digit.
	MaxDifficulty = 4

	genesisPreviousHash = "0"
	genesisStoreID      = "System"
)

// Chain is an append-only, hash-linked sequence of sale blocks with a
// fixed proof-of-work difficulty. All writes are serialized by the mutex;
// the chain lives in memory only and restarts from genesis.
type Chain struct {
	mu         sync.RWMutex
	blocks     []*Block
	difficulty int
}

// NewChain creates a chain holding only the genesis block. Difficulty is
// clamped to [1, MaxDifficulty]; zero or negative falls back to the default.
func NewChain(difficulty int) *Chain {
	if difficulty <= 0 {
		difficulty = DefaultDifficulty
	}
	if difficulty > MaxDifficulty {
		difficulty = MaxDifficulty
	}

	genesis := newBlock(0, newTransaction(genesisStoreID, nil), genesisPreviousHash)
	return &Chain{
		blocks:     []*Block{genesis},
		difficulty: difficulty,
	}
}

func (c *Chain) Difficulty() int {
	return c.difficulty
}

func (c *Chain) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// AddSale appends a mined block recording one sale. Products may be empty;
// an empty sale yields total 0 and still produces a valid block. Products
// without a barcode get a generated 12-digit one.
func (c *Chain) AddSale(storeID string, products []Product) (*Block, error) {
	if err := validateSale(storeID, products); err != nil {
		return nil, err
	}

	normalized := make([]Product, len(products))
	for i, p := range products {
		if p.Barcode == "" {
			p.Barcode = randomBarcode()
		}
		normalized[i] = p
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tx := newTransaction(storeID, normalized)
	block := newBlock(len(c.blocks), tx, c.blocks[len(c.blocks)-1].Hash)
	block.mine(c.difficulty)
	c.blocks = append(c.blocks, block)

	return block, nil
}

func validateSale(storeID string, products []Product) error {
	if storeID == "" {
		return errors.New(errors.ErrInvalidInput, "store id is required", nil)
	}
	for i, p := range products {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return errors.New(errors.ErrInvalidInput,
				fmt.Sprintf("product %d has a non-finite price", i), nil)
		}
		if p.Price < 0 {
			return errors.New(errors.ErrInvalidInput,
				fmt.Sprintf("product %d has a negative price", i), nil)
		}
	}
	return nil
}

// ValidationResult reports chain integrity. BadIndex is the first failing
// block, or -1 when the chain is intact.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	BadIndex int    `json:"badIndex"`
	Reason   string `json:"reason,omitempty"`
}

// Validate recomputes every block's hash and checks linkage to its
// predecessor. It does not re-check the proof-of-work target: a block
// whose stored hash misses the leading-zero prefix still validates as
// long as the hash matches its fields (kept from the source behavior).
func (c *Chain) Validate() ValidationResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.validateLocked()
}

func (c *Chain) validateLocked() ValidationResult {
	for i := 1; i < len(c.blocks); i++ {
		current := c.blocks[i]
		previous := c.blocks[i-1]

		if current.Hash != current.computeHash() {
			return ValidationResult{Valid: false, BadIndex: i, Reason: "stored hash does not match block contents"}
		}
		if current.PreviousHash != previous.Hash {
			return ValidationResult{Valid: false, BadIndex: i, Reason: "broken link to previous block"}
		}
	}
	return ValidationResult{Valid: true, BadIndex: -1}
}

func (c *Chain) IsValid() bool {
	return c.Validate().Valid
}

// StoreSales is the per-store slice of a sales summary.
type StoreSales struct {
	SalesCount int     `json:"salesCount"`
	Revenue    float64 `json:"revenue"`
}

// Summary aggregates all non-genesis blocks. TotalSales counts items sold,
// Transactions counts blocks.
type Summary struct {
	TotalSales   int                   `json:"totalSales"`
	TotalRevenue float64               `json:"totalRevenue"`
	Transactions int                   `json:"transactions"`
	StoreSales   map[string]StoreSales `json:"storeSales"`
}

// SalesSummary aggregates recorded sales, optionally filtered to one store.
// An empty storeID matches every store.
func (c *Chain) SalesSummary(storeID string) Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.summaryLocked(storeID)
}

func (c *Chain) summaryLocked(storeID string) Summary {
	summary := Summary{StoreSales: make(map[string]StoreSales)}

	for i := 1; i < len(c.blocks); i++ {
		tx := c.blocks[i].Transaction
		if storeID != "" && tx.StoreID != storeID {
			continue
		}

		summary.TotalSales += len(tx.Products)
		summary.TotalRevenue += tx.Total
		summary.Transactions++

		store := summary.StoreSales[tx.StoreID]
		store.SalesCount += len(tx.Products)
		store.Revenue += tx.Total
		summary.StoreSales[tx.StoreID] = store
	}

	return summary
}
