package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/Aayush-D-C/Syntax-HackForBusiness/pkg/errors"
)

// CreditScoreData is one window of business-activity metrics for a
// shopkeeper. All fields are caller-supplied; nothing is read from the
// sales ledger.
type CreditScoreData struct {
	Transactions         float64 `json:"transactions"`
	OnTimePayments       float64 `json:"on_time_payments"`
	MissedPayments       float64 `json:"missed_payments"`
	AvgTransactionAmount float64 `json:"avg_transaction_amount"`
	Profit               float64 `json:"profit"`
	Revenue              float64 `json:"revenue"`
	Expenses             float64 `json:"expenses"`
	DaysActive           float64 `json:"days_active"`
}

// Metrics are the derived ratios the score is built from.
type Metrics struct {
	PaymentReliability   float64 `json:"payment_reliability"`
	ProfitMargin         float64 `json:"profit_margin"`
	TransactionVolume    float64 `json:"transaction_volume"`
	AvgDailyTransactions float64 `json:"avg_daily_transactions"`
}

type CreditScoreResult struct {
	CreditScore     int     `json:"credit_score"`
	RiskCategory    string  `json:"risk_category"`
	CalculationDate string  `json:"calculation_date"`
	MetricsUsed     Metrics `json:"metrics_used"`
}

type CreditScoreBreakdown struct {
	PaymentReliabilityScore int `json:"payment_reliability_score"`
	ProfitMarginScore       int `json:"profit_margin_score"`
	TransactionVolumeScore  int `json:"transaction_volume_score"`
	DailyConsistencyScore   int `json:"daily_consistency_score"`
	ProfitTrendScore        int `json:"profit_trend_score"`
	TotalScore              int `json:"total_score"`
}

// newBusinessMargin is the assumed profit margin for a profitable shop
// that has no recorded revenue yet.
const newBusinessMargin = 0.2

type derivedMetrics struct {
	paymentReliability   float64
	profitMargin         float64
	avgDailyTransactions float64
}

type factorScores struct {
	paymentReliability float64
	profitMargin       float64
	transactionVolume  float64
	dailyConsistency   float64
	profitTrend        float64
}

func (f factorScores) sum() float64 {
	return f.paymentReliability + f.profitMargin + f.transactionVolume +
		f.dailyConsistency + f.profitTrend
}

func deriveMetrics(data CreditScoreData) derivedMetrics {
	var m derivedMetrics

	totalPayments := data.OnTimePayments + data.MissedPayments
	if totalPayments > 0 {
		m.paymentReliability = data.OnTimePayments / totalPayments
	}

	switch {
	case data.Revenue > 0 && data.Profit >= 0:
		m.profitMargin = data.Profit / data.Revenue
	case data.Revenue > 0:
		m.profitMargin = 0
	case data.Profit > 0:
		m.profitMargin = newBusinessMargin
	}

	if data.DaysActive > 0 {
		m.avgDailyTransactions = data.Transactions / data.DaysActive
	}

	return m
}

// scoreFactors is the single source of truth for the five weighted
// contributions. Both the total score and the breakdown go through it so
// the thresholds cannot drift apart.
func scoreFactors(data CreditScoreData) (factorScores, derivedMetrics) {
	m := deriveMetrics(data)

	var f factorScores

	// Payment reliability, up to 30 points, continuous.
	f.paymentReliability = m.paymentReliability * 30

	// Profit margin, up to 25 points, stepped.
	switch {
	case m.profitMargin >= 0.30:
		f.profitMargin = 25
	case m.profitMargin >= 0.20:
		f.profitMargin = 20
	case m.profitMargin >= 0.10:
		f.profitMargin = 15
	case m.profitMargin >= 0.05:
		f.profitMargin = 10
	case m.profitMargin > 0:
		f.profitMargin = 5
	}

	// Transaction volume, up to 20 points, stepped on the raw count.
	switch {
	case data.Transactions >= 20:
		f.transactionVolume = 20
	case data.Transactions >= 15:
		f.transactionVolume = 15
	case data.Transactions >= 10:
		f.transactionVolume = 10
	case data.Transactions >= 5:
		f.transactionVolume = 5
	}

	// Daily consistency, up to 15 points, stepped.
	switch {
	case m.avgDailyTransactions >= 2:
		f.dailyConsistency = 15
	case m.avgDailyTransactions >= 1:
		f.dailyConsistency = 10
	case m.avgDailyTransactions >= 0.5:
		f.dailyConsistency = 5
	}

	// Profit trend, up to 10 points.
	switch {
	case data.Profit > 0:
		f.profitTrend = 10
	case data.Profit == 0:
		f.profitTrend = 5
	}

	return f, m
}

func totalScore(f factorScores) int {
	return int(math.Round(clamp(f.sum(), 0, 100)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Validate rejects non-finite metric values before they can propagate
// into a nonsensical score.
func Validate(data CreditScoreData) error {
	fields := map[string]float64{
		"transactions":           data.Transactions,
		"on_time_payments":       data.OnTimePayments,
		"missed_payments":        data.MissedPayments,
		"avg_transaction_amount": data.AvgTransactionAmount,
		"profit":                 data.Profit,
		"revenue":                data.Revenue,
		"expenses":               data.Expenses,
		"days_active":            data.DaysActive,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrInvalidInput,
				fmt.Sprintf("field %s is not a finite number", name), nil)
		}
	}
	return nil
}

// Calculate maps a metrics window to a 0-100 score and a risk category.
// Deterministic and side-effect free; safe to call concurrently.
func Calculate(data CreditScoreData) (*CreditScoreResult, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	factors, metrics := scoreFactors(data)
	score := totalScore(factors)

	return &CreditScoreResult{
		CreditScore:     score,
		RiskCategory:    RiskCategory(score),
		CalculationDate: time.Now().UTC().Format(time.RFC3339),
		MetricsUsed: Metrics{
			PaymentReliability:   metrics.paymentReliability,
			ProfitMargin:         metrics.profitMargin,
			TransactionVolume:    data.Transactions,
			AvgDailyTransactions: metrics.avgDailyTransactions,
		},
	}, nil
}

// Breakdown re-derives the per-factor points for display. TotalScore is
// computed from the unrounded factor sum, so it always equals the score
// Calculate returns for the same data.
func Breakdown(data CreditScoreData) (*CreditScoreBreakdown, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	factors, _ := scoreFactors(data)

	return &CreditScoreBreakdown{
		PaymentReliabilityScore: int(math.Round(factors.paymentReliability)),
		ProfitMarginScore:       int(math.Round(factors.profitMargin)),
		TransactionVolumeScore:  int(math.Round(factors.transactionVolume)),
		DailyConsistencyScore:   int(math.Round(factors.dailyConsistency)),
		ProfitTrendScore:        int(math.Round(factors.profitTrend)),
		TotalScore:              totalScore(factors),
	}, nil
}

// RiskCategory maps a score to its ordinal label, highest band first.
func RiskCategory(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	case score >= 20:
		return "Moderate Risk"
	default:
		return "High Risk"
	}
}
