package scoring

import "math/rand"

// CreditReport bundles the score with advisory lists for the prediction
// screen.
type CreditReport struct {
	Result          CreditScoreResult    `json:"result"`
	Breakdown       CreditScoreBreakdown `json:"breakdown"`
	Strengths       []string             `json:"strengths"`
	Weaknesses      []string             `json:"weaknesses"`
	Recommendations []string             `json:"recommendations"`
}

func Report(data CreditScoreData) (*CreditReport, error) {
	result, err := Calculate(data)
	if err != nil {
		return nil, err
	}
	breakdown, err := Breakdown(data)
	if err != nil {
		return nil, err
	}

	return &CreditReport{
		Result:          *result,
		Breakdown:       *breakdown,
		Strengths:       strengths(*breakdown),
		Weaknesses:      weaknesses(*breakdown),
		Recommendations: Recommendations(result.CreditScore),
	}, nil
}

// Recommendations returns guidance for the given score band.
func Recommendations(score int) []string {
	switch {
	case score >= 80:
		return []string{
			"Maintain your excellent payment history",
			"Consider expanding your business operations",
			"You're eligible for higher credit limits",
			"Focus on maintaining high profit margins",
		}
	case score >= 60:
		return []string{
			"Increase your monthly transactions",
			"Ensure timely payments",
			"Consider diversifying your product range",
			"Work on improving profit margins",
		}
	case score >= 40:
		return []string{
			"Focus on increasing monthly revenue",
			"Improve payment reliability",
			"Consider reducing expenses",
			"Build consistent transaction history",
		}
	default:
		return []string{
			"Prioritize on-time payments",
			"Focus on increasing daily transactions",
			"Work on improving profit margins",
			"Consider business optimization strategies",
			"Build a consistent transaction history",
		}
	}
}

func strengths(b CreditScoreBreakdown) []string {
	var out []string
	if b.PaymentReliabilityScore >= 25 {
		out = append(out, "Excellent payment reliability")
	}
	if b.ProfitMarginScore >= 20 {
		out = append(out, "Strong profit margins")
	}
	if b.TransactionVolumeScore >= 15 {
		out = append(out, "High transaction volume")
	}
	if b.DailyConsistencyScore >= 10 {
		out = append(out, "Consistent daily activity")
	}
	if b.ProfitTrendScore >= 8 {
		out = append(out, "Positive profit trend")
	}
	if len(out) == 0 {
		out = []string{"Building credit history"}
	}
	return out
}

func weaknesses(b CreditScoreBreakdown) []string {
	var out []string
	if b.PaymentReliabilityScore < 20 {
		out = append(out, "Improve payment reliability")
	}
	if b.ProfitMarginScore < 15 {
		out = append(out, "Work on profit margins")
	}
	if b.TransactionVolumeScore < 10 {
		out = append(out, "Increase transaction volume")
	}
	if b.DailyConsistencyScore < 8 {
		out = append(out, "Improve daily consistency")
	}
	if b.ProfitTrendScore < 5 {
		out = append(out, "Focus on profitability")
	}
	if len(out) == 0 {
		out = []string{"Continue building business metrics"}
	}
	return out
}

// SampleData generates plausible random metrics for the demo endpoint.
func SampleData() CreditScoreData {
	return CreditScoreData{
		Transactions:         float64(rand.Intn(100) + 20),
		OnTimePayments:       float64(rand.Intn(80) + 10),
		MissedPayments:       float64(rand.Intn(10)),
		AvgTransactionAmount: float64(rand.Intn(2000) + 500),
		Profit:               float64(rand.Intn(50000) + 10000),
		Revenue:              float64(rand.Intn(100000) + 50000),
		Expenses:             float64(rand.Intn(80000) + 30000),
		DaysActive:           float64(rand.Intn(30) + 15),
	}
}
