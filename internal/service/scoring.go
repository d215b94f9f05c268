package service

import (
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/scoring"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/pkg/logger"
)

// ScoringService fronts the pure scoring functions with request logging.
type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

func (s *ScoringService) Calculate(data scoring.CreditScoreData) (*scoring.CreditScoreResult, error) {
	result, err := scoring.Calculate(data)
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"credit_score":  result.CreditScore,
		"risk_category": result.RiskCategory,
	}).Debug("Credit score calculated")

	return result, nil
}

func (s *ScoringService) Breakdown(data scoring.CreditScoreData) (*scoring.CreditScoreBreakdown, error) {
	return scoring.Breakdown(data)
}

func (s *ScoringService) Report(data scoring.CreditScoreData) (*scoring.CreditReport, error) {
	return scoring.Report(data)
}

func (s *ScoringService) Sample() (scoring.CreditScoreData, *scoring.CreditScoreResult, error) {
	data := scoring.SampleData()
	result, err := scoring.Calculate(data)
	return data, result, err
}
