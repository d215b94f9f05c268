package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/ledger"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/models"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/internal/repository"
	"github.com/Aayush-D-C/Syntax-HackForBusiness/pkg/logger"
)

// AuditScheduler periodically re-verifies chain integrity and persists
// the outcome as a ChainAudit row.
type AuditScheduler struct {
	cron      *cron.Cron
	chain     *ledger.Chain
	auditRepo *repository.AuditRepository
	cronExpr  string
}

func NewAuditScheduler(chain *ledger.Chain, auditRepo *repository.AuditRepository, cronExpr string) *AuditScheduler {
	return &AuditScheduler{
		cron:      cron.New(cron.WithSeconds()),
		chain:     chain,
		auditRepo: auditRepo,
		cronExpr:  cronExpr,
	}
}

func (s *AuditScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cronExpr, s.runAudit)
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("Chain audit scheduler started")
	return nil
}

func (s *AuditScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Chain audit scheduler stopped")
}

func (s *AuditScheduler) runAudit() {
	if err := s.RunAudit(context.Background()); err != nil {
		logger.Error("Chain audit failed:", err)
	}
}

// RunAudit performs one integrity check and stores the result. Also used
// as the manual trigger.
func (s *AuditScheduler) RunAudit(ctx context.Context) error {
	result := s.chain.Validate()

	audit := &models.ChainAudit{
		BlockCount: s.chain.Length(),
		Valid:      result.Valid,
		BadIndex:   result.BadIndex,
		Reason:     result.Reason,
	}
	if err := s.auditRepo.Create(ctx, audit); err != nil {
		return err
	}

	if result.Valid {
		logger.WithFields(map[string]interface{}{
			"block_count": audit.BlockCount,
		}).Info("Chain audit passed")
	} else {
		logger.WithFields(map[string]interface{}{
			"block_count": audit.BlockCount,
			"bad_index":   result.BadIndex,
			"reason":      result.Reason,
		}).Error("Chain audit detected an integrity violation")
	}

	return nil
}
