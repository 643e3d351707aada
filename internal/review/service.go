// Package review runs the full case pipeline: classify each extracted file,
// merge the payloads, settle the applicant kind, reconcile cross-document
// facts, and evaluate the rule set.
package review

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hyunsoo-an/purchase-review/constants"
	"github.com/hyunsoo-an/purchase-review/internal/aggregate"
	"github.com/hyunsoo-an/purchase-review/internal/applicant"
	"github.com/hyunsoo-an/purchase-review/internal/classify"
	"github.com/hyunsoo-an/purchase-review/internal/common"
	"github.com/hyunsoo-an/purchase-review/internal/entity"
	"github.com/hyunsoo-an/purchase-review/internal/policy"
	"github.com/hyunsoo-an/purchase-review/internal/reconcile"
	"github.com/hyunsoo-an/purchase-review/internal/rules"
)

// Service reviews cases against one policy. A Service is safe for concurrent
// use; all mutable state is per call.
type Service struct {
	policy     *policy.Policy
	engine     *rules.Engine
	reconciler *reconcile.Reconciler
	logger     *slog.Logger
}

func NewService(p *policy.Policy, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	engine, err := rules.New(p, logger)
	if err != nil {
		return nil, err
	}
	return &Service{
		policy:     p,
		engine:     engine,
		reconciler: reconcile.New(logger),
		logger:     logger,
	}, nil
}

// Review runs the pipeline over one case. The same input always yields the
// same findings; only ReviewedAt differs between runs.
func (s *Service) Review(ctx context.Context, input entity.CaseInput) (*entity.ReviewResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(input.Files) == 0 {
		return nil, common.NewAppError("REVIEW_EMPTY_CASE", "case has no extracted files", common.ErrInvalidInput)
	}

	caseID := input.CaseID
	if caseID == uuid.Nil {
		caseID = uuid.New()
	}

	result := entity.NewReviewResult(caseID)
	agg := aggregate.New(result, s.logger)

	var unclassified []string
	for _, file := range input.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		decision := classify.Classify(file.Label, file.Text)
		if decision.Category == constants.Unclassified {
			unclassified = append(unclassified, file.FileName)
			s.logger.Debug("classify.unresolved", "case_id", caseID.String(), "file", file.FileName)
			continue
		}
		s.logger.Debug("classify.detected",
			"case_id", caseID.String(),
			"file", file.FileName,
			"category", string(decision.Category),
			"confidence", decision.Confidence)

		agg.Apply(aggregate.Observation{
			Category:   decision.Category,
			Confidence: decision.Confidence,
			FileName:   file.FileName,
			Text:       file.Text,
			Payload:    file.Payload,
		})
	}

	result = agg.Finalize()
	result.UnclassifiedFiles = unclassified

	applicant.Classify(result, applicant.Context{
		Address:     input.Address,
		Summary:     input.Summary,
		DisplayName: input.DisplayName,
	}, s.logger)

	s.reconciler.Run(result)

	if err := s.engine.Evaluate(result); err != nil {
		return nil, err
	}

	result.DocumentDates = collectDocumentDates(result, s.policy)

	s.logger.Info("review.completed",
		"case_id", caseID.String(),
		"applicant_kind", string(result.ApplicantKind),
		"documents", result.TotalDocuments,
		"findings", len(result.Supplementary),
		"unclassified", len(unclassified))
	return result, nil
}
