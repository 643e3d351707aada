package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyunsoo-an/purchase-review/internal/common"
	"github.com/hyunsoo-an/purchase-review/internal/entity"
)

// CaseSummary is one row of the case listing.
type CaseSummary struct {
	CaseID        uuid.UUID `json:"case_id"`
	Address       string    `json:"address,omitempty"`
	ApplicantKind string    `json:"applicant_kind"`
	FindingCount  int       `json:"finding_count"`
	Complete      bool      `json:"complete"`
	ReviewedAt    time.Time `json:"reviewed_at"`
}

type CaseRepository interface {
	SaveResult(ctx context.Context, input entity.CaseInput, result *entity.ReviewResult) error
	GetResult(ctx context.Context, caseID uuid.UUID) (*entity.ReviewResult, error)
	ListRecent(ctx context.Context, limit int) ([]CaseSummary, error)
}

type caseRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCaseRepository(pool *pgxpool.Pool, logger *slog.Logger) CaseRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &caseRepository{pool: pool, logger: logger}
}

const saveResultSQL = `
INSERT INTO review_cases (case_id, address, display_name, applicant_kind, finding_count, complete, result, reviewed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (case_id) DO UPDATE SET
    address        = EXCLUDED.address,
    display_name   = EXCLUDED.display_name,
    applicant_kind = EXCLUDED.applicant_kind,
    finding_count  = EXCLUDED.finding_count,
    complete       = EXCLUDED.complete,
    result         = EXCLUDED.result,
    reviewed_at    = EXCLUDED.reviewed_at`

func (r *caseRepository) SaveResult(ctx context.Context, input entity.CaseInput, result *entity.ReviewResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return common.WrapError(err, "encode review result")
	}

	_, err = r.pool.Exec(ctx, saveResultSQL,
		result.CaseID,
		input.Address,
		input.DisplayName,
		string(result.ApplicantKind),
		len(result.Supplementary),
		result.IsReviewComplete(),
		payload,
		result.ReviewedAt,
	)
	if err != nil {
		r.logger.Error("failed to save review result", "case_id", result.CaseID, "error", err)
		return err
	}
	return nil
}

func (r *caseRepository) GetResult(ctx context.Context, caseID uuid.UUID) (*entity.ReviewResult, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx,
		`SELECT result FROM review_cases WHERE case_id = $1`, caseID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewAppError("CASE_NOT_FOUND", "no result for case", common.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to load review result", "case_id", caseID, "error", err)
		return nil, err
	}

	var result entity.ReviewResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, common.WrapError(err, "decode review result")
	}
	return &result, nil
}

func (r *caseRepository) ListRecent(ctx context.Context, limit int) ([]CaseSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx,
		`SELECT case_id, address, applicant_kind, finding_count, complete, reviewed_at
		   FROM review_cases
		  ORDER BY reviewed_at DESC
		  LIMIT $1`, limit)
	if err != nil {
		r.logger.Error("failed to list cases", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []CaseSummary
	for rows.Next() {
		var c CaseSummary
		if err := rows.Scan(&c.CaseID, &c.Address, &c.ApplicantKind, &c.FindingCount, &c.Complete, &c.ReviewedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
