// Package applicant decides whether the selling party is an individual or a
// corporation. Detection is an ordered predicate chain over the merged case;
// the first positive signal wins and the result is cached on the case result.
package applicant

import (
	"log/slog"
	"strings"

	"github.com/hyunsoo-an/purchase-review/constants"
	"github.com/hyunsoo-an/purchase-review/internal/entity"
)

// corpKeywords flag a corporate party in a name or free text. Korean legal
// forms, business-sector words, and the common English suffixes.
var corpKeywords = []string{
	"건설", "법인", "주식회사", "(주)", "㈜", "유한회사", "합명회사",
	"합자회사", "사단법인", "재단법인", "농협", "조합", "코퍼레이션",
	"개발", "산업", "부동산", "투자", "홀딩스", "그룹", "에셋", "종합",
	"엔지니어링", "건축", "토건", "주택", "디벨로퍼", "파트너스", "자산",
	"corporation", "corp", "inc", "ltd", "llc", "holdings", "company",
}

// corpSuffixes are the sector suffixes used by the weakest heuristic, which
// only fires on a long name with no birth date.
var corpSuffixes = []string{
	"건설", "개발", "산업", "부동산", "투자", "종합", "건축", "주택", "에셋",
}

// Context carries the case-level text fields searched by the fallback
// predicate when the owner name itself carries no signal.
type Context struct {
	Address     string
	Summary     string
	DisplayName string
}

type predicate struct {
	name  string
	check func(r *entity.ReviewResult, ctx Context) bool
}

var predicates = []predicate{
	{"corporate_documents", func(r *entity.ReviewResult, _ Context) bool {
		return r.Corporate.HasAnyCorporateDocument()
	}},
	{"owner_name_keyword", func(r *entity.ReviewResult, _ Context) bool {
		return containsCorpKeyword(r.SaleApplication.Owner.Name)
	}},
	{"case_text_keyword", func(_ *entity.ReviewResult, ctx Context) bool {
		return containsCorpKeyword(ctx.Address + " " + ctx.Summary + " " + ctx.DisplayName)
	}},
	{"long_name_sector_suffix", func(r *entity.ReviewResult, _ Context) bool {
		owner := r.SaleApplication.Owner
		if owner.BirthDate != "" || len([]rune(owner.Name)) < 4 {
			return false
		}
		for _, suffix := range corpSuffixes {
			if strings.HasSuffix(owner.Name, suffix) {
				return true
			}
		}
		return false
	}},
}

// Classify sets ApplicantKind, the corporate flag, and the display name on
// the result, and returns the kind.
func Classify(r *entity.ReviewResult, ctx Context, logger *slog.Logger) constants.ApplicantKind {
	if logger == nil {
		logger = slog.Default()
	}

	for _, p := range predicates {
		if p.check(r, ctx) {
			r.ApplicantKind = constants.ApplicantCorporation
			r.Corporate.IsCorporation = true
			if r.ApplicantName == "" {
				r.ApplicantName = r.SaleApplication.Owner.Name
			}
			logger.Debug("applicant.corporation_detected", "signal", p.name)
			return constants.ApplicantCorporation
		}
	}

	r.ApplicantKind = constants.ApplicantIndividual
	if r.ApplicantName == "" {
		r.ApplicantName = r.SaleApplication.Owner.Name
	}
	return constants.ApplicantIndividual
}

func containsCorpKeyword(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range corpKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
