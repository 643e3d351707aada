package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hyunsoo-an/purchase-review/internal/common"
	"github.com/hyunsoo-an/purchase-review/internal/entity"
	"github.com/hyunsoo-an/purchase-review/internal/repository"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.pool != nil {
		if err := s.pool.Ping(r.Context()); err != nil {
			s.writeError(w, r, common.NewAppError("DB_UNAVAILABLE", "database ping failed", err))
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSubmitCase(w http.ResponseWriter, r *http.Request) {
	var input entity.CaseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeError(w, r, common.NewAppError("BAD_REQUEST", "invalid request body", common.ErrInvalidInput))
		return
	}
	if input.SubmittedAt.IsZero() {
		input.SubmittedAt = time.Now().UTC()
	}

	result, err := s.review.Review(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if s.cases != nil {
		if err := s.cases.SaveResult(r.Context(), input, result); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	manual := 0
	for _, f := range result.Supplementary {
		if f.ManualCheck {
			manual++
		}
	}
	s.metrics.ObserveReview(string(result.ApplicantKind), len(result.Supplementary), manual)

	s.writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.cases.ListRecent(r.Context(), 50)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []repository.CaseSummary{}
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	caseID, err := uuid.Parse(chi.URLParam(r, "caseID"))
	if err != nil {
		s.writeError(w, r, common.NewAppError("BAD_REQUEST", "invalid case id", common.ErrInvalidInput))
		return
	}
	result, err := s.cases.GetResult(r.Context(), caseID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	caseID, err := uuid.Parse(chi.URLParam(r, "caseID"))
	if err != nil {
		s.writeError(w, r, common.NewAppError("BAD_REQUEST", "invalid case id", common.ErrInvalidInput))
		return
	}
	result, err := s.cases.GetResult(r.Context(), caseID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.export.ReportXLSX(result)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="review-%s.xlsx"`, caseID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("http.encode_failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL"
	message := "internal error"

	var appErr *common.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
	}
	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrPolicyInvalid):
		status = http.StatusUnprocessableEntity
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("http.error", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Warn("http.client_error", "path", r.URL.Path, "code", code)
	}

	s.writeJSON(w, status, map[string]string{"code": code, "message": message})
}
