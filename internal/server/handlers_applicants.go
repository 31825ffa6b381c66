package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/applicant-selector/internal/db"
	"github.com/jonathan/applicant-selector/internal/types"
)

// applicantDetail adds skill rows to an applicant record
type applicantDetail struct {
	*types.ScoredApplicant
	SkillDetails []db.Skill `json:"skill_details"`
}

// handleListApplicants returns applicants ordered by overall score
func (s *Server) handleListApplicants(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	applicants, err := s.store.ListApplicants(r.Context(), filters)
	if err != nil {
		log.Printf("[applicants] Failed to list applicants: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch applicants")
		return
	}
	if applicants == nil {
		applicants = []types.ScoredApplicant{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    applicants,
		"count":   len(applicants),
	})
}

// handleGetApplicant returns one applicant with skill rows
func (s *Server) handleGetApplicant(w http.ResponseWriter, r *http.Request) {
	id, ok := s.applicantID(w, r)
	if !ok {
		return
	}

	applicant, err := s.store.GetApplicant(r.Context(), id)
	if err != nil {
		log.Printf("[applicants] Failed to get applicant %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch applicant")
		return
	}
	if applicant == nil {
		s.errorResponse(w, http.StatusNotFound, "Applicant not found")
		return
	}

	skills, err := s.store.ListSkills(r.Context(), id)
	if err != nil {
		log.Printf("[applicants] Failed to list skills for %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch applicant")
		return
	}
	if skills == nil {
		skills = []db.Skill{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    applicantDetail{ScoredApplicant: applicant, SkillDetails: skills},
	})
}

// handleDeleteApplicant removes an applicant and its skills
func (s *Server) handleDeleteApplicant(w http.ResponseWriter, r *http.Request) {
	id, ok := s.applicantID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteApplicant(r.Context(), id); err != nil {
		status := HTTPStatus(err)
		if status == http.StatusNotFound {
			s.errorResponse(w, status, "Applicant not found")
			return
		}
		log.Printf("[applicants] Failed to delete applicant %s: %v", id, err)
		s.errorResponse(w, status, "Failed to delete applicant")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Applicant deleted successfully",
	})
}

// handleStatistics returns per-status totals
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStatistics(r.Context())
	if err != nil {
		log.Printf("[applicants] Failed to compute statistics: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    stats,
	})
}

func (s *Server) applicantID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid applicant ID")
		return uuid.Nil, false
	}
	return id, true
}

func parseFilters(r *http.Request) (db.ApplicantFilters, error) {
	q := r.URL.Query()
	var filters db.ApplicantFilters

	if status := q.Get("status"); status != "" {
		filters.Status = types.Status(status)
		if !filters.Status.IsValid() {
			return filters, &ErrValidation{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
		}
	}

	var err error
	if filters.Limit, err = queryInt(q.Get("limit"), "limit"); err != nil {
		return filters, err
	}
	if filters.Offset, err = queryInt(q.Get("offset"), "offset"); err != nil {
		return filters, err
	}
	return filters.Normalize(), nil
}

func queryInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &ErrValidation{Field: field, Message: "must be a non-negative integer"}
	}
	return n, nil
}
