package server

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/applicant-selector/internal/db"
	"github.com/jonathan/applicant-selector/internal/export"
	"github.com/jonathan/applicant-selector/internal/types"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, export.FormatCSV)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, export.FormatXLSX)
}

// handleExport renders every applicant, optionally filtered by status, as a download
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, format export.Format) {
	filters, err := parseFilters(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	applicants, err := AllApplicants(r.Context(), s.store, filters.Status)
	if err != nil {
		log.Printf("[export] Failed to load applicants: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to export applicants")
		return
	}

	// Render fully before writing so a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := export.Write(&buf, format, applicants); err != nil {
		log.Printf("[export] Failed to render %s: %v", format, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to export applicants")
		return
	}

	filename := fmt.Sprintf("applicants_%s.%s", time.Now().Format("2006-01-02"), format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("[export] Failed to write response: %v", err)
	}
}

// ApplicantLister pages through stored applicants
type ApplicantLister interface {
	ListApplicants(ctx context.Context, filters db.ApplicantFilters) ([]types.ScoredApplicant, error)
}

// AllApplicants reads every applicant page by page, highest score first.
func AllApplicants(ctx context.Context, store ApplicantLister, status types.Status) ([]types.ScoredApplicant, error) {
	all := []types.ScoredApplicant{}
	filters := db.ApplicantFilters{Status: status, Limit: db.MaxListLimit}
	for {
		page, err := store.ListApplicants(ctx, filters)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < filters.Limit {
			return all, nil
		}
		filters.Offset += len(page)
	}
}
