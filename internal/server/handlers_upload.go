package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/applicant-selector/internal/pipeline"
)

// multipartMemory is the in-memory budget for ParseMultipartForm; larger parts spill to disk
const multipartMemory = 32 << 20

type assessmentInput struct {
	Score int `validate:"min=0,max=100"`
}

// handleCompleteApplication accepts a resume and/or cover letter and scores the applicant
func (s *Server) handleCompleteApplication(w http.ResponseWriter, r *http.Request) {
	// Two files plus form overhead
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Upload exceeds the size limit")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Printf("[upload] Failed to remove temporary files: %v", err)
		}
	}()

	sub, err := s.parseSubmission(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.intake.Process(r.Context(), sub)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("[upload] Failed to process application: %v", err)
			s.jsonResponse(w, status, map[string]any{
				"success": false,
				"error":   "Failed to process application",
				"message": err.Error(),
			})
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"success":       true,
		"data":          result.Applicant,
		"extractedData": result.Extracted,
		"message":       "Application submitted successfully",
	})
}

func (s *Server) parseSubmission(r *http.Request) (pipeline.Submission, error) {
	var sub pipeline.Submission
	var err error

	if sub.Resume, err = s.formUpload(r.MultipartForm, pipeline.FieldResume); err != nil {
		return sub, err
	}
	if sub.CoverLetter, err = s.formUpload(r.MultipartForm, pipeline.FieldCoverLetter); err != nil {
		return sub, err
	}
	if sub.Resume == nil && sub.CoverLetter == nil {
		return sub, &pipeline.MissingDocumentError{}
	}

	if sub.AssessmentScore, err = s.parseAssessment(r.MultipartForm.Value["assessmentScore"]); err != nil {
		return sub, err
	}
	if sub.AssessmentScore == nil && s.defaultAssessmentScore != nil {
		score := *s.defaultAssessmentScore
		sub.AssessmentScore = &score
	}
	return sub, nil
}

// formUpload reads the first file posted under field. A missing field yields nil.
func (s *Server) formUpload(form *multipart.Form, field string) (*pipeline.Upload, error) {
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	header := headers[0]
	if header.Size > s.maxUploadBytes {
		return nil, &ErrFileTooLarge{Field: field, MaxBytes: s.maxUploadBytes}
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s upload: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, &ErrFileTooLarge{Field: field, MaxBytes: s.maxUploadBytes}
	}

	return &pipeline.Upload{
		Filename: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

func (s *Server) parseAssessment(values []string) (*int, error) {
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(values[0]))
	if err != nil {
		return nil, &ErrValidation{Field: "assessmentScore", Message: "must be an integer"}
	}
	if err := s.validate.Struct(assessmentInput{Score: n}); err != nil {
		return nil, &ErrValidation{Field: "assessmentScore", Message: "must be between 0 and 100"}
	}
	return &n, nil
}
