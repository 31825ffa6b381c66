package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/applicant-selector/internal/types"
)

const uniqueViolation = "23505"

// applicantColumns is the column list shared by every applicant SELECT
const applicantColumns = `a.id, a.full_name, a.email, a.phone, a.education, a.experience_years,
		a.overall_score, a.skills_score, a.experience_score, a.education_score,
		a.assessment_score, a.resume_quality_score, a.cover_letter_score,
		a.status, a.motivation_level, a.availability, a.created_at, a.updated_at,
		COALESCE(array_agg(s.skill_name ORDER BY s.id) FILTER (WHERE s.skill_name IS NOT NULL), '{}'::varchar[]) AS skills`

// CreateApplicant inserts the applicant and its skills in one transaction.
// On success the generated id and timestamps are written back into a.
func (db *DB) CreateApplicant(ctx context.Context, a *types.ScoredApplicant) (uuid.UUID, error) {
	if err := validateApplicant(a); err != nil {
		return uuid.Nil, err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			fmt.Printf("Rollback error: %v\n", rErr)
		}
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO applicants (
			full_name, email, phone, education, experience_years,
			overall_score, skills_score, experience_score, education_score,
			assessment_score, resume_quality_score, cover_letter_score,
			status, motivation_level, availability
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id, created_at, updated_at`,
		a.FullName, a.Email, a.Phone, a.Education, a.ExperienceYears,
		a.OverallScore, a.SkillsScore, a.ExperienceScore, a.EducationScore,
		a.AssessmentScore, a.ResumeQualityScore, a.CoverLetterScore,
		string(a.Status), a.MotivationLevel, a.Availability,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return uuid.Nil, &DuplicateEmailError{Email: a.Email}
		}
		return uuid.Nil, fmt.Errorf("failed to insert applicant: %w", err)
	}

	for _, skill := range a.Skills {
		_, err := tx.Exec(ctx,
			`INSERT INTO skills (applicant_id, skill_name) VALUES ($1, $2)
			 ON CONFLICT (applicant_id, skill_name) DO NOTHING`,
			a.ID, skill,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert skill %q: %w", skill, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit applicant: %w", err)
	}
	return a.ID, nil
}

// GetApplicant retrieves one applicant with its skills. It returns nil, nil when the id is unknown.
func (db *DB) GetApplicant(ctx context.Context, id uuid.UUID) (*types.ScoredApplicant, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicantColumns+`
		 FROM applicants a
		 LEFT JOIN skills s ON s.applicant_id = a.id
		 WHERE a.id = $1
		 GROUP BY a.id`,
		id,
	)
	a, err := scanApplicant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}
	return a, nil
}

// ListApplicants returns applicants ordered by overall score, highest first
func (db *DB) ListApplicants(ctx context.Context, filters ApplicantFilters) ([]types.ScoredApplicant, error) {
	query, args := buildListQuery(filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	applicants := []types.ScoredApplicant{}
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		applicants = append(applicants, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return applicants, nil
}

// ListSkills returns the skill rows of one applicant in insertion order
func (db *DB) ListSkills(ctx context.Context, applicantID uuid.UUID) ([]Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT skill_name, proficiency_level FROM skills WHERE applicant_id = $1 ORDER BY id`,
		applicantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	skills := []Skill{}
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.Name, &s.ProficiencyLevel); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// GetStatistics counts applicants per status and averages their overall score
func (db *DB) GetStatistics(ctx context.Context) (*Statistics, error) {
	var s Statistics
	err := db.pool.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4),
			COALESCE(ROUND(AVG(overall_score), 2), 0)::float8
		 FROM applicants`,
		string(types.StatusHighlyRecommended), string(types.StatusRecommended),
		string(types.StatusConsider), string(types.StatusUnderReview),
	).Scan(&s.Total, &s.HighlyRecommended, &s.Recommended, &s.Consider, &s.UnderReview, &s.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate statistics: %w", err)
	}
	return &s, nil
}

// DeleteApplicant deletes an applicant and its skills (via cascade)
func (db *DB) DeleteApplicant(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM applicants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete applicant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// buildListQuery assembles the filtered, paginated applicant query
func buildListQuery(filters ApplicantFilters) (string, []any) {
	filters = filters.Normalize()

	var sb strings.Builder
	sb.WriteString(`SELECT ` + applicantColumns + `
		FROM applicants a
		LEFT JOIN skills s ON s.applicant_id = a.id
		WHERE 1=1`)
	args := []any{}
	argNum := 1

	if filters.Status != "" {
		fmt.Fprintf(&sb, " AND a.status = $%d", argNum)
		args = append(args, string(filters.Status))
		argNum++
	}

	fmt.Fprintf(&sb, " GROUP BY a.id ORDER BY a.overall_score DESC, a.created_at ASC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.Limit, filters.Offset)
	return sb.String(), args
}

// scanApplicant reads one row produced by applicantColumns
func scanApplicant(row pgx.Row) (*types.ScoredApplicant, error) {
	var a types.ScoredApplicant
	var status string
	err := row.Scan(
		&a.ID, &a.FullName, &a.Email, &a.Phone, &a.Education, &a.ExperienceYears,
		&a.OverallScore, &a.SkillsScore, &a.ExperienceScore, &a.EducationScore,
		&a.AssessmentScore, &a.ResumeQualityScore, &a.CoverLetterScore,
		&status, &a.MotivationLevel, &a.Availability, &a.CreatedAt, &a.UpdatedAt,
		&a.Skills,
	)
	if err != nil {
		return nil, err
	}
	a.Status = types.Status(status)
	return &a, nil
}

func validateApplicant(a *types.ScoredApplicant) error {
	if a == nil {
		return &InvalidApplicantError{Field: "applicant", Message: "is nil"}
	}
	if strings.TrimSpace(a.Email) == "" {
		return &InvalidApplicantError{Field: "email", Message: "is required"}
	}
	if !a.Status.IsValid() {
		return &InvalidApplicantError{Field: "status", Message: fmt.Sprintf("unknown status %q", a.Status)}
	}
	if a.OverallScore < 0 || a.OverallScore > 100 {
		return &InvalidApplicantError{Field: "overall_score", Message: "must be between 0 and 100"}
	}
	return nil
}
