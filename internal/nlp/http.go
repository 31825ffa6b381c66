// Package nlp implements remote semantic skill matchers.
package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/applicant-selector/internal/extraction"
	"github.com/jonathan/applicant-selector/internal/schemas"
)

const (
	parseResumePath = "/parse_resume/"
	maxResponseBody = 1 << 20
	maxErrorBody    = 512
)

// ParseRequest is the body sent to the NLP service
type ParseRequest struct {
	Text   string   `json:"text"`
	Skills []string `json:"skills"`
}

// ParseResponse is the body returned by the NLP service
type ParseResponse struct {
	Skills []string `json:"skills"`
	Names  []string `json:"names,omitempty"`
}

// HTTPMatcher calls an external NLP service to match skills semantically
type HTTPMatcher struct {
	baseURL    string
	httpClient *http.Client
}

var _ extraction.SkillMatcher = (*HTTPMatcher)(nil)

// NewHTTPMatcher creates a matcher for the service at baseURL.
// A nil httpClient uses http.DefaultClient; timeouts come from the caller's context.
func NewHTTPMatcher(baseURL string, httpClient *http.Client) *HTTPMatcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPMatcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// MatchSkills implements extraction.SkillMatcher. Skills the service returns
// that are not in candidates are dropped; the rest use the candidate spelling.
func (m *HTTPMatcher) MatchSkills(ctx context.Context, text string, candidates []string) ([]string, error) {
	resp, err := m.Parse(ctx, ParseRequest{Text: text, Skills: candidates})
	if err != nil {
		return nil, err
	}
	return restrictToCandidates(resp.Skills, candidates), nil
}

// restrictToCandidates keeps the found skills that match a candidate
// case-insensitively, once each, in the order they were found.
func restrictToCandidates(found, candidates []string) []string {
	canonical := make(map[string]string, len(candidates))
	for _, c := range candidates {
		canonical[strings.ToLower(c)] = c
	}

	matched := make([]string, 0, len(found))
	seen := make(map[string]struct{}, len(found))
	for _, s := range found {
		name, ok := canonical[strings.ToLower(strings.TrimSpace(s))]
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		matched = append(matched, name)
	}
	return matched
}

// Parse sends req to the service and returns its validated response
func (m *HTTPMatcher) Parse(ctx context.Context, req ParseRequest) (*ParseResponse, error) {
	if req.Skills == nil {
		req.Skills = []string{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+parseResumePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("nlp service request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read nlp service response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(data)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(snippet)}
	}

	return decodeResponse(data)
}

// decodeResponse validates data against the response schema and decodes it
func decodeResponse(data []byte) (*ParseResponse, error) {
	if err := schemas.ValidateEmbedded(schemas.SkillMatchResponseSchema, string(data)); err != nil {
		return nil, &ResponseError{Message: "schema validation failed", Cause: err}
	}

	var parsed ParseResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &ResponseError{Message: "failed to decode JSON", Cause: err}
	}
	return &parsed, nil
}
