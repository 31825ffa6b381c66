package nlp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMatcher_MatchSkills(t *testing.T) {
	var got ParseRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/parse_resume/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"skills": ["Python", "NLP"], "names": ["Jane Doe"]}`))
	}))
	defer server.Close()

	m := NewHTTPMatcher(server.URL+"/", nil)
	skills, err := m.MatchSkills(context.Background(), "resume text", []string{"Python", "NLP", "AWS"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "NLP"}, skills)
	assert.Equal(t, "resume text", got.Text)
	assert.Equal(t, []string{"Python", "NLP", "AWS"}, got.Skills)
}

func TestHTTPMatcher_MatchSkills_RestrictsToCandidates(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			name:     "unknown skill dropped",
			response: `{"skills": ["Python", "Cobol"]}`,
			want:     []string{"Python"},
		},
		{
			name:     "oversized skill dropped",
			response: `{"skills": ["` + strings.Repeat("x", 150) + `", "AWS"]}`,
			want:     []string{"AWS"},
		},
		{
			name:     "candidate spelling and dedupe",
			response: `{"skills": ["python", " PYTHON ", "nlp"]}`,
			want:     []string{"Python", "NLP"},
		},
		{
			name:     "nothing matches",
			response: `{"skills": ["Haskell"]}`,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			skills, err := NewHTTPMatcher(server.URL, nil).
				MatchSkills(context.Background(), "resume text", []string{"Python", "NLP", "AWS"})

			require.NoError(t, err)
			assert.Equal(t, tt.want, skills)
		})
	}
}

func TestHTTPMatcher_Parse_ReturnsNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"skills": [], "names": ["Jane Doe"]}`))
	}))
	defer server.Close()

	resp, err := NewHTTPMatcher(server.URL, nil).Parse(context.Background(), ParseRequest{Text: "x"})

	require.NoError(t, err)
	assert.Empty(t, resp.Skills)
	assert.Equal(t, []string{"Jane Doe"}, resp.Names)
}

func TestHTTPMatcher_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "non-2xx status",
			status: http.StatusInternalServerError,
			body:   "boom",
			checkFn: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
				assert.Equal(t, "boom", statusErr.Body)
			},
		},
		{
			name:   "missing skills field",
			status: http.StatusOK,
			body:   `{"names": []}`,
			checkFn: func(t *testing.T, err error) {
				var respErr *ResponseError
				assert.True(t, errors.As(err, &respErr))
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `not json`,
			checkFn: func(t *testing.T, err error) {
				var respErr *ResponseError
				assert.True(t, errors.As(err, &respErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			skills, err := NewHTTPMatcher(server.URL, nil).MatchSkills(context.Background(), "x", []string{"Go"})
			require.Error(t, err)
			assert.Nil(t, skills)
			tt.checkFn(t, err)
		})
	}
}

func TestHTTPMatcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewHTTPMatcher(server.URL, nil).MatchSkills(ctx, "x", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPMatcher_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPMatcher(url, nil).MatchSkills(context.Background(), "x", nil)
	assert.Error(t, err)
}
