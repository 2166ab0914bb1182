package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/caseapi"
)

func TestTransitions(t *testing.T) {
	t.Run("accept_redirects_with_notice", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		w := f.postForm("/cases/AB-1/accept", nil)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/cases/AB-1?notice=case-accepted", w.Header().Get("Location"))
		assert.Equal(t, []string{"accept"}, f.api.transitions)
	})

	t.Run("upstream_rejection_rerenders_detail_with_message", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")
		f.api.transitionErr = &caseapi.APIError{StatusCode: 400, Message: "case already accepted"}

		w := f.postForm("/cases/AB-1/accept", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "case already accepted")
		// Still the detail page underneath the banner.
		assert.Contains(t, w.Body.String(), "John Example")
	})

	t.Run("reopen_redirects_with_notice", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		w := f.postForm("/cases/AB-1/reopen", nil)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/cases/AB-1?notice=case-reopened", w.Header().Get("Location"))
	})
}

func TestCloseCase(t *testing.T) {
	t.Run("form_lists_outcome_codes", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		w := f.get("/cases/AB-1/close")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "CLSP")
		assert.Contains(t, w.Body.String(), "Closed, speaking to provider")
	})

	t.Run("valid_code_closes_and_redirects", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		w := f.postForm("/cases/AB-1/close", url.Values{"outcome_code": {"CLSP"}})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/cases/AB-1?notice=case-closed", w.Header().Get("Location"))
		assert.Equal(t, []string{"close:CLSP"}, f.api.transitions)
	})

	t.Run("missing_code_rerenders", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		w := f.postForm("/cases/AB-1/close", url.Values{})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Select an outcome code")
		assert.Empty(t, f.api.transitions)
	})

	t.Run("unlisted_code_rerenders", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		w := f.postForm("/cases/AB-1/close", url.Values{"outcome_code": {"MADEUP"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Select an outcome code from the list")
	})
}
