package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
)

func TestCaseList(t *testing.T) {
	t.Run("renders_case_rows", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1234-5678"] = sampleCase("AB-1234-5678")

		w := f.get("/cases")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "AB-1234-5678")
		assert.Contains(t, w.Body.String(), "John Example")
		assert.Contains(t, w.Body.String(), "1 case")
	})

	t.Run("no_results_message", func(t *testing.T) {
		f := newFixture(t)

		w := f.get("/cases?search=nobody")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No cases match your search.")
	})

	t.Run("upstream_failure_renders_error_page", func(t *testing.T) {
		f := newFixture(t)
		f.api.callErr = assertableError("upstream down")

		w := f.get("/cases")
		require.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Sorry, there is a problem with the service")
	})
}

func TestCaseDetail(t *testing.T) {
	t.Run("renders_case", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		w := f.get("/cases/AB-1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "John Example")
		assert.Contains(t, w.Body.String(), "28 Feb 1975")
		assert.Contains(t, w.Body.String(), "Accepted")
	})

	t.Run("unknown_case_is_404", func(t *testing.T) {
		f := newFixture(t)

		w := f.get("/cases/XX-404")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Case not found")
	})

	t.Run("notice_flag_renders_banner", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		w := f.get("/cases/AB-1?notice=details-saved")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Client details saved.")
	})

	t.Run("undo_banner_shows_removed_contact", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		f.sess.RemovedThirdParty = &domain.ThirdParty{FullName: "Mary Helper"}
		f.sess.RemovedThirdPartyCase = "AB-1"
		require.NoError(t, f.store.Update(context.Background(), f.sess))

		w := f.get("/cases/AB-1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Mary Helper has been removed")
		assert.Contains(t, w.Body.String(), "/cases/AB-1/third-party/undo")
	})
}

func TestClientDetailsEdit(t *testing.T) {
	t.Run("prefills_the_form", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		w := f.get("/cases/AB-1/client-details")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `value="John Example"`)
		assert.Contains(t, w.Body.String(), `value="1975"`)
	})

	t.Run("valid_post_saves_and_redirects", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		w := f.postForm("/cases/AB-1/client-details", url.Values{
			"full_name": {"John Q Example"},
			"dob_day":   {"28"}, "dob_month": {"2"}, "dob_year": {"1975"},
		})

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/cases/AB-1?notice=details-saved", w.Header().Get("Location"))
		assert.Equal(t, "John Q Example", f.api.cases["AB-1"].Client.FullName)
	})

	t.Run("future_dob_rerenders_with_error", func(t *testing.T) {
		f := newFixture(t)
		f.api.cases["AB-1"] = sampleCase("AB-1")

		w := f.postForm("/cases/AB-1/client-details", url.Values{
			"full_name": {"John Example"},
			"dob_day":   {"1"}, "dob_month": {"1"}, "dob_year": {"2999"},
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Date of birth must be in the past")
		// Nothing saved.
		assert.Equal(t, "John Example", f.api.cases["AB-1"].Client.FullName)
	})
}

func TestSupportNeeds(t *testing.T) {
	f := newFixture(t)
	f.api.cases["AB-1"] = sampleCase("AB-1")

	w := f.postForm("/cases/AB-1/support-needs", url.Values{
		"bsl_webcam": {"on"},
		"language":   {"Welsh"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cases/AB-1?notice=support-needs-saved", w.Header().Get("Location"))
	require.NotNil(t, f.api.cases["AB-1"].SupportNeeds)
	assert.True(t, f.api.cases["AB-1"].SupportNeeds.BSLWebcam)
	assert.Equal(t, "Welsh", f.api.cases["AB-1"].SupportNeeds.Language)
}

func TestFeedback(t *testing.T) {
	t.Run("valid_post_shows_sent_banner", func(t *testing.T) {
		f := newFixture(t)

		w := f.postForm("/feedback", url.Values{
			"issue":   {"other"},
			"comment": {"The search is slow."},
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Your feedback has been sent.")
		require.Len(t, f.api.feedback, 1)
		assert.Equal(t, "The search is slow.", f.api.feedback[0].Comment)
	})

	t.Run("missing_comment_rerenders", func(t *testing.T) {
		f := newFixture(t)

		w := f.postForm("/feedback", url.Values{"issue": {"other"}})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Enter your feedback")
		assert.Empty(t, f.api.feedback)
	})
}

// assertableError is a trivial error type for stubbing upstream failures.
type assertableError string

func (e assertableError) Error() string { return string(e) }
