package esp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailgunSenderSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mg.zvezde365.com/messages", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "key-123", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "info@zvezde365.com", r.PostForm.Get("to"))
		assert.Equal(t, "marija@example.com", r.PostForm.Get("cc"))
		assert.Equal(t, "marija@example.com", r.PostForm.Get("h:Reply-To"))
		assert.Equal(t, "natalChart", r.PostForm.Get("v:form_type"))

		_, _ = w.Write([]byte(`{"id":"<20250101.1@mg.zvezde365.com>","message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	s := NewMailgunSender("key-123", "mg.zvezde365.com", srv.URL, srv.Client())
	res, err := s.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "20250101.1@mg.zvezde365.com", res.MessageID)
	assert.Equal(t, "mailgun", res.Provider)
}

func TestMailgunSenderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Forbidden"))
	}))
	defer srv.Close()

	_, err := NewMailgunSender("bad", "mg.zvezde365.com", srv.URL, srv.Client()).Send(context.Background(), testMessage())
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusUnauthorized, perr.StatusCode)
	assert.Equal(t, "Forbidden", perr.Detail)
}

func TestMailgunSenderRequiresDomain(t *testing.T) {
	_, err := NewMailgunSender("key", "", "", nil).Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
