package turnstile

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "/turnstile/v0/siteverify", r.URL.Path)
			assert.Equal(t, "secret-1", r.PostForm.Get("secret"))
			assert.Equal(t, "tok", r.PostForm.Get("response"))
			assert.Equal(t, "1.2.3.4", r.PostForm.Get("remoteip"))
			fmt.Fprint(w, `{"success":true}`)
		}))
		defer srv.Close()

		v := NewVerifier(srv.Client(), "secret-1", srv.URL)
		assert.NoError(t, v.Verify(context.Background(), "tok", "1.2.3.4"))
	})

	t.Run("rejected token includes error codes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"success":false,"error-codes":["invalid-input-response"]}`)
		}))
		defer srv.Close()

		v := NewVerifier(srv.Client(), "secret-1", srv.URL)
		err := v.Verify(context.Background(), "tok", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid-input-response")
	})

	t.Run("no secret disables verification", func(t *testing.T) {
		v := NewVerifier(nil, "", "http://unused")
		assert.False(t, v.Enabled())
		assert.NoError(t, v.Verify(context.Background(), "", ""))
	})

	t.Run("empty token fails when enabled", func(t *testing.T) {
		v := NewVerifier(nil, "secret-1", "http://unused")
		assert.Error(t, v.Verify(context.Background(), "", ""))
	})
}
