package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/growthpro-dashboard/internal/api"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/models"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/presence"
	"github.com/BerylCAtieno/growthpro-dashboard/internal/snapshot"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	rnd := presence.NewSeededRandom(4)
	svc := snapshot.NewService(presence.NewMetricsGenerator(rnd), presence.NewHeadlineGenerator(rnd, nil), snapshot.Options{Logger: logger})
	srv := httptest.NewServer(api.NewRouter(api.NewHandler(svc, logger)))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientAgainstServer(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL+"/", nil)

	snap, err := c.GetBusinessData(context.Background(), models.BusinessIdentity{Name: "Joe's Cafe", Location: "Austin"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snap.Rating, 3.0)
	assert.Contains(t, snap.Headline, "Joe's Cafe")

	h, err := c.RegenerateHeadline(context.Background(), "Joe's Cafe & Bar", "Austin, TX")
	require.NoError(t, err)
	assert.Contains(t, h.Headline, "Joe's Cafe & Bar")
	assert.Contains(t, h.Headline, "Austin, TX")
}

func TestClientValidationErrors(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL, nil)

	_, err := c.GetBusinessData(context.Background(), models.BusinessIdentity{Name: "", Location: "X"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.True(t, apiErr.IsClientFault())
	assert.Equal(t, "Business name and location are required", apiErr.Error())

	_, err = c.RegenerateHeadline(context.Background(), "X", "")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Business name and location are required as query parameters", apiErr.Message)
}

func TestClientFallbackMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()
	c := New(srv.URL, nil)

	_, err := c.GetBusinessData(context.Background(), models.BusinessIdentity{Name: "A", Location: "B"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fallbackBusinessData, apiErr.Message)
	assert.False(t, apiErr.IsClientFault())

	_, err = c.RegenerateHeadline(context.Background(), "A", "B")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fallbackHeadline, apiErr.Message)
}

func TestClientTransportErrors(t *testing.T) {
	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rating": 4.1`))
	}))
	defer garbage.Close()

	var tErr *TransportError
	_, err := New(garbage.URL, nil).GetBusinessData(context.Background(), models.BusinessIdentity{Name: "A", Location: "B"})
	require.ErrorAs(t, err, &tErr)

	partial := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rating": 4.1}`))
	}))
	defer partial.Close()
	_, err = New(partial.URL, nil).GetBusinessData(context.Background(), models.BusinessIdentity{Name: "A", Location: "B"})
	require.ErrorAs(t, err, &tErr)
	_, err = New(partial.URL, nil).RegenerateHeadline(context.Background(), "A", "B")
	require.ErrorAs(t, err, &tErr)

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()
	_, err = New(closed.URL, nil).RegenerateHeadline(context.Background(), "A", "B")
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, "regenerate headline", tErr.Op)
	assert.NotEmpty(t, tErr.Reason())
	assert.NotContains(t, tErr.Reason(), closed.URL)
}

func TestTransportErrorReason(t *testing.T) {
	inner := errors.New("connection refused")
	wrapped := &TransportError{Op: "fetch business data", Err: fmt.Errorf("Post \"http://x/business-data\": dial tcp: %w", inner)}
	assert.Equal(t, "connection refused", wrapped.Reason())
	assert.Equal(t, "", (&TransportError{Op: "x"}).Reason())
}
