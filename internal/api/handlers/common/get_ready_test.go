package common_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github/splitpot/go-relay/internal/api"
	"github/splitpot/go-relay/internal/test"
)

func TestGetHealthy(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.Upstreams) {
		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Equal(t, "OK.", res.Body.String())
	})
}

func TestGetReadyReadiness(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.Upstreams) {
		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Equal(t, "Ready.", res.Body.String())
	})
}

func TestGetReadyReadinessBroken(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.Upstreams) {
		// forcefully remove an initialized component to check if ready state works
		s.Relay = nil

		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, 521, res.Result().StatusCode)
		require.Equal(t, "Not ready.", res.Body.String())
	})
}

func TestGetVersion(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.Upstreams) {
		res := test.PerformRequest(t, s, "GET", "/-/version", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.NotEmpty(t, res.Body.String())
	})
}

func TestGetMetrics(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, _ *test.Upstreams) {
		res := test.PerformRequest(t, s, "GET", "/-/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		require.Contains(t, res.Body.String(), "go_goroutines")
	})
}
