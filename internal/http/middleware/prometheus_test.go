package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	return app, m, reg
}

func TestPrometheusMiddleware_CountsByMethodPathStatus(t *testing.T) {
	app, m, _ := newMetricsApp(t)
	app.Get("/properties", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/properties", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	app.Post("/upload", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big")
	})

	for _, r := range []struct{ method, target string }{
		{"GET", "/properties"},
		{"GET", "/properties"},
		{"POST", "/properties"},
		{"POST", "/upload"},
	} {
		_, err := app.Test(httptest.NewRequest(r.method, r.target, nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/properties", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("POST", "/properties", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("POST", "/upload", "413")))
}

func TestPrometheusMiddleware_SkipsMetricsEndpoint(t *testing.T) {
	app, _, reg := newMetricsApp(t)
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		assert.Empty(t, mf.GetMetric(), mf.GetName())
	}
}

func TestPrometheusMiddleware_UsesRoutePattern(t *testing.T) {
	app, m, _ := newMetricsApp(t)
	app.Get("/properties/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, id := range []string{"1", "2", "3"} {
		_, err := app.Test(httptest.NewRequest("GET", "/properties/"+id, nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/properties/:id", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
