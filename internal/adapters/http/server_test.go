package http

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espigot/internal/metrics"
	"github.com/aretw0/espigot/internal/testutils"
	"github.com/aretw0/espigot/pkg/domain"
	"github.com/aretw0/espigot/pkg/ports"
)

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	rr := serve(t, NewHandler(Options{}), "/health")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	rr := serve(t, NewHandler(Options{}), "/info")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "espigot-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
}

func TestGetDigits(t *testing.T) {
	h := NewHandler(Options{MaxDigits: 1000})

	tests := []struct {
		name   string
		target string
		code   int
		body   string
	}{
		{"Text", "/digits?n=10", http.StatusOK, "2.7182818284\n"},
		{"Series Engine", "/digits?n=10&engine=series", http.StatusOK, "2.7182818284\n"},
		{"Raw", "/digits?n=70&raw=true", http.StatusOK,
			"2.7182818284590452353602874713526624977572470936999595749669676277240766\n"},
		{"Wrapped", "/digits?n=70", http.StatusOK,
			"2.7182818284590452353602874713526624977572470936999595749669\n676277240766\n"},
		{"Zero", "/digits?n=0", http.StatusOK, "2.\n"},
		{"Invalid N", "/digits?n=ten", http.StatusBadRequest, ""},
		{"Negative N", "/digits?n=-1", http.StatusBadRequest, ""},
		{"Too Many", "/digits?n=1001", http.StatusBadRequest, ""},
		{"Unknown Engine", "/digits?n=5&engine=pi", http.StatusBadRequest, ""},
		{"Invalid Raw", "/digits?n=5&raw=maybe", http.StatusBadRequest, ""},
		{"Unknown Format", "/digits?n=5&format=xml", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, h, tt.target)
			assert.Equal(t, tt.code, rr.Code, rr.Body.String())
			if tt.body != "" {
				assert.Equal(t, tt.body, rr.Body.String())
			}
		})
	}
}

func TestGetDigits_DefaultCount(t *testing.T) {
	rr := serve(t, NewHandler(Options{}), "/digits?raw=1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, rr.Body.String(), len("2.")+defaultDigits+len("\n"))
}

func TestGetDigits_JSON(t *testing.T) {
	rr := serve(t, NewHandler(Options{}), "/digits?n=15&engine=series&format=json")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp DigitsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "series", string(resp.Engine))
	assert.Equal(t, 15, resp.Precision)
	assert.Equal(t, testutils.EPrefix(t, 15), resp.Digits)
}

func TestGetStream(t *testing.T) {
	h := NewHandler(Options{MaxDigits: 500})

	rr := serve(t, h, "/stream?n=10")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "data: 27182818284\n\nevent: done\ndata: \n\n", rr.Body.String())

	rr = serve(t, h, "/stream?n=70&engine=series")
	require.Equal(t, http.StatusOK, rr.Code)
	digits := "2" + testutils.EPrefix(t, 70)[2:]
	assert.Equal(t, "data: "+digits[:64]+"\n\ndata: "+digits[64:]+"\n\nevent: done\ndata: \n\n", rr.Body.String())

	assert.Equal(t, http.StatusBadRequest, serve(t, h, "/stream?n=501").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, "/stream?engine=pi").Code)
}

func TestGetTerms(t *testing.T) {
	h := NewHandler(Options{MaxDigits: 50})

	rr := serve(t, h, "/terms?n=12")
	require.Equal(t, http.StatusOK, rr.Code)
	var terms []int64
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &terms))
	assert.Equal(t, []int64{2, 1, 2, 1, 1, 4, 1, 1, 6, 1, 1, 8}, terms)

	rr = serve(t, h, "/terms")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &terms))
	assert.Len(t, terms, defaultTerms)

	assert.Equal(t, http.StatusBadRequest, serve(t, h, "/terms?n=51").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, "/terms?n=x").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(t, NewHandler(Options{}), "/metrics").Code)

	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)
	h := NewHandler(Options{Gatherer: reg, Hooks: c.Hooks()})

	require.Equal(t, http.StatusOK, serve(t, h, "/digits?n=20").Code)

	rr := serve(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `espigot_digits_emitted_total{engine="cfrac"} 21`)
}

// stubEngine streams a fixed digit and fails to format with err.
type stubEngine struct {
	digit domain.Digit
	err   error
}

func (e stubEngine) Engine() domain.EngineKind { return "stub" }

func (e stubEngine) Stream(ctx context.Context) iter.Seq[domain.Digit] {
	return func(yield func(domain.Digit) bool) {
		for yield(e.digit) {
		}
	}
}

func (e stubEngine) Format(context.Context, int) (string, error) { return "", e.err }

func TestEngineFactory(t *testing.T) {
	var requested []domain.EngineKind
	h := NewHandler(Options{
		Engines: func(kind domain.EngineKind) (ports.Engine, error) {
			requested = append(requested, kind)
			return stubEngine{digit: 4, err: errors.New("out of memory")}, nil
		},
	})

	rr := serve(t, h, "/digits?n=3&engine=series")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "4.444\n", rr.Body.String())

	rr = serve(t, h, "/stream?n=2")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "data: 444\n\nevent: done\ndata: \n\n", rr.Body.String())

	rr = serve(t, h, "/digits?n=3&format=json")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "out of memory")

	assert.Equal(t, []domain.EngineKind{domain.EngineSeries, domain.EngineCFrac, domain.EngineCFrac}, requested)
}

func TestEngineFactoryError(t *testing.T) {
	h := NewHandler(Options{
		Engines: func(domain.EngineKind) (ports.Engine, error) {
			return nil, errors.New("no engines left")
		},
	})
	rr := serve(t, h, "/digits?n=3")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "no engines left")
}
