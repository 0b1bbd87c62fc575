package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"propfinder/internal/config"
	"propfinder/internal/model"
)

func scorerForURL(url string) *ScorerClient {
	return NewScorerClient(&config.ScorerConfig{URL: url, Timeout: 5})
}

func TestScorerDisabledUsesFallback(t *testing.T) {
	scorer := scorerForURL("")

	assert.False(t, scorer.IsEnabled())
	got := scorer.Predict(context.Background(), model.PropertyFeatures{}, 350000)
	assert.Equal(t, 350000.0, got)
}

func TestScorerResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{"bare number", "512000.5", 512000.5},
		{"array", "[480000]", 480000},
		{"object", `{"price": 610000}`, 610000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got := scorerForURL(srv.URL).Predict(context.Background(), model.PropertyFeatures{}, 100000)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScorerErrorsFallBack(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model unavailable", http.StatusInternalServerError)
		}))
		defer srv.Close()

		got := scorerForURL(srv.URL).Predict(context.Background(), model.PropertyFeatures{}, 275000)
		assert.Equal(t, 275000.0, got)
	})

	t.Run("garbage response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		got := scorerForURL(srv.URL).Predict(context.Background(), model.PropertyFeatures{}, 275000)
		assert.Equal(t, 275000.0, got)
	})

	t.Run("unreachable service", func(t *testing.T) {
		got := scorerForURL("http://127.0.0.1:1/predict").Predict(context.Background(), model.PropertyFeatures{}, 275000)
		assert.Equal(t, 275000.0, got)
	})
}

func TestParsePrediction(t *testing.T) {
	_, err := parsePrediction([]byte(`{"score": 1}`))
	assert.Error(t, err)

	_, err = parsePrediction([]byte(`[]`))
	assert.Error(t, err)

	got, err := parsePrediction([]byte(`[420000, 9]`))
	assert.NoError(t, err)
	assert.Equal(t, 420000.0, got)
}
