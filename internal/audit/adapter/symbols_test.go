package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolRepository_Lookup(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/symbol-search", r.URL.Path)
		assert.Equal(t, "Acme", r.URL.Query().Get("keywords"))
		w.Write([]byte(`{"best_matches":[{"symbol":"ACME","name":"Acme Corp"},{"symbol":"ACMX","name":"Acme Mining"}]}`))
	}))
	defer server.Close()

	repo := NewSymbolRepository(config.HTTPSource{BaseURL: server.URL}, logger.NewNop())

	symbol, err := repo.Lookup(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "ACME", symbol, "first best match wins")

	symbol, err = repo.Lookup(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "ACME", symbol)
	assert.Equal(t, int32(1), calls.Load(), "second lookup must come from cache")
}

func TestSymbolRepository_NoMatchIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"best_matches":[]}`))
	}))
	defer server.Close()

	repo := NewSymbolRepository(config.HTTPSource{BaseURL: server.URL}, logger.NewNop())

	_, err := repo.Lookup(context.Background(), "Unlisted Widgets")
	assert.ErrorIs(t, err, ErrNotFound)
}
