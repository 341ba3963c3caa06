package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/nsqio/go-nsq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsready/backend/internal/catalog"
	"shopsready/backend/internal/config"
	"shopsready/backend/internal/document"
)

type stubExtractor struct{}

func (stubExtractor) Extract(ctx context.Context, chunk document.Chunk, cfg catalog.Config) ([]catalog.Record, error) {
	return nil, nil
}

func TestNew(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// NSQ producer does not connect until the first publish
	producer, err := nsq.NewProducer("localhost:4150", nsq.NewConfig())
	require.NoError(t, err)

	cfg := &config.Config{DailyRunLimit: 3, ChunkPageLimit: 10, ServerPort: 8081}

	app, err := New(cfg, db, stubExtractor{}, producer)
	require.NoError(t, err)
	assert.NotNil(t, app.Handler)
	assert.NotNil(t, app.RunService)
	assert.NotNil(t, app.AuditConsumer)

	// Verify route wiring
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	app.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
