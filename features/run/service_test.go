package run

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsready/backend/internal/catalog"
	"shopsready/backend/internal/config"
	"shopsready/backend/internal/document"
	"shopsready/backend/internal/pipeline"
)

type TestPublisher struct {
	Topics []string
	Bodies [][]byte
}

func (m *TestPublisher) Publish(topic string, body []byte) error {
	m.Topics = append(m.Topics, topic)
	m.Bodies = append(m.Bodies, body)
	return nil
}

type TestRepo struct {
	Saved       *Run
	Runs        map[string]*Run
	LastStatus  string
	LastCatalog catalog.Catalog
	DeletedID   string
	UpdatedSt   string
}

func (m *TestRepo) Save(ctx context.Context, r *Run) error {
	r.ID = "run-1"
	m.Saved = r
	return nil
}

func (m *TestRepo) Get(ctx context.Context, id string) (*Run, error) {
	if m.Runs == nil {
		return nil, errors.New("not found")
	}
	r, ok := m.Runs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return r, nil
}

func (m *TestRepo) List(ctx context.Context) ([]Run, error) {
	var runs []Run
	for _, r := range m.Runs {
		runs = append(runs, *r)
	}
	return runs, nil
}

func (m *TestRepo) Count(ctx context.Context) (int, error) {
	return len(m.Runs), nil
}

func (m *TestRepo) UpdateResult(ctx context.Context, id, status string, cat catalog.Catalog, chunksTotal, chunksFailed int, errMsg string) error {
	m.LastStatus = status
	m.LastCatalog = cat
	return nil
}

func (m *TestRepo) UpdateCatalog(ctx context.Context, id string, cat catalog.Catalog) error {
	m.LastCatalog = cat
	return nil
}

func (m *TestRepo) UpdateStatus(ctx context.Context, id, status string) error {
	m.UpdatedSt = status
	return nil
}

func (m *TestRepo) Delete(ctx context.Context, id string) error {
	m.DeletedID = id
	return nil
}

type TestPipeline struct {
	Result *pipeline.Result
	Err    error
	GotCfg catalog.Config
}

func (m *TestPipeline) Run(ctx context.Context, doc document.SourceDocument, cfg catalog.Config) (*pipeline.Result, error) {
	m.GotCfg = cfg
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

func TestServiceCreate_Success(t *testing.T) {
	repo := &TestRepo{}
	pub := &TestPublisher{}
	pipe := &TestPipeline{Result: &pipeline.Result{
		Catalog:     catalog.Catalog{{SyncID: "p1"}},
		ChunksTotal: 2, ChunksFailed: 1,
	}}
	svc := NewService(repo, pipe, pub)

	cfg := catalog.Config{UseFallbacks: true, PriceMarkup: 1.2}
	run, err := svc.Create(context.Background(), "catalog.txt", []byte("products"), cfg)
	require.NoError(t, err)

	assert.Equal(t, StatusReview, run.Status)
	assert.Equal(t, 2, run.ChunksTotal)
	assert.Equal(t, 1, run.ChunksFailed)
	assert.Len(t, run.Catalog, 1)
	assert.Equal(t, cfg, pipe.GotCfg)
	assert.Equal(t, StatusReview, repo.LastStatus)

	// started + completed lifecycle events
	require.Len(t, pub.Topics, 2)
	assert.Equal(t, config.TopicRunLifecycle, pub.Topics[0])

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(pub.Bodies[1], &event))
	assert.Equal(t, "completed", event["event"])
	assert.Equal(t, "run-1", event["run_id"])
}

func TestServiceCreate_PipelineFailureMarksRunFailed(t *testing.T) {
	repo := &TestRepo{}
	pub := &TestPublisher{}
	pipe := &TestPipeline{Err: pipeline.ErrNoProducts}
	svc := NewService(repo, pipe, pub)

	_, err := svc.Create(context.Background(), "catalog.txt", []byte("products"), catalog.Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipeline.ErrNoProducts))
	assert.Equal(t, StatusFailed, repo.LastStatus)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(pub.Bodies[len(pub.Bodies)-1], &event))
	assert.Equal(t, "failed", event["event"])
}

func TestServiceCreate_UnsupportedMediaRejected(t *testing.T) {
	svc := NewService(&TestRepo{}, &TestPipeline{}, &TestPublisher{})

	_, err := svc.Create(context.Background(), "firmware.bin", []byte{0x00, 0x01}, catalog.Config{})
	require.Error(t, err)

	var parseErr *document.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestServiceUpdateProduct(t *testing.T) {
	existing := &Run{
		ID:     "run-1",
		Status: StatusReview,
		Catalog: catalog.Catalog{
			{SyncID: "p1", Shopify: catalog.ShopifyService{Title: "Old"}},
			{SyncID: "p2"},
		},
	}
	repo := &TestRepo{Runs: map[string]*Run{"run-1": existing}}
	svc := NewService(repo, &TestPipeline{}, &TestPublisher{})

	updated := catalog.Record{Shopify: catalog.ShopifyService{Title: "New"}}
	run, err := svc.UpdateProduct(context.Background(), "run-1", "p1", updated)
	require.NoError(t, err)
	assert.Equal(t, "New", run.Catalog[0].Shopify.Title)
	assert.Equal(t, "p1", run.Catalog[0].SyncID, "sync id is preserved on edit")
	assert.Equal(t, "p2", run.Catalog[1].SyncID)
}

func TestServiceUpdateProduct_NotEditableOutsideReview(t *testing.T) {
	repo := &TestRepo{Runs: map[string]*Run{
		"run-1": {ID: "run-1", Status: StatusFailed},
	}}
	svc := NewService(repo, &TestPipeline{}, &TestPublisher{})

	_, err := svc.UpdateProduct(context.Background(), "run-1", "p1", catalog.Record{})
	assert.True(t, errors.Is(err, ErrNotEditable))
}

func TestServiceUpdateProduct_UnknownSyncID(t *testing.T) {
	repo := &TestRepo{Runs: map[string]*Run{
		"run-1": {ID: "run-1", Status: StatusReview, Catalog: catalog.Catalog{{SyncID: "p1"}}},
	}}
	svc := NewService(repo, &TestPipeline{}, &TestPublisher{})

	_, err := svc.UpdateProduct(context.Background(), "run-1", "ghost", catalog.Record{})
	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestServiceExport_ShopifyCSV(t *testing.T) {
	repo := &TestRepo{Runs: map[string]*Run{
		"run-1": {ID: "run-1", Status: StatusReview, Catalog: catalog.Catalog{{
			SyncID: "p1",
			Shopify: catalog.ShopifyService{
				Handle: "p1", Title: "P",
				Variants: []catalog.Variant{{Price: "9.99", OptionName: "Title", OptionValue: "Default Title"}},
			},
		}}},
	}}
	pub := &TestPublisher{}
	svc := NewService(repo, &TestPipeline{}, pub)

	filename, contentType, data, err := svc.Export(context.Background(), "run-1", "shopify")
	require.NoError(t, err)
	assert.Equal(t, "shopify_import.csv", filename)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(data), `"Handle"`)
	assert.Equal(t, StatusExported, repo.UpdatedSt)
	require.NotEmpty(t, pub.Topics)
	assert.Equal(t, config.TopicExport, pub.Topics[len(pub.Topics)-1])
}

func TestServiceExport_FailedRunRejected(t *testing.T) {
	repo := &TestRepo{Runs: map[string]*Run{
		"run-1": {ID: "run-1", Status: StatusFailed},
	}}
	svc := NewService(repo, &TestPipeline{}, &TestPublisher{})

	_, _, _, err := svc.Export(context.Background(), "run-1", "shopify")
	assert.True(t, errors.Is(err, ErrNotEditable))
}

func TestServiceDelete(t *testing.T) {
	repo := &TestRepo{}
	svc := NewService(repo, &TestPipeline{}, &TestPublisher{})

	require.NoError(t, svc.Delete(context.Background(), "run-9"))
	assert.Equal(t, "run-9", repo.DeletedID)
}
