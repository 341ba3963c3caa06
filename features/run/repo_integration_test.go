package run

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsready/backend/internal/catalog"
	"shopsready/backend/internal/testutils"
)

func TestPostgresRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	suite := testutils.NewIntegrationSuite(t)
	suite.Setup()
	defer suite.Teardown()

	repo := NewPostgresRepo(suite.DB)
	ctx := context.Background()

	run := &Run{
		Filename: "pricelist.pdf",
		Media:    "pdf",
		Status:   StatusProcessing,
		Config:   catalog.Config{UseFallbacks: true, DefaultQuantity: 5, PriceMarkup: 1.2},
	}
	require.NoError(t, repo.Save(ctx, run))
	require.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	cat := catalog.Catalog{
		{SyncID: "widget-a", Shopify: catalog.ShopifyService{Title: "Widget A"}},
		{SyncID: "widget-b", Shopify: catalog.ShopifyService{Title: "Widget B"}},
	}
	require.NoError(t, repo.UpdateResult(ctx, run.ID, StatusReview, cat, 2, 0, ""))

	got, err := repo.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusReview, got.Status)
	assert.True(t, got.Config.UseFallbacks)
	assert.Equal(t, 1.2, got.Config.PriceMarkup)
	require.Len(t, got.Catalog, 2)
	assert.Equal(t, "Widget A", got.Catalog[0].Shopify.Title)

	// Field edit during review keeps the rest of the catalog intact.
	got.Catalog[1].Shopify.Title = "Widget B Pro"
	require.NoError(t, repo.UpdateCatalog(ctx, run.ID, got.Catalog))
	got, err = repo.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget B Pro", got.Catalog[1].Shopify.Title)
	assert.Equal(t, "Widget A", got.Catalog[0].Shopify.Title)

	require.NoError(t, repo.UpdateStatus(ctx, run.ID, StatusExported))
	got, err = repo.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusExported, got.Status)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	products, err := repo.ProductCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, products)

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].Catalog)

	require.NoError(t, repo.Delete(ctx, run.ID))
	_, err = repo.Get(ctx, run.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// A failed run stores no catalog; the stats aggregates must keep working
	// with that row in the table.
	failed := &Run{Filename: "empty.pdf", Media: "pdf", Status: StatusProcessing}
	require.NoError(t, repo.Save(ctx, failed))
	require.NoError(t, repo.UpdateResult(ctx, failed.ID, StatusFailed, nil, 0, 0, "no products could be extracted"))

	got, err = repo.Get(ctx, failed.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Nil(t, got.Catalog)

	products, err = repo.ProductCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, products)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
