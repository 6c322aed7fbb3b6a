package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type transferFixture struct {
	repo     *repository.PurchaseRequestRepository
	settings SettingsService
	transfer TransferService
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()
	clock := func() time.Time { return baseTime }

	store := storage.NewMemoryStore()
	repo := repository.NewPurchaseRequestRepository(store, zap.NewNop(), repository.WithClock(clock))
	repo.Init(false)

	settings := NewSettingsService(store, nil, zap.NewNop())
	transfer := NewTransferService(repo, settings, zap.NewNop(), WithTransferClock(clock))
	return &transferFixture{repo: repo, settings: settings, transfer: transfer}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTransferFixture(t)
	ctx := context.Background()

	src.repo.Add(repository.NewPurchaseRequest{Description: "Pallet jacks", Department: "Operations"})
	src.repo.Add(repository.NewPurchaseRequest{Description: "Safety vests", Department: "Operations"})
	_, err := src.settings.Update(ctx, "theme", "evening")
	require.NoError(t, err)

	bundle := src.transfer.Export(ctx)
	assert.Equal(t, baseTime, bundle.ExportedAt)
	require.Len(t, bundle.PurchaseRequests, 2)

	blob, err := json.Marshal(bundle)
	require.NoError(t, err)

	dst := newTransferFixture(t)
	summary, err := dst.transfer.Import(ctx, blob)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.PurchaseRequests)

	imported := dst.repo.List()
	require.Len(t, imported, 2)
	assert.Equal(t, "Safety vests", imported[0].Description)
	assert.Equal(t, "Pallet jacks", imported[1].Description)
	assert.Equal(t, bundle.PurchaseRequests[0].PRNumber, imported[0].PRNumber)

	assert.Equal(t, "evening", dst.settings.Get(ctx).Theme)

	// The sequence continues past the imported numbers.
	next := dst.repo.Add(repository.NewPurchaseRequest{})
	assert.Equal(t, "PR-2026-01003", next.PRNumber)
}

func TestImportMissingSettingsKeepsDefaults(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()

	blob := []byte(`{"purchase_requests":[{"id":"x","pr_number":"PR-2026-01001","status":"SUBMITTED"}]}`)
	_, err := f.transfer.Import(ctx, blob)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultSettings(), f.settings.Get(ctx))
}

func TestImportRejectsBadPayloads(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()
	f.repo.Add(repository.NewPurchaseRequest{Description: "Existing"})

	tests := []struct {
		name string
		blob string
	}{
		{"not json", `{broken`},
		{"missing collection", `{"settings":{}}`},
		{"record without id", `{"purchase_requests":[{"pr_number":"PR-2026-01001","status":"SUBMITTED"}]}`},
		{"record without number", `{"purchase_requests":[{"id":"x","status":"SUBMITTED"}]}`},
		{"unknown status", `{"purchase_requests":[{"id":"x","pr_number":"PR-2026-01001","status":"SHIPPED"}]}`},
		{"duplicate ids", `{"purchase_requests":[
			{"id":"x","pr_number":"PR-2026-01001","status":"SUBMITTED"},
			{"id":"x","pr_number":"PR-2026-01002","status":"SUBMITTED"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.transfer.Import(ctx, []byte(tt.blob))
			assert.ErrorIs(t, err, model.ErrInvalidImport)
		})
	}

	// Nothing was replaced by any of the refused imports.
	list := f.repo.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Existing", list[0].Description)
}

func TestImportEmptyCollectionIsAllowed(t *testing.T) {
	f := newTransferFixture(t)
	ctx := context.Background()
	f.repo.Add(repository.NewPurchaseRequest{})

	summary, err := f.transfer.Import(ctx, []byte(`{"purchase_requests":[]}`))
	require.NoError(t, err)
	assert.Zero(t, summary.PurchaseRequests)
	assert.Equal(t, 0, f.repo.Count())
}
