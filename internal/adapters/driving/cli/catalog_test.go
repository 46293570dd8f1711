package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
)

func TestCatalogList_FetchesOnFirstUse(t *testing.T) {
	ts := setupTestServices(t, detailService(), interiorService())

	out := mustRun(t, "catalog", "list")

	assert.Equal(t, 1, ts.source.fetches)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "full-detail")
	assert.Contains(t, out, "Full Detail")
	assert.Contains(t, out, "$49.00")
	assert.Contains(t, out, "interior")
	assert.Regexp(t, `│ full-detail\s+│ Full Detail\s+│ 3\s+│ \$49\.00\s+│`, out)

	mustRun(t, "catalog", "list")
	assert.Equal(t, 1, ts.source.fetches, "the stored catalog is reused")
}

func TestCatalogList_Empty(t *testing.T) {
	setupTestServices(t)

	out := mustRun(t, "catalog", "list")

	assert.Contains(t, out, "No services in the catalog")
}

func TestCatalogList_JSON(t *testing.T) {
	setupTestServices(t, detailService())

	out := mustRun(t, "catalog", "list", "--json")

	var list []domain.Service
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "full-detail", list[0].ID)
	assert.Len(t, list[0].Tiers, 3)
}

func TestCatalogList_SourceError(t *testing.T) {
	ts := setupTestServices(t)
	ts.source.err = errors.New("tenant suspended")

	_, err := runCommand(t, "catalog", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tenant suspended")
}

func TestCatalogShow(t *testing.T) {
	setupTestServices(t, detailService())

	out := mustRun(t, "catalog", "show", "full-detail")

	assert.Contains(t, out, "Full Detail (full-detail)")
	assert.Contains(t, out, "Inside and out")
	assert.Contains(t, out, "Category: auto")
	assert.Contains(t, out, "[1] Premium  $89.00 (was $109.00)  POPULAR")
	assert.Contains(t, out, "[2] Ultimate  $1,249.00")
	assert.Contains(t, out, "- Carnauba wax")
	assert.Contains(t, out, "- ceramic")
}

func TestCatalogShow_SuggestsCloseMatches(t *testing.T) {
	setupTestServices(t, detailService(), interiorService())

	_, err := runCommand(t, "catalog", "show", "full-detial")

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "did you mean full-detail")
}

func TestCatalogImport(t *testing.T) {
	ts := setupTestServices(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`services:
  - id: lawn
    name: Lawn Care
    tiers:
      - id: mow
        name: Mow
        price: 30
      - id: edge
        name: Mow and Edge
        price: 45
featureNames:
  edging: Edging
`), 0o600))

	out := mustRun(t, "catalog", "import", path)

	assert.Contains(t, out, "Imported 1 services from "+path)
	svc, err := ts.catalog.Get(t.Context(), "lawn")
	require.NoError(t, err)
	assert.Equal(t, 2, svc.TierCount())
	assert.Zero(t, ts.source.fetches)
}

func TestCatalogImport_Invalid(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()

	_, err := runCommand(t, "catalog", "import", filepath.Join(dir, "catalog.csv"))
	assert.ErrorContains(t, err, "cannot import")

	dup := filepath.Join(dir, "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`{"services":[{"id":"a","name":"A","tiers":[]},{"id":"a","name":"B","tiers":[]}]}`), 0o600))
	_, err = runCommand(t, "catalog", "import", dup)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogRefresh(t *testing.T) {
	ts := setupTestServices(t, detailService(), interiorService())

	out := mustRun(t, "catalog", "refresh")

	assert.Contains(t, out, "Loaded 2 services from stub catalog")
	assert.Equal(t, 1, ts.source.fetches)
}
