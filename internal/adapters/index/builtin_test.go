package index_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/index"
	"go.trai.ch/recipe/internal/core/domain"
)

func TestBuiltin_CoversDeclaredClosure(t *testing.T) {
	b, err := index.NewBuiltin()
	require.NoError(t, err)

	ctx := context.Background()
	queue := make([]domain.Reference, 0)
	for _, req := range domain.Declared().Requirements() {
		queue = append(queue, req.Ref)
	}

	seen := make(map[domain.Reference]bool)
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		if seen[ref] {
			continue
		}
		seen[ref] = true

		info, err := b.Lookup(ctx, ref)
		require.NoError(t, err, "catalog misses %s", ref)
		for _, dep := range info.Requires {
			queue = append(queue, dep.Ref)
		}
	}
	assert.GreaterOrEqual(t, b.Len(), len(seen))
}

func TestBuiltin_CollectionSchema(t *testing.T) {
	b, err := index.NewBuiltin()
	require.NoError(t, err)

	info, err := b.Lookup(context.Background(), domain.NewReference("boost", "1.83.0"))
	require.NoError(t, err)
	for _, key := range domain.CollectionOptionKeys() {
		assert.True(t, info.Defaults.Has(key), "boost schema lacks %s", key)
	}
	assert.Equal(t, "Boost", info.CMakeFileName())
	assert.Equal(t, "Boost::boost", info.CMakeTargetName())
}

func TestBuiltin_LookupReturnsCopy(t *testing.T) {
	b, err := index.NewBuiltin()
	require.NoError(t, err)
	ref := domain.NewReference("cpr", "1.11.2")

	first, err := b.Lookup(context.Background(), ref)
	require.NoError(t, err)
	first.Requires[0].Ref.Version = "0.0.0"
	first.Description = "changed"

	second, err := b.Lookup(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "8.12.1", second.Requires[0].Ref.Version)
	assert.NotEqual(t, "changed", second.Description)
}

func TestBuiltin_UnknownVersion(t *testing.T) {
	b, err := index.NewBuiltin()
	require.NoError(t, err)

	_, err = b.Lookup(context.Background(), domain.NewReference("boost", "1.99.0"))
	require.ErrorIs(t, err, domain.ErrVersionNotFound)
	assert.Contains(t, err.Error(), "boost/1.99.0")
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed yaml", doc: "packages: [\n"},
		{name: "bad reference", doc: "packages:\n  - ref: zlib\n"},
		{name: "duplicate option", doc: "packages:\n  - ref: zlib/1.3.1\n    options:\n      - {name: shared, value: true}\n      - {name: shared, value: false}\n"},
		{name: "duplicate entry", doc: "packages:\n  - ref: zlib/1.3.1\n  - ref: zlib/1.3.1\n"},
		{name: "range dependency", doc: "packages:\n  - ref: cpr/1.0\n    requires:\n      - ref: libcurl/[>=8]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := index.ParseCatalog([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid package catalog")
		})
	}
}
