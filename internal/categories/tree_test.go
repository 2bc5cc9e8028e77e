package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/config"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func sample() []types.Category {
	return []types.Category{
		{ID: 1, Name: "Servers"},
		{ID: 2, Name: "Rack Servers", ParentID: ptr(1)},
		{ID: 3, Name: "Components"},
		{ID: 4, Name: "1U", ParentID: ptr(2)},
		{ID: 5, Name: "Orphan", ParentID: ptr(99)},
	}
}

func TestBuildTree(t *testing.T) {
	roots := BuildTree(sample())
	require.Len(t, roots, 3)
	assert.Equal(t, "Components", roots[0].Category.Name)
	assert.Equal(t, "Orphan", roots[1].Category.Name)
	servers := roots[2]
	require.Len(t, servers.Children, 1)
	assert.Equal(t, 2, servers.Children[0].Children[0].Depth)
}

func TestBuildTreeSurvivesCycles(t *testing.T) {
	list := []types.Category{
		{ID: 1, Name: "A", ParentID: ptr(2)},
		{ID: 2, Name: "B", ParentID: ptr(1)},
		{ID: 3, Name: "Self", ParentID: ptr(3)},
	}
	roots := BuildTree(list)
	require.Len(t, roots, 1)
	assert.Equal(t, "Self", roots[0].Category.Name)
	assert.Len(t, Flatten(roots), 1)
}

func TestParentOptionsExcludeSelfAndDescendants(t *testing.T) {
	options := ParentOptions(sample(), 1)
	ids := make([]int64, 0, len(options))
	for _, n := range options {
		ids = append(ids, n.Category.ID)
	}
	assert.ElementsMatch(t, []int64{3, 5}, ids)
	assert.Len(t, ParentOptions(sample(), 0), 5)
}

func TestServiceEndpoints(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			if r.URL.Path == "/categories/3" {
				_ = json.NewEncoder(w).Encode(types.Category{ID: 3})
				return
			}
			_ = json.NewEncoder(w).Encode(sample())
		default:
			_ = json.NewEncoder(w).Encode(types.Category{ID: 9})
		}
	}))
	defer srv.Close()
	client, err := apiclient.New(config.BackendConfig{URL: srv.URL})
	require.NoError(t, err)
	svc, err := NewService(client)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.Roots(ctx)
	require.NoError(t, err)
	_, err = svc.Get(ctx, 3)
	require.NoError(t, err)
	_, err = svc.Subcategories(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Create(ctx, CategoryInput{Name: "New"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, 9, CategoryInput{Name: "New", ParentID: ptr(1)})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, 9))

	assert.Equal(t, []string{
		"GET /categories",
		"GET /categories/root",
		"GET /categories/3",
		"GET /categories/1/subcategories",
		"POST /categories",
		"PUT /categories/9",
		"DELETE /categories/9",
	}, paths)
}
