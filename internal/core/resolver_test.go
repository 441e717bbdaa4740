package core

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pz-mod-installer/internal/types"
)

type testFetcher struct {
	graph map[types.ModID][]types.ModID
	fail  map[types.ModID]bool
	calls map[types.ModID]int
}

func newTestFetcher(graph map[types.ModID][]types.ModID) *testFetcher {
	return &testFetcher{graph: graph, fail: map[types.ModID]bool{}, calls: map[types.ModID]int{}}
}

func (f *testFetcher) FetchDependencies(_ context.Context, id types.ModID) ([]types.ModID, error) {
	f.calls[id]++
	if f.fail[id] {
		return nil, errors.New("workshop page unavailable")
	}
	return f.graph[id], nil
}

func ids(values ...string) []types.ModID {
	out := make([]types.ModID, len(values))
	for i, v := range values {
		out[i] = types.ModID(v)
	}
	return out
}

func sortedIDs(values []types.ModID) []types.ModID {
	out := append([]types.ModID(nil), values...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestResolverTransitiveClosure(t *testing.T) {
	fetcher := newTestFetcher(map[types.ModID][]types.ModID{
		"1": ids("2", "3"),
		"2": ids("4"),
		"3": ids("4", "5"),
		"5": ids("6"),
	})
	resolver := NewDependencyResolver(fetcher)

	result, err := resolver.Resolve(t.Context(), ids("1"))
	require.NoError(t, err)
	if diff := cmp.Diff(ids("2", "3", "4", "5", "6"), sortedIDs(result.Closure)); diff != "" {
		t.Fatalf("unexpected closure (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ids("2", "3"), result.Tree["1"]); diff != "" {
		t.Fatalf("unexpected tree entry for 1 (-want +got):\n%s", diff)
	}
	assert.NotContains(t, result.Tree, types.ModID("4"), "leaf mods are not recorded in the tree")
	assert.Equal(t, 6, result.Visited)
	for id, count := range fetcher.calls {
		assert.Equal(t, 1, count, "mod %s fetched more than once", id)
	}
}

func TestResolverExcludesRequestedMods(t *testing.T) {
	fetcher := newTestFetcher(map[types.ModID][]types.ModID{
		"1": ids("2", "3"),
		"2": ids("3"),
	})
	result, err := NewDependencyResolver(fetcher).Resolve(t.Context(), ids("1", "2"))
	require.NoError(t, err)
	if diff := cmp.Diff(ids("3"), result.Closure); diff != "" {
		t.Fatalf("unexpected closure (-want +got):\n%s", diff)
	}
}

func TestResolverToleratesCycles(t *testing.T) {
	fetcher := newTestFetcher(map[types.ModID][]types.ModID{
		"A": ids("B"),
		"B": ids("A"),
	})
	result, err := NewDependencyResolver(fetcher).Resolve(t.Context(), ids("A"))
	require.NoError(t, err)
	if diff := cmp.Diff(ids("B"), result.Closure); diff != "" {
		t.Fatalf("unexpected closure (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, result.Visited)
	assert.Equal(t, 1, fetcher.calls["A"])
	assert.Equal(t, 1, fetcher.calls["B"])
}

func TestResolverDropsSelfReferences(t *testing.T) {
	fetcher := newTestFetcher(map[types.ModID][]types.ModID{
		"10": ids("10", "20", "20"),
		"20": ids("20"),
	})
	result, err := NewDependencyResolver(fetcher).Resolve(t.Context(), ids("10"))
	require.NoError(t, err)
	if diff := cmp.Diff(ids("20"), result.Tree["10"]); diff != "" {
		t.Fatalf("unexpected dependencies of 10 (-want +got):\n%s", diff)
	}
	assert.NotContains(t, result.Tree, types.ModID("20"))
}

func TestResolverFetchFailureIsEmptyDependencies(t *testing.T) {
	fetcher := newTestFetcher(map[types.ModID][]types.ModID{
		"1": ids("2", "3"),
		"2": ids("9"),
		"3": ids("4"),
	})
	fetcher.fail["2"] = true

	result, err := NewDependencyResolver(fetcher).Resolve(t.Context(), ids("1"))
	require.NoError(t, err)
	if diff := cmp.Diff(ids("2", "3", "4"), sortedIDs(result.Closure)); diff != "" {
		t.Fatalf("unexpected closure (-want +got):\n%s", diff)
	}
	assert.NotContains(t, result.Tree, types.ModID("2"))
	assert.Equal(t, 1, fetcher.calls["3"], "traversal continues past the failed mod")
}

func TestResolverNormalizesFetchedIDs(t *testing.T) {
	fetcher := newTestFetcher(map[types.ModID][]types.ModID{
		"1": {"2.0", " 3 ", "not-a-number"},
	})
	result, err := NewDependencyResolver(fetcher).Resolve(t.Context(), ids("1"))
	require.NoError(t, err)
	if diff := cmp.Diff(ids("2", "3"), sortedIDs(result.Closure)); diff != "" {
		t.Fatalf("unexpected closure (-want +got):\n%s", diff)
	}
}

func TestResolverMaxNodes(t *testing.T) {
	fetcher := newTestFetcher(map[types.ModID][]types.ModID{
		"1": ids("2", "3", "4"),
	})
	resolver := NewDependencyResolver(fetcher)
	resolver.MaxNodes = 2
	result, err := resolver.Resolve(t.Context(), ids("1"))
	require.NoError(t, err)
	assert.Len(t, result.Closure, 2)
}

func TestResolverRequiresFetcher(t *testing.T) {
	_, err := DependencyResolver{}.Resolve(t.Context(), ids("1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolver requires a dependency fetcher")
}

func TestResolverStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	fetcher := newTestFetcher(map[types.ModID][]types.ModID{"1": ids("2")})
	_, err := NewDependencyResolver(fetcher).Resolve(ctx, ids("1"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fetcher.calls)
}

func TestResolverEmptyInput(t *testing.T) {
	result, err := NewDependencyResolver(newTestFetcher(nil)).Resolve(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Closure)
	assert.Empty(t, result.Tree)
}

func TestMergeInstallListDeduplicates(t *testing.T) {
	requested, err := dedupNormalized("100", "100", "200")
	require.NoError(t, err)

	fetcher := newTestFetcher(map[types.ModID][]types.ModID{
		"100": ids("300", "200"),
	})
	result, err := NewDependencyResolver(fetcher).Resolve(t.Context(), requested)
	require.NoError(t, err)

	merged := MergeInstallList(requested, result.Closure)
	if diff := cmp.Diff(ids("100", "200", "300"), merged); diff != "" {
		t.Fatalf("unexpected install list (-want +got):\n%s", diff)
	}
}

func dedupNormalized(values ...string) ([]types.ModID, error) {
	var out []types.ModID
	for _, v := range values {
		id, err := types.NormalizeModID(v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return types.DedupModIDs(out), nil
}
