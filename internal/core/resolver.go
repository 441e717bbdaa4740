package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/types"
)

// DependencyResolver expands a set of requested mods into the transitive
// closure of their workshop dependencies.
type DependencyResolver struct {
	Fetcher ports.DependencyFetcherPort
	// MaxNodes caps the closure size; zero means unlimited.
	MaxNodes int
}

type ResolveResult struct {
	// Closure lists every discovered dependency that was not requested,
	// in discovery order.
	Closure []types.ModID
	Tree    types.DependencyTree
	Visited int
}

func NewDependencyResolver(fetcher ports.DependencyFetcherPort) DependencyResolver {
	return DependencyResolver{Fetcher: fetcher}
}

// Resolve walks the dependency graph from initial with a LIFO worklist.
// Pop order only affects the order of Closure, never its contents. Fetch
// failures count as "no dependencies" for that mod.
func (r DependencyResolver) Resolve(ctx context.Context, initial []types.ModID) (ResolveResult, error) {
	if r.Fetcher == nil {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a dependency fetcher")
	}

	requested := make(map[types.ModID]struct{}, len(initial))
	for _, id := range initial {
		requested[id] = struct{}{}
	}

	visited := map[types.ModID]struct{}{}
	closure := map[types.ModID]struct{}{}
	var order []types.ModID
	tree := types.DependencyTree{}

	worklist := append([]types.ModID(nil), initial...)
	for len(worklist) > 0 {
		if err := ctx.Err(); err != nil {
			return ResolveResult{}, err
		}
		last := len(worklist) - 1
		current := worklist[last]
		worklist = worklist[:last]

		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		deps := r.fetch(ctx, current)
		if len(deps) == 0 {
			continue
		}
		tree[current] = deps

		for _, dep := range deps {
			if _, seen := visited[dep]; seen {
				continue
			}
			if _, known := closure[dep]; known {
				continue
			}
			if r.MaxNodes > 0 && len(closure) >= r.MaxNodes {
				log.Warn().
					Str("mod_id", dep.String()).
					Int("max_nodes", r.MaxNodes).
					Msg("dependency closure limit reached, not expanding further")
				continue
			}
			closure[dep] = struct{}{}
			order = append(order, dep)
			worklist = append(worklist, dep)
		}
	}

	result := ResolveResult{Tree: tree, Visited: len(visited)}
	for _, id := range order {
		if _, ok := requested[id]; ok {
			continue
		}
		result.Closure = append(result.Closure, id)
	}
	log.Debug().
		Int("requested", len(initial)).
		Int("visited", result.Visited).
		Int("dependencies", len(result.Closure)).
		Msg("dependency resolution finished")
	return result, nil
}

// fetch asks the fetcher for direct dependencies and cleans the answer:
// ids are re-normalized, self references and repeats are dropped.
func (r DependencyResolver) fetch(ctx context.Context, id types.ModID) []types.ModID {
	assert.NotEmpty(ctx, id.String(), "resolver popped an empty mod id")
	raw, err := r.Fetcher.FetchDependencies(ctx, id)
	if err != nil {
		log.Warn().
			Err(err).
			Str("mod_id", id.String()).
			Msg("dependency lookup failed, treating as no dependencies")
		return nil
	}
	seen := map[types.ModID]struct{}{}
	var deps []types.ModID
	for _, candidate := range raw {
		normalized, err := types.NormalizeModID(candidate.String())
		if err != nil {
			log.Debug().
				Str("mod_id", id.String()).
				Str("dependency", candidate.String()).
				Msg("ignoring malformed dependency id")
			continue
		}
		if normalized == id {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		deps = append(deps, normalized)
	}
	return deps
}

// MergeInstallList appends the dependency closure to the requested mods,
// skipping anything already requested.
func MergeInstallList(requested []types.ModID, closure []types.ModID) []types.ModID {
	merged := types.DedupModIDs(requested)
	present := make(map[types.ModID]struct{}, len(merged))
	for _, id := range merged {
		present[id] = struct{}{}
	}
	for _, id := range closure {
		if _, ok := present[id]; ok {
			continue
		}
		present[id] = struct{}{}
		merged = append(merged, id)
	}
	return merged
}
