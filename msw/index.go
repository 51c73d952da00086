// Package msw implements a randomized small-world graph index for
// approximate nearest-neighbor search over a general, possibly non-metric
// distance space (the "small_world_rand" method).
//
// The index maintains an undirected graph over the data points. Insertion
// finds the NN nearest published nodes with a best-first graph walk, links
// the new node to them symmetrically, and then publishes it. A k-NN query
// repeats the same walk from random entry points and funnels every worthy
// candidate into the caller's result sink. The graph is build-once,
// search-many: there is no delete, update, or persistence.
package msw

import (
	"container/heap"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/patrikhermansson/swann/core"
)

// MSWIndex is the main structure for the small-world graph index.
//
// Concurrency rules: elListGuard protects registry membership and size and
// is always acquired before any node's access guard; a node's access guard
// protects only that node's friends list; no code path holds two access
// guards at once. Distance computations happen outside held locks.
type MSWIndex struct {
	NN                 int   // neighbors to connect per insertion; walker k during build
	InitIndexAttempts  int   // walker attempts per insertion
	InitSearchAttempts int   // walker attempts per query; mutable post-build
	IndexThreadQty     int   // parallel build workers; <= 1 means serial
	Seed               int64 // RNG seed, surfaced for reproducibility

	space core.Space

	elListGuard sync.Mutex
	elList      []*MSWNode

	rngGuard sync.Mutex
	rng      *rand.Rand

	printProgress bool
}

// NewMSW creates a small-world index over the given space.
// See Params for the recognized options.
func NewMSW(space core.Space, params Params) (*MSWIndex, error) {
	nn, err := params.intValue("NN", DefaultNN)
	if err != nil {
		return nil, err
	}
	if nn < 1 {
		return nil, fmt.Errorf("%w: option %q must be at least 1, got %d", ErrBadParameter, "NN", nn)
	}
	initIndexAttempts, err := params.intValue("initIndexAttempts", DefaultInitIndexAttempts)
	if err != nil {
		return nil, err
	}
	initSearchAttempts, err := params.intValue("initSearchAttempts", DefaultInitSearchAttempts)
	if err != nil {
		return nil, err
	}
	indexThreadQty, err := params.intValue("indexThreadQty", runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	seed, err := params.int64Value("seed", 0)
	if err != nil {
		return nil, err
	}
	if _, ok := params["seed"]; !ok {
		seed = core.GetSeed()
	}
	printProgress, err := params.boolValue("printProgress", false)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("Creating new MSW index with NN=%d, initIndexAttempts=%d, initSearchAttempts=%d, indexThreadQty=%d, seed=%d",
		nn, initIndexAttempts, initSearchAttempts, indexThreadQty, seed)

	return &MSWIndex{
		NN:                 nn,
		InitIndexAttempts:  initIndexAttempts,
		InitSearchAttempts: initSearchAttempts,
		IndexThreadQty:     indexThreadQty,
		Seed:               seed,
		space:              space,
		rng:                rand.New(rand.NewSource(seed)),
		printProgress:      printProgress,
	}, nil
}

// Name returns the method identifier of the index.
func (mi *MSWIndex) Name() string { return "small_world_rand" }

// randIntn draws from the index RNG under its guard so parallel inserters
// can share it; reproducibility comes from explicit seeding plus a serial
// build, never by accident.
func (mi *MSWIndex) randIntn(n int) int {
	mi.rngGuard.Lock()
	v := mi.rng.Intn(n)
	mi.rngGuard.Unlock()
	return v
}

// getEntryQtyLocked reads the registry size under the list guard.
func (mi *MSWIndex) getEntryQtyLocked() int {
	mi.elListGuard.Lock()
	defer mi.elListGuard.Unlock()
	return len(mi.elList)
}

// getRandomEntryPoint returns a uniformly chosen node, or nil when the
// registry is empty. Valid without the list guard only when the caller
// guarantees the registry is stable.
func (mi *MSWIndex) getRandomEntryPoint() *MSWNode {
	size := len(mi.elList)
	if size == 0 {
		return nil
	}
	return mi.elList[mi.randIntn(size)]
}

func (mi *MSWIndex) getRandomEntryPointLocked() *MSWNode {
	mi.elListGuard.Lock()
	defer mi.elListGuard.Unlock()
	return mi.getRandomEntryPoint()
}

// kSearchElementsWithAttempts runs the best-first walker against the growing
// graph and accumulates up to nn nearest nodes in result. Safe to run while
// other goroutines insert: the visited set is sized to a registry snapshot,
// and nodes published after the snapshot read as unvisited but un-markable.
func (mi *MSWIndex) kSearchElementsWithAttempts(query core.Point, nn, attempts int, result *candidateMaxHeap) {
	entryQty := uint64(mi.getEntryQtyLocked())
	visited := newVisitedSet(entryQty)

	for i := 0; i < attempts; i++ {
		provider := mi.getRandomEntryPointLocked()
		if provider == nil {
			continue
		}

		candidates := &candidateMinHeap{}
		closest := &distMaxHeap{}

		d := mi.space.IndexTimeDistance(query, provider.data)
		heap.Push(candidates, evaluatedNode{node: provider, dist: d})
		heap.Push(closest, d)
		visited.visit(provider.addIndex)
		result.offer(d, provider, nn)

		for candidates.Len() > 0 {
			// Copy the fields out: the top entry is invalid after the pop.
			curr := (*candidates)[0]

			// Local minimum: the closest unexpanded candidate is farther
			// than the nn-th best distance seen so far.
			if curr.dist > (*closest)[0] {
				break
			}
			heap.Pop(candidates)

			// Snapshot the friends under the node's guard, then compute
			// distances with no lock held.
			for _, friend := range curr.node.friendsSnapshot() {
				if visited.visited(friend.addIndex) {
					continue
				}
				visited.visit(friend.addIndex)

				d := mi.space.IndexTimeDistance(query, friend.data)
				heap.Push(closest, d)
				if closest.Len() > nn {
					heap.Pop(closest)
				}
				heap.Push(candidates, evaluatedNode{node: friend, dist: d})
				result.offer(d, friend, nn)
			}
		}
	}
}

// add finds the nearest neighbors for a detached node, links it to them, and
// publishes it. The registry must already hold the seed node.
func (mi *MSWIndex) add(newElement *MSWNode) error {
	newElement.removeAllFriends()

	if mi.getEntryQtyLocked() == 0 {
		return fmt.Errorf("add before the seed node was published: %w", ErrEmptyRegistry)
	}

	result := &candidateMaxHeap{}
	mi.kSearchElementsWithAttempts(newElement.data, mi.NN, mi.InitIndexAttempts, result)

	for result.Len() > 0 {
		neighbor := heap.Pop(result).(evaluatedNode)
		link(neighbor.node, newElement)
	}

	mi.addCriticalSection(newElement)
	return nil
}

// addCriticalSection publishes a node into the registry. The add index
// assignment and the append happen under the same lock so the index always
// equals the node's registry position.
func (mi *MSWIndex) addCriticalSection(newElement *MSWNode) {
	mi.elListGuard.Lock()
	newElement.addIndex = uint64(len(mi.elList))
	mi.elList = append(mi.elList, newElement)
	mi.elListGuard.Unlock()
}

// Build indexes the given points. The first point seeds the graph; the rest
// are inserted serially or by IndexThreadQty workers that interleave over
// the input and observe each other's contributions. After a non-nil error
// the index is in an undefined state and must not be queried.
func (mi *MSWIndex) Build(data []core.Point) error {
	if len(data) == 0 {
		log.Info().Msg("Build called with no data")
		return nil
	}

	// The seed node is published directly: add requires a non-empty registry.
	mi.addCriticalSection(newMSWNode(data[0]))

	var bar *progressbar.ProgressBar
	if mi.printProgress {
		bar = progressbar.NewOptions(len(data),
			progressbar.OptionOnCompletion(func() { fmt.Print("\n") }),
		)
		if err := bar.Add(1); err != nil {
			return err
		}
	}

	if mi.IndexThreadQty <= 1 {
		for i := 1; i < len(data); i++ {
			if err := mi.add(newMSWNode(data[i])); err != nil {
				return err
			}
			if bar != nil {
				if err := bar.Add(1); err != nil {
					return err
				}
			}
		}
		return nil
	}

	threadQty := mi.IndexThreadQty
	g := new(errgroup.Group)
	for t := 0; t < threadQty; t++ {
		start := t
		if start == 0 {
			start = threadQty
		}
		g.Go(func() error {
			// This worker handles every position j >= 1 with j % threadQty == t.
			for j := start; j < len(data); j += threadQty {
				if err := mi.add(newMSWNode(data[j])); err != nil {
					return err
				}
				if bar != nil {
					if err := bar.Add(1); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("parallel build failed: %w", err)
	}
	log.Info().Msgf("%d indexing threads have finished", threadQty)
	return nil
}

// KNNSearch runs the walker InitSearchAttempts times from random entry
// points and offers every worthy candidate to the query sink. The index must
// be quiescent: concurrent read-only queries are fine, concurrent builds are
// not. An empty index or zero attempts yields an empty result.
func (mi *MSWIndex) KNNSearch(q core.Query) error {
	k := q.ResultCapacity()
	if k <= 0 {
		return nil
	}

	// Quiescence lets us read the size and sample entries without the list
	// guard; the registry cannot grow under us.
	entryQty := uint64(len(mi.elList))
	visited := newVisitedSet(entryQty)

	for i := 0; i < mi.InitSearchAttempts; i++ {
		provider := mi.getRandomEntryPoint()
		if provider == nil {
			return nil
		}
		if provider.addIndex >= entryQty {
			return fmt.Errorf("entry point %w", ErrUninitializedIndex)
		}

		candidates := &candidateMinHeap{}
		closest := &distMaxHeap{}

		d := q.DistanceTo(provider.data)
		heap.Push(candidates, evaluatedNode{node: provider, dist: d})
		heap.Push(closest, d)
		visited.visit(provider.addIndex)
		q.Offer(d, provider.data)

		for candidates.Len() > 0 {
			// Copy the fields out: the top entry is invalid after the pop.
			curr := (*candidates)[0]

			// Did we reach a local minimum?
			if curr.dist > (*closest)[0] {
				break
			}
			heap.Pop(candidates)

			for _, friend := range curr.node.friendsSnapshot() {
				addIndex := friend.addIndex
				if addIndex >= entryQty {
					return fmt.Errorf("friend of node %d: %w", curr.node.addIndex, ErrUninitializedIndex)
				}
				if visited.visited(addIndex) {
					continue
				}
				visited.visit(addIndex)

				d := q.DistanceTo(friend.data)
				heap.Push(closest, d)
				if closest.Len() > k {
					heap.Pop(closest)
				}
				heap.Push(candidates, evaluatedNode{node: friend, dist: d})
				q.Offer(d, friend.data)
			}
		}
	}
	return nil
}

// RangeSearch is not supported by this method.
func (mi *MSWIndex) RangeSearch(q *core.RangeQuery) error {
	return fmt.Errorf("range search: %w", ErrUnsupportedOperation)
}

// SetQueryTimeParams adjusts the query-time knobs. initSearchAttempts is the
// only parameter that may change after Build.
func (mi *MSWIndex) SetQueryTimeParams(params Params) error {
	attempts, err := params.intValue("initSearchAttempts", mi.InitSearchAttempts)
	if err != nil {
		return err
	}
	mi.InitSearchAttempts = attempts
	return nil
}

// QueryTimeParamNames lists the options SetQueryTimeParams recognizes.
func (mi *MSWIndex) QueryTimeParamNames() []string {
	return []string{"initSearchAttempts"}
}

// Stats returns simple statistics about the index.
func (mi *MSWIndex) Stats() core.IndexStats {
	mi.elListGuard.Lock()
	defer mi.elListGuard.Unlock()

	links := 0
	for _, node := range mi.elList {
		node.accessGuard.Lock()
		links += len(node.friends)
		node.accessGuard.Unlock()
	}
	return core.IndexStats{
		Count: len(mi.elList),
		Edges: links / 2,
	}
}

// Check interface compliance at compile time.
var _ core.Index = (*MSWIndex)(nil)
