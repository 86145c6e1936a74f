package network

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/zonechoice/internal/parallel"
	"github.com/katalvlaran/zonechoice/matrix"
)

// Link is a directed zone-to-zone connector with a travel time in minutes.
type Link struct {
	From, To int
	Time     float64
}

// SkimFromLinks computes all-pairs shortest travel times over a connector
// graph of n zones. Each origin runs one Dijkstra pass; origins are spread
// across workers. Unreachable pairs hold +Inf and the diagonal is 0.
//
// Errors:
//   - ErrLinkEndpoint, ErrNegativeTime (links are pre-scanned before any work).
//   - ctx.Err() if cancelled.
//
// Complexity:
//   - Time: O(n · (n + E) log n), Space: O(n² + E).
func SkimFromLinks(ctx context.Context, n int, links []Link) (*matrix.Dense, error) {
	out, err := matrix.NewSquare(n, matrix.WithAllowInfDistances())
	if err != nil {
		return nil, err
	}

	// Pre-scan: fail fast before any origin is processed.
	adj := make([][]Link, n)
	for _, l := range links {
		if l.From < 0 || l.From >= n || l.To < 0 || l.To >= n {
			return nil, fmt.Errorf("%w: %d→%d", ErrLinkEndpoint, l.From, l.To)
		}
		if l.Time < 0 || math.IsNaN(l.Time) {
			return nil, fmt.Errorf("%w: %d→%d time=%g", ErrNegativeTime, l.From, l.To, l.Time)
		}
		adj[l.From] = append(adj[l.From], l)
	}

	data := out.Data()
	err = parallel.For(ctx, n, func(origin int) error {
		shortestFrom(adj, origin, data[origin*n:(origin+1)*n])
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// shortestFrom fills dist with the shortest times from origin, using the
// lazy decrease-key heap: improved distances are pushed again and stale
// entries are skipped when popped.
func shortestFrom(adj [][]Link, origin int, dist []float64) {
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[origin] = 0
	visited := make([]bool, len(dist))
	pq := distPQ{{zone: origin}}
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(distItem)
		u := item.zone
		if visited[u] {
			continue // stale entry
		}
		visited[u] = true
		for _, l := range adj[u] {
			if math.IsInf(l.Time, 1) {
				continue // impassable
			}
			nd := dist[u] + l.Time
			if nd >= dist[l.To] {
				continue
			}
			dist[l.To] = nd
			heap.Push(&pq, distItem{zone: l.To, dist: nd})
		}
	}
}

type distItem struct {
	zone int
	dist float64
}

// distPQ is a min-heap of distItem ordered by dist.
type distPQ []distItem

func (pq distPQ) Len() int            { return len(pq) }
func (pq distPQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq distPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *distPQ) Push(x interface{}) { *pq = append(*pq, x.(distItem)) }
func (pq *distPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
