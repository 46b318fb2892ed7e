// Package search answers free text product queries, through Elasticsearch
// when it is configured and over the in-memory catalog otherwise.
package search

import (
	"context"
	"sort"
	"strings"

	"github.com/Skotchmaster/vivero/internal/catalog"
	"github.com/Skotchmaster/vivero/internal/util"
)

type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []catalog.Product, error)
}

// Memory scans the catalog store. Name hits rank before description hits.
type Memory struct {
	Catalog *catalog.Store
}

func (m *Memory) Search(_ context.Context, query string, from, size int) (int64, []catalog.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0, []catalog.Product{}, nil
	}

	type hit struct {
		p     catalog.Product
		score int
	}
	var hits []hit
	for _, p := range m.Catalog.All() {
		switch {
		case strings.Contains(strings.ToLower(p.Name), q):
			hits = append(hits, hit{p: p, score: 2})
		case strings.Contains(strings.ToLower(p.Description), q):
			hits = append(hits, hit{p: p, score: 1})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	total := int64(len(hits))
	from, end := util.Window(len(hits), from, size)
	out := make([]catalog.Product, 0, end-from)
	for _, h := range hits[from:end] {
		out = append(out, h.p)
	}
	return total, out, nil
}
