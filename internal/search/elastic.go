package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/vivero/internal/catalog"
	"github.com/Skotchmaster/vivero/internal/events"
	"github.com/Skotchmaster/vivero/pkg/logging"
)

type Elastic struct {
	es    *elasticsearch.Client
	index string
}

func NewElastic(ctx context.Context, url, user, password, index string) (*Elastic, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
	}

	return &Elastic{es: client, index: index}, nil
}

func (e *Elastic) Index(ctx context.Context, p catalog.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("encode product %d: %w", p.ID, err)
	}
	res, err := e.es.Index(e.index, &buf,
		e.es.Index.WithContext(ctx),
		e.es.Index.WithDocumentID(strconv.Itoa(p.ID)),
		e.es.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index product %d: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index product %d: %s", p.ID, res.Status())
	}
	return nil
}

func (e *Elastic) Delete(ctx context.Context, id int) error {
	res, err := e.es.Delete(e.index, strconv.Itoa(id), e.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete product %d: %s", id, res.Status())
	}
	return nil
}

// Sync indexes every product, used once at start-up.
func (e *Elastic) Sync(ctx context.Context, products []catalog.Product) error {
	for _, p := range products {
		if err := e.Index(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Watch keeps the index in step with catalog changes.
func (e *Elastic) Watch(bus *events.Bus[catalog.Change]) func() {
	return bus.Subscribe(func(ctx context.Context, ev catalog.Change) {
		var err error
		if ev.Kind == catalog.ProductDeleted {
			err = e.Delete(ctx, ev.Product.ID)
		} else {
			err = e.Index(ctx, ev.Product)
		}
		if err != nil {
			logging.FromContext(ctx).Error("search_index_error", "product_id", ev.Product.ID, "kind", ev.Kind, "error", err)
		}
	})
}

func (e *Elastic) Search(ctx context.Context, query string, from, size int) (int64, []catalog.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description", "tag", "category"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(e.index),
		e.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source catalog.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	prods := make([]catalog.Product, len(r.Hits.Hits))
	for i, h := range r.Hits.Hits {
		prods[i] = h.Source
	}
	return r.Hits.Total.Value, prods, nil
}
