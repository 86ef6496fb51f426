package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"

	"github.com/mkotelnikov/inventory_service/internal/models"
)

type Client struct {
	ES    *elasticsearch.Client
	Index string
}

func NewClient(url, user, password, index string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("es client: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("es info: %s", res.Status())
	}

	return &Client{ES: es, Index: index}, nil
}

func (c *Client) IndexItem(ctx context.Context, item *models.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}

	res, err := c.ES.Index(
		c.Index,
		bytes.NewReader(data),
		c.ES.Index.WithContext(ctx),
		c.ES.Index.WithDocumentID(item.ID.String()),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index item: %s", res.Status())
	}
	return nil
}

func (c *Client) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res, err := c.ES.Delete(
		c.Index,
		id.String(),
		c.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete item: %s", res.Status())
	}
	return nil
}

func (c *Client) SearchItems(ctx context.Context, query string, from, size int) (int64, []models.Item, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := c.ES.Search(
		c.ES.Search.WithContext(ctx),
		c.ES.Search.WithIndex(c.Index),
		c.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search items: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Item `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	items := make([]models.Item, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
	}
	return r.Hits.Total.Value, items, nil
}
