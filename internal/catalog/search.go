// internal/catalog/search.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	DefaultIndexName  = "credit_cards"
	defaultSearchSize = 10
	maxSearchSize     = 50
)

const indexMapping = `{
  "mappings": {
    "properties": {
      "name": {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "issuer": {"type": "text"},
      "annual_fee": {"type": "integer"},
      "reward_type": {"type": "keyword"},
      "reward_rate": {"type": "text"},
      "min_income": {"type": "integer"},
      "min_credit_score": {"type": "integer"},
      "perks": {"type": "text"},
      "apply_link": {"type": "keyword", "index": false},
      "img_url": {"type": "keyword", "index": false}
    }
  }
}`

type cardDocument struct {
	Name           string   `json:"name"`
	Issuer         string   `json:"issuer"`
	AnnualFee      int      `json:"annual_fee"`
	RewardType     string   `json:"reward_type"`
	RewardRate     string   `json:"reward_rate"`
	MinIncome      int      `json:"min_income"`
	MinCreditScore int      `json:"min_credit_score"`
	Perks          []string `json:"perks"`
	ApplyLink      string   `json:"apply_link"`
	ImgURL         string   `json:"img_url,omitempty"`
}

func toDocument(c models.CardRecord) cardDocument {
	return cardDocument{
		Name:           c.Name,
		Issuer:         c.Issuer,
		AnnualFee:      c.AnnualFee,
		RewardType:     string(c.RewardType.Normalize()),
		RewardRate:     c.RewardRate,
		MinIncome:      c.MinIncome,
		MinCreditScore: c.MinCreditScore,
		Perks:          nonNilPerks(c.Perks),
		ApplyLink:      c.ApplyLink,
		ImgURL:         c.ImgURL,
	}
}

func (d cardDocument) toRecord() models.CardRecord {
	return models.CardRecord{
		Name:           d.Name,
		Issuer:         d.Issuer,
		AnnualFee:      d.AnnualFee,
		RewardType:     models.RewardType(d.RewardType).Normalize(),
		RewardRate:     d.RewardRate,
		MinIncome:      d.MinIncome,
		MinCreditScore: d.MinCreditScore,
		Perks:          nonNilPerks(d.Perks),
		ApplyLink:      d.ApplyLink,
		ImgURL:         d.ImgURL,
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func documentID(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

type SearchQuery struct {
	Text         string `json:"text"`
	RewardType   string `json:"rewardType,omitempty"`
	MaxAnnualFee *int   `json:"maxAnnualFee,omitempty"`
	Size         int    `json:"size,omitempty"`
}

type SearchHit struct {
	Card  models.CardRecord `json:"card"`
	Score float64           `json:"score"`
}

type SearchResult struct {
	Hits  []SearchHit `json:"hits"`
	Total int         `json:"total"`
	Took  int         `json:"took"`
}

// SearchIndex mirrors the catalog into Elasticsearch for free-text lookup.
type SearchIndex struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewSearchIndex(client *elasticsearch.Client, index string, log logger.Logger) *SearchIndex {
	if index == "" {
		index = DefaultIndexName
	}
	return &SearchIndex{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-search", "index": index}),
	}
}

func (s *SearchIndex) Index() string { return s.index }

// EnsureIndex creates the index with its mapping when it does not exist.
func (s *SearchIndex) EnsureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return s.transportError(ctx, err)
	}
	res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return apperrors.NewSearchQueryFailedError(s.index, fmt.Errorf("check index: %s", res.Status()))
	}

	res, err = s.client.Indices.Create(s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return s.transportError(ctx, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return apperrors.NewSearchQueryFailedError(s.index, fmt.Errorf("create index: %s", responseText(res)))
	}
	s.logger.Info("search index created", nil)
	return nil
}

// IndexCards bulk-indexes the catalog, keyed by a slug of the card name so
// re-indexing replaces documents instead of duplicating them.
func (s *SearchIndex) IndexCards(ctx context.Context, cards []models.CardRecord) (int, error) {
	if len(cards) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, c := range cards {
		meta := map[string]interface{}{"index": map[string]interface{}{"_index": s.index, "_id": documentID(c.Name)}}
		if err := enc.Encode(meta); err != nil {
			return 0, err
		}
		if err := enc.Encode(toDocument(c)); err != nil {
			return 0, err
		}
	}

	res, err := s.client.Bulk(&buf,
		s.client.Bulk.WithContext(ctx),
		s.client.Bulk.WithIndex(s.index),
		s.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return 0, s.transportError(ctx, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, apperrors.NewSearchQueryFailedError(s.index, fmt.Errorf("bulk: %s", responseText(res)))
	}

	var body struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
			Error  *struct {
				Reason string `json:"reason"`
			} `json:"error,omitempty"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, apperrors.NewSearchQueryFailedError(s.index, fmt.Errorf("decode bulk response: %w", err))
	}

	indexed := 0
	var failures []string
	for _, item := range body.Items {
		for _, result := range item {
			if result.Error != nil || result.Status >= 300 {
				reason := fmt.Sprintf("status %d", result.Status)
				if result.Error != nil {
					reason = result.Error.Reason
				}
				failures = append(failures, reason)
				continue
			}
			indexed++
		}
	}
	if len(failures) > 0 {
		s.logger.Warn("some cards failed to index", map[string]interface{}{
			"failed":  len(failures),
			"reasons": failures,
		})
	}
	s.logger.Info("catalog indexed", map[string]interface{}{"indexed": indexed})
	return indexed, nil
}

func buildSearchBody(q SearchQuery) map[string]interface{} {
	size := q.Size
	if size <= 0 {
		size = defaultSearchSize
	}
	if size > maxSearchSize {
		size = maxSearchSize
	}

	var must interface{} = map[string]interface{}{"match_all": map[string]interface{}{}}
	if text := strings.TrimSpace(q.Text); text != "" {
		must = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     text,
				"fields":    []string{"name^3", "perks^2", "reward_rate", "issuer"},
				"fuzziness": "AUTO",
			},
		}
	}

	var filters []interface{}
	if rt := strings.TrimSpace(q.RewardType); rt != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"reward_type": string(models.RewardType(rt).Normalize())},
		})
	}
	if q.MaxAnnualFee != nil {
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{"annual_fee": map[string]interface{}{"lte": *q.MaxAnnualFee}},
		})
	}

	boolQuery := map[string]interface{}{"must": must}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}
	return map[string]interface{}{
		"size":  size,
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

func (s *SearchIndex) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	body, err := json.Marshal(buildSearchBody(q))
	if err != nil {
		return nil, err
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, s.transportError(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(s.index, errors.New(responseText(res)))
	}

	var parsed struct {
		Took int `json:"took"`
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Score  float64      `json:"_score"`
				Source cardDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(s.index, fmt.Errorf("decode response: %w", err))
	}

	out := &SearchResult{
		Hits:  make([]SearchHit, 0, len(parsed.Hits.Hits)),
		Total: parsed.Hits.Total.Value,
		Took:  parsed.Took,
	}
	for _, h := range parsed.Hits.Hits {
		out.Hits = append(out.Hits, SearchHit{Card: h.Source.toRecord(), Score: h.Score})
	}
	return out, nil
}

func (s *SearchIndex) transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return apperrors.NewSearchTimeoutError(s.index)
	}
	return apperrors.NewElasticsearchConnectionFailedError(err)
}

func responseText(res *esapi.Response) string {
	data, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Sprintf("%s %s", res.Status(), strings.TrimSpace(string(data)))
}
