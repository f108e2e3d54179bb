// Package search narrows a deck to the items matching a free-text query.
package search

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/storage"
)

// fieldBoosts ranks where a term was found. Order does not affect Filter
// results, only the scores logged at debug level.
var fieldBoosts = []struct {
	field string
	boost float64
}{
	{"title", 4.0},
	{"tags", 2.5},
	{"body", 1.0},
	{"link", 0.5},
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()
	for _, f := range fieldBoosts {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = standard.Name
		fm.Store = false
		dm.AddFieldMappingsAt(f.field, fm)
	}

	im.DefaultMapping = dm
	return im
}

// Filter returns the items matching every term of query, in their original
// order. Queries with no term of two or more characters return items as is.
func Filter(items []storage.Item, query string) ([]storage.Item, error) {
	terms := tokenize(query)
	if len(terms) == 0 || len(items) == 0 {
		return items, nil
	}

	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}
	defer idx.Close()

	batch := idx.NewBatch()
	for i, it := range items {
		err := batch.Index(strconv.Itoa(i), map[string]any{
			"title": it.Title,
			"tags":  strings.Join(it.Tags, " "),
			"body":  it.Body,
			"link":  it.Link,
		})
		if err != nil {
			return nil, fmt.Errorf("indexing item %d: %w", i, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, fmt.Errorf("indexing items: %w", err)
	}

	req := bleve.NewSearchRequestOptions(buildQuery(terms), len(items), 0, false)
	res, err := idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}

	positions := make([]int, 0, len(res.Hits))
	for _, h := range res.Hits {
		pos, err := strconv.Atoi(h.ID)
		if err != nil {
			continue
		}
		debuglog.Debugf("filter hit %q score=%.3f", items[pos].Title, h.Score)
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	out := make([]storage.Item, 0, len(positions))
	for _, pos := range positions {
		out = append(out, items[pos])
	}
	return out, nil
}

// buildQuery requires each term to match some field, either as a whole word
// or as a prefix.
func buildQuery(terms []string) bleveQuery.Query {
	perTerm := make([]bleveQuery.Query, 0, len(terms))
	for _, tok := range terms {
		var qs []bleveQuery.Query
		for _, f := range fieldBoosts {
			mq := bleve.NewMatchQuery(tok)
			mq.SetField(f.field)
			mq.SetBoost(f.boost)
			qs = append(qs, mq)

			pq := bleve.NewPrefixQuery(tok)
			pq.SetField(f.field)
			pq.SetBoost(f.boost * 0.8)
			qs = append(qs, pq)
		}
		perTerm = append(perTerm, bleve.NewDisjunctionQuery(qs...))
	}
	return bleve.NewConjunctionQuery(perTerm...)
}

// tokenize lowercases query and splits it on anything that is not a letter or
// digit, dropping single characters.
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			if term := current.String(); len([]rune(term)) > 1 {
				terms = append(terms, term)
			}
			current.Reset()
		}
	}

	if len([]rune(current.String())) > 1 {
		terms = append(terms, current.String())
	}

	return terms
}
