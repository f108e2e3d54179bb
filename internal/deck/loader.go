// Package deck loads carousel decks from local files.
package deck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/mmcdole/gofeed"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pders01/reel/internal/storage"
)

var ErrUnsupportedFormat = errors.New("unsupported deck format")

type file struct {
	Title string     `yaml:"title" toml:"title"`
	Items []fileItem `yaml:"items" toml:"items"`
}

type fileItem struct {
	ID    string   `yaml:"id" toml:"id"`
	Title string   `yaml:"title" toml:"title"`
	Body  string   `yaml:"body" toml:"body"`
	Link  string   `yaml:"link" toml:"link"`
	Tags  []string `yaml:"tags" toml:"tags"`
}

// Supported reports whether Load understands the file's extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml", ".xml", ".rss", ".atom", ".json":
		return true
	}
	return false
}

// Load reads a deck file, choosing the decoder by extension. Feed files
// (.xml, .rss, .atom, .json) are parsed locally; nothing is fetched.
func Load(path string) (*storage.Deck, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}

	var deck *storage.Deck
	switch ext {
	case ".yaml", ".yml":
		deck, err = decode(data, yaml.Unmarshal)
	case ".toml":
		deck, err = decode(data, toml.Unmarshal)
	default:
		deck, err = parseFeed(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	deck.Source = path
	if deck.Title == "" {
		deck.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	deck.ID = storage.DeckID(deck.Title)
	fillIDs(deck.Items)
	return deck, nil
}

func decode(data []byte, unmarshal func([]byte, any) error) (*storage.Deck, error) {
	var f file
	if err := unmarshal(data, &f); err != nil {
		return nil, err
	}

	deck := &storage.Deck{Title: f.Title, Items: make([]storage.Item, 0, len(f.Items))}
	for _, it := range f.Items {
		deck.Items = append(deck.Items, storage.Item{
			ID:    it.ID,
			Title: it.Title,
			Body:  strings.TrimSpace(it.Body),
			Link:  it.Link,
			Tags:  it.Tags,
		})
	}
	return deck, nil
}

func parseFeed(data []byte) (*storage.Deck, error) {
	feed, err := gofeed.NewParser().ParseString(string(data))
	if err != nil {
		return nil, err
	}

	deck := &storage.Deck{Title: feed.Title, Items: make([]storage.Item, 0, len(feed.Items))}
	for _, fi := range feed.Items {
		item := storage.Item{
			ID:    fi.GUID,
			Title: fi.Title,
			Body:  toMarkdown(content(fi)),
			Link:  fi.Link,
			Tags:  fi.Categories,
		}
		if fi.PublishedParsed != nil {
			item.Published = *fi.PublishedParsed
		}
		deck.Items = append(deck.Items, item)
	}
	return deck, nil
}

func content(item *gofeed.Item) string {
	if item.Content != "" {
		return item.Content
	}
	return item.Description
}

// toMarkdown converts feed HTML so bodies render like hand-written decks.
// Plain text passes through unchanged.
func toMarkdown(html string) string {
	if !strings.Contains(html, "<") {
		return strings.TrimSpace(html)
	}
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(md)
}

func fillIDs(items []storage.Item) {
	for i := range items {
		if items[i].ID != "" {
			continue
		}
		if items[i].Link != "" {
			items[i].ID = items[i].Link
			continue
		}
		items[i].ID = fmt.Sprintf("item-%d", i+1)
	}
}
