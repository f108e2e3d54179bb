package deck

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "team.yaml", `
title: Team Updates
items:
  - id: standup
    title: Standup moved
    body: |
      Now at **10:00** in room 4.
    tags: [team, schedule]
  - title: Release 2.1
    link: https://example.com/release
  - title: Lunch
`)

	deck, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Team Updates", deck.Title)
	assert.Equal(t, "team-updates", deck.ID)
	assert.Equal(t, path, deck.Source)
	require.Len(t, deck.Items, 3)
	assert.Equal(t, "standup", deck.Items[0].ID)
	assert.Equal(t, "Now at **10:00** in room 4.", deck.Items[0].Body)
	assert.Equal(t, []string{"team", "schedule"}, deck.Items[0].Tags)
	assert.Equal(t, "https://example.com/release", deck.Items[1].ID, "link stands in for a missing id")
	assert.Equal(t, "item-3", deck.Items[2].ID)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "menu.toml", `
[[items]]
title = "Soup"
body = "Tomato"
tags = ["vegan"]

[[items]]
id = "main"
title = "Pasta"
`)

	deck, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "menu", deck.Title, "title falls back to the file name")
	require.Len(t, deck.Items, 2)
	assert.Equal(t, "Soup", deck.Items[0].Title)
	assert.Equal(t, "item-1", deck.Items[0].ID)
	assert.Equal(t, "main", deck.Items[1].ID)
}

func TestLoad_RSS(t *testing.T) {
	path := writeFile(t, "news.xml", `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Company News</title>
		<item>
			<title>Office opening</title>
			<link>http://example.com/office</link>
			<description><![CDATA[<p>We open <strong>Monday</strong>.</p>]]></description>
			<guid>news-1</guid>
			<category>office</category>
			<pubDate>Wed, 01 Jan 2025 12:00:00 GMT</pubDate>
		</item>
		<item>
			<title>Plain text</title>
			<description>No markup here</description>
		</item>
	</channel>
</rss>`)

	deck, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Company News", deck.Title)
	require.Len(t, deck.Items, 2)
	first := deck.Items[0]
	assert.Equal(t, "news-1", first.ID)
	assert.Equal(t, "http://example.com/office", first.Link)
	assert.Contains(t, first.Body, "**Monday**")
	assert.NotContains(t, first.Body, "<p>")
	assert.Equal(t, []string{"office"}, first.Tags)
	assert.Equal(t, 2025, first.Published.Year())
	assert.Equal(t, "No markup here", deck.Items[1].Body)
	assert.Equal(t, "item-2", deck.Items[1].ID)
}

func TestLoad_JSONFeed(t *testing.T) {
	path := writeFile(t, "feed.json", `{
  "version": "https://jsonfeed.org/version/1.1",
  "title": "JSON Deck",
  "items": [
    {"id": "1", "title": "One", "content_text": "first"},
    {"id": "2", "title": "Two", "content_text": "second"}
  ]
}`)

	deck, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "JSON Deck", deck.Title)
	require.Len(t, deck.Items, 2)
	assert.Equal(t, "Two", deck.Items[1].Title)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "notes.txt", "hello"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "broken.yaml", "items: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "broken.toml", "[[items]\ntitle ="))
	assert.Error(t, err)
}

func TestLoad_EmptyDeck(t *testing.T) {
	deck, err := Load(writeFile(t, "empty.yaml", "title: Nothing yet\n"))
	require.NoError(t, err)
	assert.Empty(t, deck.Items)
}

func TestSupported(t *testing.T) {
	for _, p := range []string{"a.yaml", "a.YML", "a.toml", "a.xml", "a.rss", "a.atom", "a.json"} {
		assert.True(t, Supported(p), p)
	}
	for _, p := range []string{"a.txt", "a", "a.md"} {
		assert.False(t, Supported(p), p)
	}
}
