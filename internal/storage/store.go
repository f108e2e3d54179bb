package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var decksBucket = []byte("decks")

var ErrDeckNotFound = errors.New("deck not found")

type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = 1 * time.Second
	}
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(decksBucket)
		return createErr
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDeck inserts or replaces a deck. An empty ID is derived from the title.
func (s *Store) SaveDeck(deck *Deck) error {
	if deck.ID == "" {
		deck.ID = DeckID(deck.Title)
	}
	if deck.ID == "" {
		return fmt.Errorf("deck needs a title or id")
	}
	deck.UpdatedAt = time.Now()

	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(deck)
		if err != nil {
			return err
		}
		return tx.Bucket(decksBucket).Put([]byte(deck.ID), data)
	})
}

func (s *Store) GetDeck(id string) (*Deck, error) {
	var deck Deck
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(decksBucket).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrDeckNotFound, id)
		}
		return json.Unmarshal(data, &deck)
	})
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

// ListDecks returns every deck sorted by title (case-insensitive), falling
// back to the ID for untitled decks.
func (s *Store) ListDecks() ([]*Deck, error) {
	var decks []*Deck
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(decksBucket).ForEach(func(_ []byte, v []byte) error {
			var deck Deck
			if err := json.Unmarshal(v, &deck); err != nil {
				return err
			}
			decks = append(decks, &deck)
			return nil
		})
	})
	sort.Slice(decks, func(i, j int) bool {
		return strings.ToLower(sortKey(decks[i])) < strings.ToLower(sortKey(decks[j]))
	})
	return decks, err
}

func sortKey(d *Deck) string {
	if d.Title != "" {
		return d.Title
	}
	return d.ID
}

func (s *Store) DeleteDeck(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(decksBucket)
		if b.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", ErrDeckNotFound, id)
		}
		return b.Delete([]byte(id))
	})
}
