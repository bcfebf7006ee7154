// Package catalog loads the reward and content catalog from TOML files.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
)

//go:embed default.toml
var defaultCatalog string

// RewardEntry is a reward as written in a catalog file.
type RewardEntry struct {
	Id          string         `toml:"id"`
	Name        string         `toml:"name"`
	Description string         `toml:"description"`
	Cost        int64          `toml:"cost"`
	Category    string         `toml:"category"`
	Type        string         `toml:"type"`
	Available   *bool          `toml:"available"`
	Data        map[string]any `toml:"data"`
}

// Reward converts the entry into a catalog reward. Entries are available unless
// they say otherwise.
func (e RewardEntry) Reward() (*models.Reward, error) {
	if e.Id == "" || e.Name == "" {
		return nil, errors.New("reward entries need an id and a name")
	}
	if e.Cost <= 0 {
		return nil, fmt.Errorf("reward %s: %w", e.Id, storage.ErrInvalidAmount)
	}

	r := &models.Reward{
		Id:          e.Id,
		Name:        e.Name,
		Description: e.Description,
		Cost:        e.Cost,
		Category:    e.Category,
		Type:        e.Type,
		IsAvailable: e.Available == nil || *e.Available,
	}
	if len(e.Data) > 0 {
		data, err := json.Marshal(e.Data)
		if err != nil {
			return nil, fmt.Errorf("reward %s: failed to encode data: %w", e.Id, err)
		}
		r.Data = data
	}
	return r, nil
}

// Catalog is the static content and reward catalog.
type Catalog struct {
	Videos  []models.Video `toml:"videos"`
	Songs   []models.Song  `toml:"songs"`
	Rewards []RewardEntry  `toml:"rewards"`

	videos map[string]*models.Video
	songs  map[string]*models.Song
}

// Load reads a catalog from a TOML file.
func Load(path string) (*Catalog, error) {
	var c Catalog
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
	}
	return c.finish(md)
}

// Parse reads a catalog from TOML text.
func Parse(data string) (*Catalog, error) {
	var c Catalog
	md, err := toml.Decode(data, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return c.finish(md)
}

// Default returns the built-in demo catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) finish(md toml.MetaData) (*Catalog, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown catalog keys: %s", strings.Join(keys, ", "))
	}

	c.videos = make(map[string]*models.Video, len(c.Videos))
	for i := range c.Videos {
		c.videos[c.Videos[i].Id] = &c.Videos[i]
	}
	c.songs = make(map[string]*models.Song, len(c.Songs))
	for i := range c.Songs {
		c.songs[c.Songs[i].Id] = &c.Songs[i]
	}
	return c, nil
}

// GetVideo looks a video up by ID.
func (c *Catalog) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	v, ok := c.videos[id]
	if !ok {
		return nil, fmt.Errorf("video with ID %s: %w", id, storage.ErrNotFound)
	}
	video := *v
	return &video, nil
}

// ListVideos returns every video, optionally limited to one category.
func (c *Catalog) ListVideos(ctx context.Context, category string) ([]models.Video, error) {
	videos := []models.Video{}
	for _, v := range c.Videos {
		if category == "" || v.Category == category {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

// GetSong looks a song up by ID.
func (c *Catalog) GetSong(ctx context.Context, id string) (*models.Song, error) {
	s, ok := c.songs[id]
	if !ok {
		return nil, fmt.Errorf("song with ID %s: %w", id, storage.ErrNotFound)
	}
	song := *s
	return &song, nil
}

// ListSongs returns every song, optionally limited to one category.
func (c *Catalog) ListSongs(ctx context.Context, category string) ([]models.Song, error) {
	songs := []models.Song{}
	for _, s := range c.Songs {
		if category == "" || s.Category == category {
			songs = append(songs, s)
		}
	}
	return songs, nil
}

// RewardWriter is the part of the reward store needed to import a catalog.
type RewardWriter interface {
	GetReward(ctx context.Context, rewardID string) (*models.Reward, error)
	CreateReward(ctx context.Context, reward *models.Reward) (*models.Reward, error)
}

// ImportResult lists the reward IDs an import created and skipped.
type ImportResult struct {
	Created []string
	Skipped []string
}

// ImportRewards creates every catalog reward that the store does not already have.
func (c *Catalog) ImportRewards(ctx context.Context, store RewardWriter) (*ImportResult, error) {
	result := &ImportResult{}
	for _, entry := range c.Rewards {
		reward, err := entry.Reward()
		if err != nil {
			return result, err
		}

		_, err = store.GetReward(ctx, reward.Id)
		switch {
		case err == nil:
			result.Skipped = append(result.Skipped, reward.Id)
			continue
		case !errors.Is(err, storage.ErrNotFound):
			return result, err
		}

		if _, err := store.CreateReward(ctx, reward); err != nil {
			return result, fmt.Errorf("failed to create reward %s: %w", reward.Id, err)
		}
		result.Created = append(result.Created, reward.Id)
	}
	sort.Strings(result.Created)
	sort.Strings(result.Skipped)
	return result, nil
}
