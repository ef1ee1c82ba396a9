// Package settings persists the two generator profiles (quote, image) as a
// single JSON blob under a fixed key.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"quoteforge/internal/models"
	"quoteforge/internal/redis"
)

// StorageKey is the fixed key holding the settings blob.
const StorageKey = "app-settings"

// KV is the minimal persistence surface the store needs; redis.Client
// satisfies it in production.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Store loads and saves generator settings. An absent or malformed blob
// yields built-in defaults; saves replace the whole blob (last writer wins).
type Store struct {
	kv     KV
	logger *log.Logger
}

// NewStore builds a settings store over the given KV backend.
func NewStore(kv KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// persistedBlob captures both the current two-profile shape and the legacy
// single-profile shape ({systemPrompt, model} at the top level).
type persistedBlob struct {
	SystemPrompt string                    `json:"systemPrompt,omitempty"`
	Model        string                    `json:"model,omitempty"`
	Quote        *models.GeneratorSettings `json:"quote,omitempty"`
	Image        *models.GeneratorSettings `json:"image,omitempty"`
}

// Load reads the persisted settings, migrating the legacy shape by applying
// its values to both profiles and filling any empty field from defaults.
func (s *Store) Load(ctx context.Context) models.Settings {
	raw, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("read settings failed, using defaults", "err", err)
		}
		return Defaults()
	}

	var blob persistedBlob
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		s.logger.Warn("malformed settings blob, using defaults", "err", err)
		return Defaults()
	}

	if blob.Quote == nil && blob.Image == nil && (blob.SystemPrompt != "" || blob.Model != "") {
		// Legacy single-profile shape: same values for both generators.
		return models.Settings{
			Quote: models.GeneratorSettings{
				SystemPrompt: orDefault(blob.SystemPrompt, DefaultQuoteSystemPrompt),
				Model:        orDefault(blob.Model, DefaultModel),
			},
			Image: models.GeneratorSettings{
				SystemPrompt: orDefault(blob.SystemPrompt, DefaultImageSystemPrompt),
				Model:        orDefault(blob.Model, DefaultModel),
			},
		}
	}

	out := Defaults()
	if blob.Quote != nil {
		out.Quote.SystemPrompt = orDefault(blob.Quote.SystemPrompt, DefaultQuoteSystemPrompt)
		out.Quote.Model = orDefault(blob.Quote.Model, DefaultModel)
	}
	if blob.Image != nil {
		out.Image.SystemPrompt = orDefault(blob.Image.SystemPrompt, DefaultImageSystemPrompt)
		out.Image.Model = orDefault(blob.Image.Model, DefaultModel)
	}
	return out
}

// Save merge-patches the current settings and persists the full structure.
func (s *Store) Save(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	merged := s.Load(ctx)
	applyPatch(&merged.Quote, patch.Quote)
	applyPatch(&merged.Image, patch.Image)

	data, err := json.Marshal(merged)
	if err != nil {
		return merged, fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, string(data), 0); err != nil {
		return merged, fmt.Errorf("persist settings: %w", err)
	}
	return merged, nil
}

func applyPatch(dst *models.GeneratorSettings, p *models.GeneratorSettingsPatch) {
	if p == nil {
		return
	}
	if p.SystemPrompt != nil {
		dst.SystemPrompt = *p.SystemPrompt
	}
	if p.Model != nil {
		dst.Model = *p.Model
	}
}

func orDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}

// Defaults returns the built-in profiles.
func Defaults() models.Settings {
	return models.Settings{
		Quote: models.GeneratorSettings{SystemPrompt: DefaultQuoteSystemPrompt, Model: DefaultModel},
		Image: models.GeneratorSettings{SystemPrompt: DefaultImageSystemPrompt, Model: DefaultModel},
	}
}
