package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
	"github.com/custodia-labs/notegraph/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyVaultPath         = "vault.path"
	keyWeakThreshold     = "analysis.weak_threshold"
	keyTopConcepts       = "analysis.top_concepts"
	keyTopRankings       = "analysis.top_rankings"
	keyKeyPhrases        = "analysis.key_phrases"
	keyRecencyWindowDays = "analysis.recency_window_days"
	keyRecencyScale      = "analysis.recency_scale"
	keyLinkWeight        = "analysis.link_weight"
	keyBacklinkWeight    = "analysis.backlink_weight"
	keyIndirectWeight    = "analysis.indirect_weight"
	keyWorkers           = "analysis.workers"
	keyStopWords         = "analysis.stop_words"
	keyConceptMinRunes   = "analysis.concept_min_runes"
	keyConceptStopWords  = "analysis.concept_stop_words"
	keyStorageEnabled    = "storage.enabled"
)

// settingKeys is the display order of recognised keys.
var settingKeys = []string{
	keyVaultPath,
	keyWeakThreshold,
	keyTopConcepts,
	keyTopRankings,
	keyKeyPhrases,
	keyRecencyWindowDays,
	keyRecencyScale,
	keyLinkWeight,
	keyBacklinkWeight,
	keyIndirectWeight,
	keyWorkers,
	keyStopWords,
	keyConceptMinRunes,
	keyConceptStopWords,
	keyStorageEnabled,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	policy := defaults.Analysis

	settings := &domain.AppSettings{
		Vault: domain.VaultSettings{
			Path: s.getString(keyVaultPath, defaults.Vault.Path),
		},
		Analysis: domain.AnalysisPolicy{
			WeakThreshold:     s.getInt(keyWeakThreshold, policy.WeakThreshold),
			TopConcepts:       s.getInt(keyTopConcepts, policy.TopConcepts),
			TopRankings:       s.getInt(keyTopRankings, policy.TopRankings),
			KeyPhrases:        s.getInt(keyKeyPhrases, policy.KeyPhrases),
			LinkWeight:        s.getFloat(keyLinkWeight, policy.LinkWeight),
			BacklinkWeight:    s.getFloat(keyBacklinkWeight, policy.BacklinkWeight),
			IndirectWeight:    s.getFloat(keyIndirectWeight, policy.IndirectWeight),
			RecencyWindowDays: s.getFloat(keyRecencyWindowDays, policy.RecencyWindowDays),
			RecencyScale:      s.getFloat(keyRecencyScale, policy.RecencyScale),
			Workers:           s.getInt(keyWorkers, policy.Workers),
			StopWords:         s.configStore.GetStringSlice(keyStopWords),
			ConceptMinRunes:   s.getInt(keyConceptMinRunes, policy.ConceptMinRunes),
			ConceptStopWords:  s.getBool(keyConceptStopWords, policy.ConceptStopWords),
			Weights:           policy.Weights,
		},
		Storage: domain.StorageSettings{
			Enabled: s.getBool(keyStorageEnabled, defaults.Storage.Enabled),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Analysis.Validate(); err != nil {
		return err
	}

	p := settings.Analysis
	values := []struct {
		key   string
		value any
	}{
		{keyVaultPath, settings.Vault.Path},
		{keyWeakThreshold, p.WeakThreshold},
		{keyTopConcepts, p.TopConcepts},
		{keyTopRankings, p.TopRankings},
		{keyKeyPhrases, p.KeyPhrases},
		{keyRecencyWindowDays, p.RecencyWindowDays},
		{keyRecencyScale, p.RecencyScale},
		{keyLinkWeight, p.LinkWeight},
		{keyBacklinkWeight, p.BacklinkWeight},
		{keyIndirectWeight, p.IndirectWeight},
		{keyWorkers, p.Workers},
		{keyConceptMinRunes, p.ConceptMinRunes},
		{keyConceptStopWords, p.ConceptStopWords},
		{keyStorageEnabled, settings.Storage.Enabled},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if p.StopWords != nil {
		if err := s.configStore.Set(keyStopWords, p.StopWords); err != nil {
			return fmt.Errorf("save %s: %w", keyStopWords, err)
		}
	}

	return nil
}

// Set updates one setting from its string form.
// Stop words are given as a comma-separated list.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	p := &settings.Analysis
	switch key {
	case keyVaultPath:
		settings.Vault.Path = strings.TrimSpace(value)
	case keyWeakThreshold:
		err = parseInt(value, &p.WeakThreshold)
	case keyTopConcepts:
		err = parseInt(value, &p.TopConcepts)
	case keyTopRankings:
		err = parseInt(value, &p.TopRankings)
	case keyKeyPhrases:
		err = parseInt(value, &p.KeyPhrases)
	case keyWorkers:
		err = parseInt(value, &p.Workers)
	case keyRecencyWindowDays:
		err = parseFloat(value, &p.RecencyWindowDays)
	case keyRecencyScale:
		err = parseFloat(value, &p.RecencyScale)
	case keyLinkWeight:
		err = parseFloat(value, &p.LinkWeight)
	case keyBacklinkWeight:
		err = parseFloat(value, &p.BacklinkWeight)
	case keyIndirectWeight:
		err = parseFloat(value, &p.IndirectWeight)
	case keyStopWords:
		p.StopWords = splitList(value)
	case keyConceptMinRunes:
		err = parseInt(value, &p.ConceptMinRunes)
	case keyConceptStopWords:
		p.ConceptStopWords, err = strconv.ParseBool(strings.TrimSpace(value))
	case keyStorageEnabled:
		var enabled bool
		enabled, err = strconv.ParseBool(strings.TrimSpace(value))
		settings.Storage.Enabled = enabled
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	return s.Save(settings)
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Analysis.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func parseInt(value string, dst *int) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseFloat(value string, dst *float64) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
