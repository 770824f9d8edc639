package classifier

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"grievance-insights-go/internal/types"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// MatchMode selects how keywords are found in normalized text.
type MatchMode string

const (
	// MatchSubstring counts a keyword wherever it occurs, including inside
	// longer tokens ("fire" matches "firefighter").
	MatchSubstring MatchMode = "substring"
	// MatchWord only counts whole space-delimited tokens or token runs.
	MatchWord MatchMode = "word"
)

func (m MatchMode) Valid() bool {
	return m == MatchSubstring || m == MatchWord
}

// Config holds the keyword tables a Scorer is built from.
type Config struct {
	KeywordSets  map[types.Severity][]string
	UrgencyWords []string
	MatchMode    MatchMode
}

type rawConfig struct {
	MatchMode    string              `yaml:"match_mode"`
	KeywordSets  map[string][]string `yaml:"keyword_sets"`
	UrgencyWords []string            `yaml:"urgency_words"`
}

// DefaultConfig returns the built-in keyword tables.
func DefaultConfig() Config {
	cfg, err := parseConfig(defaultsYAML, Config{})
	if err != nil {
		panic(fmt.Sprintf("classifier: embedded defaults: %v", err))
	}
	return cfg
}

// LoadConfig reads keyword tables from a YAML file. Labels and fields the
// file leaves out keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("classifier.LoadConfig: %w", err)
	}
	cfg, err := parseConfig(data, DefaultConfig())
	if err != nil {
		return Config{}, fmt.Errorf("classifier.LoadConfig: %s: %w", path, err)
	}
	return cfg, nil
}

// parseConfig decodes data and lays it over base.
func parseConfig(data []byte, base Config) (Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse: %w", err)
	}

	mode := MatchMode(strings.ToLower(strings.TrimSpace(raw.MatchMode)))
	switch {
	case mode == "" && base.MatchMode != "":
		mode = base.MatchMode
	case mode == "":
		mode = MatchSubstring
	case !mode.Valid():
		return Config{}, fmt.Errorf("unknown match_mode %q", raw.MatchMode)
	}

	sets := make(map[types.Severity][]string, len(types.Severities))
	for sev, words := range base.KeywordSets {
		sets[sev] = words
	}
	for label, words := range raw.KeywordSets {
		sev, ok := types.ParseSeverity(label)
		if !ok {
			return Config{}, fmt.Errorf("unknown severity %q in keyword_sets", label)
		}
		sets[sev] = cleanWords(words)
	}

	urgency := base.UrgencyWords
	if raw.UrgencyWords != nil {
		urgency = cleanWords(raw.UrgencyWords)
	}

	return Config{
		KeywordSets:  sets,
		UrgencyWords: urgency,
		MatchMode:    mode,
	}, nil
}

// cleanWords lowercases and trims keywords, dropping blanks. An empty
// keyword would match every text.
func cleanWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
