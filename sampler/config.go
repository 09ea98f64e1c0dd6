package sampler

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oleksiik/enclose/extract"
	"github.com/oleksiik/enclose/label"
)

// Sentinel errors for configuration and per-pair input.
var (
	// ErrInvalidConfig is returned for any rejected configuration; the
	// wrapping message names the offending field. Surfaced before any
	// sampling begins.
	ErrInvalidConfig = errors.New("sampler: invalid config")

	// ErrBadPair is returned for a candidate pair referencing a
	// nonexistent node or identical endpoints.
	ErrBadPair = errors.New("sampler: bad candidate pair")

	// ErrNilGraph is returned if a nil graph pointer is passed.
	ErrNilGraph = errors.New("sampler: graph is nil")
)

// Config is the full sampling configuration, shared read-only across a
// run. Zero values mean "unset"; Default fills the standard knobs.
//
// Mode selection: setting walk_len (m) and num_walks (M) selects
// random-walk sampling; otherwise num_hops selects full k-hop extraction.
// Setting both families is a conflict.
type Config struct {
	// NumHops is the full-extraction depth h.
	NumHops int `yaml:"num_hops"`

	// WalkLen is the random-walk step count m.
	WalkLen int `yaml:"walk_len"`

	// NumWalks is the per-endpoint walk count M.
	NumWalks int `yaml:"num_walks"`

	// RatioPerHop thins each BFS fringe (full mode only); 0 or 1 keeps all.
	RatioPerHop float64 `yaml:"ratio_per_hop"`

	// MaxNodesPerHop caps each BFS fringe (full mode only); 0 disables.
	MaxNodesPerHop int `yaml:"max_nodes_per_hop"`

	// DropedgeRate independently drops observed subgraph edges; [0, 1).
	DropedgeRate float64 `yaml:"dropedge"`

	// NegRatio is the negative-to-positive sampling ratio (≥ 1).
	NegRatio int `yaml:"neg_ratio"`

	// Seed drives every derived random stream of the run.
	Seed int64 `yaml:"seed"`

	// CalcRatio activates the sparsity diagnostic path.
	CalcRatio bool `yaml:"calc_ratio"`

	// ValRatio and TestRatio are the edge-split fractions; their sum must
	// stay below 1, the remainder is the training split.
	ValRatio  float64 `yaml:"split_val_ratio"`
	TestRatio float64 `yaml:"split_test_ratio"`

	// Percent subsamples training pairs, in (0, 100].
	Percent float64 `yaml:"percent"`

	// MaxDist is the labeler's distance clipping budget.
	MaxDist int `yaml:"max_dist"`

	// LabelScheme is one of "drnl" (default), "hop", "zo".
	LabelScheme string `yaml:"label_scheme"`

	// Workers bounds extraction parallelism; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// CacheSize enables an LRU over assembled records when positive.
	CacheSize int `yaml:"cache_size"`
}

// Default returns the baseline configuration: 1-hop full extraction,
// DRNL labels, 5%/10% val/test split, one negative per positive.
func Default() Config {
	return Config{
		NumHops:   1,
		NegRatio:  1,
		Seed:      1,
		ValRatio:  0.05,
		TestRatio: 0.10,
		Percent:   100,
		MaxDist:   label.DefaultMaxDist,
	}
}

// Load reads a YAML config file over Default. Unknown keys are rejected,
// catching typos before they silently select default behavior.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("sampler: read config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	// The num_hops default only applies when the file selects no mode at
	// all; a file naming only walk parameters means walk mode, not a
	// conflict with the default.
	var present map[string]any
	_ = yaml.Unmarshal(raw, &present)
	if _, explicit := present["num_hops"]; !explicit && (cfg.WalkLen != 0 || cfg.NumWalks != 0) {
		cfg.NumHops = 0
	}

	return cfg, cfg.Validate()
}

// Validate rejects every malformed field before any sampling begins.
func (c Config) Validate() error {
	walkMode := c.WalkLen != 0 || c.NumWalks != 0
	switch {
	case walkMode && (c.WalkLen < 1 || c.NumWalks < 1):
		return fmt.Errorf("%w: walk mode requires walk_len ≥ 1 and num_walks ≥ 1 (m=%d, M=%d)",
			ErrInvalidConfig, c.WalkLen, c.NumWalks)
	case !walkMode && c.NumHops < 1:
		return fmt.Errorf("%w: num_hops must be ≥ 1 in full-hop mode (got %d)", ErrInvalidConfig, c.NumHops)
	case c.DropedgeRate < 0 || c.DropedgeRate >= 1:
		return fmt.Errorf("%w: dropedge must be in [0,1), got %v", ErrInvalidConfig, c.DropedgeRate)
	case c.NegRatio < 1:
		return fmt.Errorf("%w: neg_ratio must be ≥ 1, got %d", ErrInvalidConfig, c.NegRatio)
	case c.ValRatio < 0 || c.TestRatio < 0 || c.ValRatio+c.TestRatio >= 1:
		return fmt.Errorf("%w: split ratios must be non-negative and sum below 1 (val=%v, test=%v)",
			ErrInvalidConfig, c.ValRatio, c.TestRatio)
	case c.Percent <= 0 || c.Percent > 100:
		return fmt.Errorf("%w: percent must be in (0,100], got %v", ErrInvalidConfig, c.Percent)
	case c.MaxDist < 1:
		return fmt.Errorf("%w: max_dist must be ≥ 1, got %d", ErrInvalidConfig, c.MaxDist)
	case c.RatioPerHop < 0 || c.RatioPerHop > 1:
		return fmt.Errorf("%w: ratio_per_hop must be in [0,1], got %v", ErrInvalidConfig, c.RatioPerHop)
	case c.MaxNodesPerHop < 0:
		return fmt.Errorf("%w: max_nodes_per_hop cannot be negative (%d)", ErrInvalidConfig, c.MaxNodesPerHop)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers cannot be negative (%d)", ErrInvalidConfig, c.Workers)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: cache_size cannot be negative (%d)", ErrInvalidConfig, c.CacheSize)
	}
	if _, err := label.ParseScheme(c.LabelScheme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if walkMode && c.NumHops != 0 {
		return fmt.Errorf("%w: num_hops conflicts with walk_len/num_walks; pick one mode", ErrInvalidConfig)
	}

	return nil
}

// Mode resolves the extraction variant once, at configuration time.
func (c Config) Mode() (extract.Mode, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.WalkLen > 0 {
		return extract.RandomWalk{WalkLen: c.WalkLen, NumWalks: c.NumWalks}, nil
	}
	ratio := c.RatioPerHop
	if ratio == 0 {
		ratio = 1
	}

	return extract.FullHop{H: c.NumHops, RatioPerHop: ratio, MaxNodesPerHop: c.MaxNodesPerHop}, nil
}

// labeler builds the configured labeler; Validate has already vetted the
// scheme name and budget.
func (c Config) labeler() (label.Labeler, error) {
	scheme, err := label.ParseScheme(c.LabelScheme)
	if err != nil {
		return label.Labeler{}, err
	}

	return label.New(scheme, c.MaxDist)
}
