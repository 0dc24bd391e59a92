package bench

import (
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Config controls a benchmark run. It is usually read from a TOML file and
// then overridden by command-line flags.
type Config struct {
	// Scale is the number of keys loaded into each structure before the
	// workloads run.
	Scale int `toml:"scale"`
	// Ops is the number of operations per mixed workload.
	Ops int `toml:"ops"`
	// Scans is the number of full ordered scans in the scan workload.
	Scans int `toml:"scans"`

	ValueSize   int      `toml:"value_size"`
	Seed        uint64   `toml:"seed"`
	Structures  []string `toml:"structures"`
	Workloads   []string `toml:"workloads"`
	BTreeDegree int      `toml:"btree_degree"`
}

func DefaultConfig() Config {
	return Config{
		Scale:       100_000,
		Ops:         50_000,
		Scans:       10,
		ValueSize:   16,
		Seed:        1,
		Structures:  []string{StructureAVL, StructureBTree, StructureList, StructureLSM},
		Workloads:   []string{string(OLTP), string(OLAP), string(Churn), string(Scan)},
		BTreeDegree: 32,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. Keys the file sets
// that Config does not know are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "bench: loading %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Newf("bench: %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Scale <= 0:
		return errors.Newf("bench: scale must be positive, got %d", c.Scale)
	case c.Ops < 0:
		return errors.Newf("bench: ops must not be negative, got %d", c.Ops)
	case c.Scans < 0:
		return errors.Newf("bench: scans must not be negative, got %d", c.Scans)
	case c.ValueSize < 0:
		return errors.Newf("bench: value_size must not be negative, got %d", c.ValueSize)
	case c.BTreeDegree < 2:
		return errors.Newf("bench: btree_degree must be at least 2, got %d", c.BTreeDegree)
	case len(c.Structures) == 0:
		return errors.New("bench: no structures selected")
	}
	for _, s := range c.Structures {
		if _, ok := structures[s]; !ok {
			return errors.Newf("bench: unknown structure %q (known: %v)", s, StructureNames())
		}
	}
	for _, w := range c.Workloads {
		if !slices.Contains(allWorkloads, Workload(w)) {
			return errors.Newf("bench: unknown workload %q (known: %v)", w, allWorkloads)
		}
	}
	return nil
}
