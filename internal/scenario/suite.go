package scenario

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/limitbreak/internal/solver"
)

// Suite is a named list of solve cases.
type Suite struct {
	// Name identifies the suite and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what the suite covers.
	Description string `yaml:"description" json:"description"`

	// Solver overrides solver settings for every case in the suite.
	Solver Settings `yaml:"solver,omitempty" json:"solver,omitempty"`

	// Cases are run in order.
	Cases []Case `yaml:"cases" json:"cases"`

	// Path is the file the suite was loaded from, if any.
	Path string `yaml:"-" json:"-"`
}

// Settings are per-suite solver overrides.
type Settings struct {
	AllowNegativeCoins bool   `yaml:"allow_negative_coins,omitempty" json:"allow_negative_coins,omitempty"`
	Strategy           string `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	MaxTableCells      int64  `yaml:"max_table_cells,omitempty" json:"max_table_cells,omitempty"`
}

// Case is one solve with its expectation.
type Case struct {
	Name       string     `yaml:"name" json:"name"`
	Target     int64      `yaml:"target" json:"target"`
	MaxCoins   int64      `yaml:"max_coins" json:"max_coins"`
	Coins      []int64    `yaml:"coins" json:"coins"`
	Expect     Expect     `yaml:"expect" json:"expect"`
	Properties []Property `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// Problem returns the solver input for the case.
func (c Case) Problem() solver.Problem {
	return solver.Problem{Target: c.Target, MaxCoins: c.MaxCoins, Coins: c.Coins}
}

// Expect is the expected outcome of a case: exactly one of Count or Error.
type Expect struct {
	Count *int64 `yaml:"count,omitempty" json:"count,omitempty"`
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

// Property names a check run around a case.
type Property string

// Property constants.
const (
	PropPermutationInvariant Property = "permutation_invariant"
	PropMonotoneBudget       Property = "monotone_budget"
	PropMatchesEnumeration   Property = "matches_enumeration"
	PropStrategiesAgree      Property = "strategies_agree"
)

// KnownProperties lists every supported property.
var KnownProperties = []Property{
	PropPermutationInvariant,
	PropMonotoneBudget,
	PropMatchesEnumeration,
	PropStrategiesAgree,
}

// LoadSuite reads a suite file. The format is chosen by extension:
// .yaml/.yml or .cue.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var suite *Suite
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		suite, err = ParseYAML(data)
	case ".cue":
		suite, err = ParseCUE(data, path)
	default:
		return nil, fmt.Errorf("unsupported suite extension %q: want .yaml, .yml or .cue", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	suite.Path = path
	return suite, nil
}

// ParseYAML decodes and validates a YAML suite. Unknown fields are errors.
func ParseYAML(data []byte) (*Suite, error) {
	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // catches "expects:" vs "expect:"
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &suite, nil
}

// ParseCUE evaluates and validates a CUE suite. The file must be concrete;
// CUE definitions and comprehensions may be used to generate cases.
func ParseCUE(data []byte, filename string) (*Suite, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("CUE value is not concrete: %w", err)
	}

	var suite Suite
	if err := value.Decode(&suite); err != nil {
		return nil, fmt.Errorf("decoding CUE suite: %w", err)
	}
	if err := validateSuite(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &suite, nil
}

// FindSuites expands paths into suite files. Directories are walked for
// .yaml, .yml and .cue files; plain files are kept as given. The result is
// sorted and free of duplicates.
func FindSuites(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("suite path: %w", err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Golden snapshots live next to suites; never treat them as input.
				if d.Name() == "golden" {
					return filepath.SkipDir
				}
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".yaml", ".yml", ".cue":
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// Filter keeps the cases whose name matches the glob pattern.
// An empty pattern keeps every case.
func (s *Suite) Filter(pattern string) (*Suite, error) {
	if pattern == "" {
		return s, nil
	}
	out := *s
	out.Cases = nil
	for _, c := range s.Cases {
		ok, err := filepath.Match(pattern, c.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", pattern, err)
		}
		if ok {
			out.Cases = append(out.Cases, c)
		}
	}
	return &out, nil
}

// validateSuite checks required fields and structural constraints.
func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}
	if s.Solver.Strategy != "" {
		if _, err := solver.ParseStrategy(s.Solver.Strategy); err != nil {
			return fmt.Errorf("solver.strategy: %w", err)
		}
	}
	if s.Solver.MaxTableCells < 0 {
		return fmt.Errorf("solver.max_table_cells must not be negative")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true

		if err := validateExpect(c.Expect); err != nil {
			return fmt.Errorf("cases[%d] %q: %w", i, c.Name, err)
		}
		for _, p := range c.Properties {
			if !slices.Contains(KnownProperties, p) {
				return fmt.Errorf("cases[%d] %q: unknown property %q", i, c.Name, p)
			}
		}
	}
	return nil
}

func validateExpect(e Expect) error {
	switch {
	case e.Count == nil && e.Error == "":
		return fmt.Errorf("expect: one of count or error is required")
	case e.Count != nil && e.Error != "":
		return fmt.Errorf("expect: count and error are mutually exclusive")
	case e.Count != nil && *e.Count < 0:
		return fmt.Errorf("expect.count must not be negative")
	case e.Error != "":
		if _, err := solver.ParseErrorCode(e.Error); err != nil {
			return fmt.Errorf("expect.error: %w", err)
		}
	}
	return nil
}
