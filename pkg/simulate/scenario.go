package simulate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/floatdur/floatdur-go/pkg/duration"
)

// Scenario describes one simulation run. Durations accept plain seconds or
// unit strings ("90s", "1.5 hours").
type Scenario struct {
	Name    string             `yaml:"name"`
	Model   string             `yaml:"model"`
	Start   duration.Duration  `yaml:"start"`
	End     duration.Duration  `yaml:"end"`
	Steps   int                `yaml:"steps"`
	Params  map[string]float64 `yaml:"params,omitempty"`
	Initial map[string]float64 `yaml:"initial,omitempty"`
}

// ParseScenario parses YAML bytes into a validated Scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadScenario reads and parses a scenario file. A scenario without a name
// is named after the file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		base := filepath.Base(path)
		sc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return sc, nil
}

// Validate checks that the scenario can be run.
func (s *Scenario) Validate() error {
	if _, ok := lookupModel(s.Model); !ok {
		return fmt.Errorf("%w: %q (known: %s)", ErrUnknownModel, s.Model, strings.Join(Models(), ", "))
	}
	if s.Steps < 2 || s.Steps > MaxSteps {
		return fmt.Errorf("%w: steps must be between 2 and %d, got %d", ErrInvalidScenario, MaxSteps, s.Steps)
	}
	if !s.Start.IsFinite() || !s.End.IsFinite() {
		return fmt.Errorf("%w: start and end must be finite", ErrInvalidScenario)
	}
	if !s.Start.Less(s.End) {
		return fmt.Errorf("%w: start %v is not before end %v", ErrInvalidScenario, s.Start, s.End)
	}
	return nil
}
