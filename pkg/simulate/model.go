package simulate

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"sync"

	"github.com/floatdur/floatdur-go/pkg/duration"
)

// Model is a system of first-order ordinary differential equations.
type Model interface {
	// Variables returns the names of the state variables, in state order.
	Variables() []string

	// Derivative writes d(state)/dt at time t into out, in units per second.
	Derivative(t duration.Duration, state, out []float64)
}

// ModelFactory builds a Model from scenario parameters.
type ModelFactory func(params map[string]float64) (Model, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]ModelFactory{
		"decay":      newDecay,
		"oscillator": newOscillator,
		"freefall":   newFreefall,
	}
)

// Register makes a model available to scenarios under name, replacing any
// model of the same name.
func Register(name string, factory ModelFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Models returns the registered model names, sorted.
func Models() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

func lookupModel(name string) (ModelFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// param returns params[name] or def when unset.
func param(params map[string]float64, name string, def float64) float64 {
	if v, ok := params[name]; ok {
		return v
	}
	return def
}

// decay is exponential decay, dx/dt = -rate * x.
type decay struct {
	rate float64
}

func newDecay(params map[string]float64) (Model, error) {
	rate := param(params, "rate", 1)
	if rate < 0 {
		return nil, fmt.Errorf("%w: decay rate must not be negative", ErrInvalidScenario)
	}
	return decay{rate: rate}, nil
}

func (decay) Variables() []string { return []string{"x"} }

func (m decay) Derivative(_ duration.Duration, state, out []float64) {
	out[0] = -m.rate * state[0]
}

// oscillator is a damped harmonic oscillator,
// x'' = -omega^2 x - 2 zeta omega x'.
type oscillator struct {
	omega, zeta float64
}

func newOscillator(params map[string]float64) (Model, error) {
	omega := param(params, "omega", 2*math.Pi)
	if omega <= 0 {
		return nil, fmt.Errorf("%w: oscillator omega must be positive", ErrInvalidScenario)
	}
	return oscillator{omega: omega, zeta: param(params, "damping", 0)}, nil
}

func (oscillator) Variables() []string { return []string{"x", "v"} }

func (m oscillator) Derivative(_ duration.Duration, state, out []float64) {
	x, v := state[0], state[1]
	out[0] = v
	out[1] = -m.omega*m.omega*x - 2*m.zeta*m.omega*v
}

// freefall is vertical motion under gravity with quadratic drag,
// y'' = -g - drag v|v|.
type freefall struct {
	g, drag float64
}

func newFreefall(params map[string]float64) (Model, error) {
	return freefall{g: param(params, "g", 9.81), drag: param(params, "drag", 0)}, nil
}

func (freefall) Variables() []string { return []string{"y", "v"} }

func (m freefall) Derivative(_ duration.Duration, state, out []float64) {
	v := state[1]
	out[0] = v
	out[1] = -m.g - m.drag*v*math.Abs(v)
}
