// Package config loads and validates run configuration from yaml.
package config

import (
	"fmt"
	"os"

	"github.com/gonum/matrix/mat64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/models"
)

type Config struct {
	Method    string  `yaml:"method"`
	Dt        float64 `yaml:"dt"`
	T0        float64 `yaml:"t0"`
	T1        float64 `yaml:"t1"`
	Tolerance float64 `yaml:"tolerance"`

	Mass float64 `yaml:"mass"`
	// Inertia holds either the 3 diagonal entries or the full 9 row-major
	// entries of the inertia tensor.
	Inertia []float64 `yaml:"inertia"`

	InitState InitStateConfig `yaml:"init_state"`
	Forces    []float64       `yaml:"forces"`
	Moments   []float64       `yaml:"moments"`
}

type InitStateConfig struct {
	Ve    []float64 `yaml:"ve"`
	Xe    []float64 `yaml:"xe"`
	Vb    []float64 `yaml:"vb"`
	Euler []float64 `yaml:"euler"`
	PQR   []float64 `yaml:"pqr"`
}

// DefaultConfig is the level free-fall reference scenario.
func DefaultConfig() *Config {
	return &Config{
		Method:    "rk4",
		Dt:        0.01,
		T0:        0,
		T1:        30,
		Tolerance: 1e-6,
		Mass:      10,
		Inertia:   []float64{0.5, 0.5, 0.8},
		InitState: InitStateConfig{
			Vb: []float64{30, 0, 0},
		},
		Forces:  []float64{0, 0, -98.1},
		Moments: []float64{0, 0, 0},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := dynamo.ParseMethod(c.Method); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.T1 <= c.T0 {
		return fmt.Errorf("config: t1 must be greater than t0, got [%g, %g]", c.T0, c.T1)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("%w: got %g", dynamo.ErrNonPositiveMass, c.Mass)
	}
	if n := len(c.Inertia); n != 3 && n != 9 {
		return fmt.Errorf("config: inertia needs 3 diagonal or 9 row-major entries, got %d", n)
	}
	for _, v := range [][]float64{c.InitState.Ve, c.InitState.Xe, c.InitState.Vb, c.InitState.Euler, c.InitState.PQR, c.Forces, c.Moments} {
		if v != nil && len(v) != 3 {
			return fmt.Errorf("config: state and load groups must be 3-vectors")
		}
	}
	return nil
}

// BuildConfig maps the file settings onto the numerical run configuration.
func (c *Config) BuildConfig() (dynamo.Config, error) {
	method, err := dynamo.ParseMethod(c.Method)
	if err != nil {
		return dynamo.Config{}, err
	}
	cfg := dynamo.DefaultConfig()
	cfg.Method = method
	cfg.Dt = c.Dt
	if c.Tolerance > 0 {
		cfg.Tolerance = c.Tolerance
	}
	return cfg, nil
}

// BuildBody constructs the rigid body from mass and inertia entries.
func (c *Config) BuildBody() (*models.RigidBody, error) {
	switch len(c.Inertia) {
	case 3:
		return models.NewRigidBodyDiag(c.Mass, c.Inertia[0], c.Inertia[1], c.Inertia[2])
	case 9:
		return models.NewRigidBody(c.Mass, mat64.NewDense(3, 3, c.Inertia))
	default:
		return nil, fmt.Errorf("config: inertia needs 3 diagonal or 9 row-major entries, got %d", len(c.Inertia))
	}
}

// BuildState assembles the initial state vector; omitted groups are zero.
func (c *Config) BuildState() dynamo.State {
	return dynamo.NewState(
		vec3(c.InitState.Ve),
		vec3(c.InitState.Xe),
		vec3(c.InitState.Vb),
		vec3(c.InitState.Euler),
		vec3(c.InitState.PQR),
	)
}

// BuildLoads assembles the constant force/moment input.
func (c *Config) BuildLoads() dynamo.Loads {
	return dynamo.NewLoads(vec3(c.Forces), vec3(c.Moments))
}

func vec3(v []float64) []float64 {
	if len(v) == 3 {
		return v
	}
	return []float64{0, 0, 0}
}
