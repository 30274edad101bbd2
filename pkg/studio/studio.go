// Package studio holds the state of an interactive design session.
//
// A [Studio] tracks the parameters being edited, the design family sent to
// the remote generator, and the outcome of the last generation: either the
// returned markup or the error that replaced it. At most one of the two is
// set at any time.
//
//	s := studio.New(client, runner)
//	s.SetParams(p)
//	if err := s.Generate(ctx); err != nil {
//	    fmt.Println(s.State().Err) // the service's message, verbatim
//	}
//	res, err := s.Render(ctx, []string{"svg"})
//
// Rendering uses the generated markup when present and the local pipeline
// otherwise. States can be saved and restored with a [FileStore].
package studio

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kolam/pkg/design"
	"github.com/matzehuels/kolam/pkg/errors"
	"github.com/matzehuels/kolam/pkg/kolam"
	"github.com/matzehuels/kolam/pkg/pipeline"
)

// Generator produces kolam markup remotely.
// *kolamkar.Client implements it.
type Generator interface {
	Generate(ctx context.Context, p kolam.Params, d design.Config, refresh bool) (string, error)
}

// State is a snapshot of a studio.
type State struct {
	Name      string       `json:"name"`
	Params    kolam.Params `json:"params"`
	Design    design.Spec  `json:"design"`
	Markup    string       `json:"markup,omitempty"`
	Err       string       `json:"error,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// HasResult reports whether the last generation succeeded.
func (s State) HasResult() bool { return s.Markup != "" }

// Studio is safe for concurrent use. Generate calls are serialized so a
// slow response can never overwrite a newer one.
type Studio struct {
	gen    Generator
	runner *pipeline.Runner
	logger *log.Logger

	genMu sync.Mutex
	mu    sync.RWMutex
	state State
}

// New creates a studio starting from the default parameters and design
// family. A nil runner renders without a cache. gen may be nil, in which
// case Generate fails with UNSUPPORTED.
func New(gen Generator, runner *pipeline.Runner) *Studio {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, nil)
	}
	cfg, _ := design.Default(design.DefaultFamily)
	return &Studio{
		gen:    gen,
		runner: runner,
		logger: runner.Logger,
		state: State{
			Params:    kolam.DefaultParams(),
			Design:    design.SpecOf(cfg),
			UpdatedAt: time.Now(),
		},
	}
}

// Restore creates a studio from a saved state.
func Restore(gen Generator, runner *pipeline.Runner, st State) (*Studio, error) {
	s := New(gen, runner)
	st.Params = st.Params.WithDefaults()
	if err := st.Params.Validate(); err != nil {
		return nil, err
	}
	if st.Design.Type != "" {
		if _, err := st.Design.Config(); err != nil {
			return nil, err
		}
	} else {
		st.Design = s.state.Design
	}
	s.state = st
	return s, nil
}

// State returns a copy of the current state.
func (s *Studio) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetParams replaces the edited parameters. Invalid parameters are
// rejected and leave the state untouched. The last result is kept: it
// describes the previous parameters until the next Generate.
func (s *Studio) SetParams(p kolam.Params) error {
	p = p.WithDefaults()
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Params = p
	s.state.UpdatedAt = time.Now()
	return nil
}

// SetDesign selects the design family configuration sent to the generator.
func (s *Studio) SetDesign(cfg design.Config) error {
	if cfg == nil {
		return errors.New(errors.ErrCodeInvalidDesign, "design configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Design = design.SpecOf(cfg)
	s.state.UpdatedAt = time.Now()
	return nil
}

// Generate asks the remote generator for markup for the current
// parameters. On success the markup replaces any previous result. On
// failure the previous markup is cleared, the error message is recorded
// in [State.Err] and the error is returned.
func (s *Studio) Generate(ctx context.Context) error {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	st := s.State()
	markup, err := s.generate(ctx, st)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.UpdatedAt = time.Now()
	if err != nil {
		s.state.Markup = ""
		s.state.Err = errors.UserMessage(err)
		s.logger.Warn("generation failed", "code", errors.GetCode(err), "error", s.state.Err)
		return err
	}
	s.state.Markup = markup
	s.state.Err = ""
	s.logger.Debug("generated markup", "bytes", len(markup), "design", st.Design.Type)
	return nil
}

func (s *Studio) generate(ctx context.Context, st State) (string, error) {
	if s.gen == nil {
		return "", errors.New(errors.ErrCodeUnsupported, "no design service configured")
	}
	cfg, err := st.Design.Config()
	if err != nil {
		return "", err
	}
	return s.gen.Generate(ctx, st.Params, cfg, false)
}

// Clear drops the last result and error.
func (s *Studio) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Markup = ""
	s.state.Err = ""
	s.state.UpdatedAt = time.Now()
}

// Render produces artifacts for the current state. Generated markup is
// rendered as-is; without it the local pipeline draws the parameters.
// Width and height of zero select the pipeline defaults.
func (s *Studio) Render(ctx context.Context, formats []string) (*pipeline.Result, error) {
	st := s.State()
	opts := pipeline.Options{
		Params:  st.Params,
		Markup:  st.Markup,
		Formats: formats,
	}
	return s.runner.Execute(ctx, opts)
}
