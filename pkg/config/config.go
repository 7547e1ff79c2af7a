// Package config reads the configuration of widgets and of the cellview
// program from YAML.
//
// A configuration file looks like:
//
//	page-size: 20
//	keyboard-selection: bound-to-selection
//	keyboard-paging: increase-range
//	selection: single
//	platform: terminal
//	db: ~/.local/state/cellview/rows.db
//	styles:
//	  selected: bold
//	  keyboard: inverse
//	  status: dim
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"src.cellview.dev/pkg/platform"
	"src.cellview.dev/pkg/presenter"
	"src.cellview.dev/pkg/selection"
	"src.cellview.dev/pkg/ui"
)

// Config is the configuration.
type Config struct {
	PageSize          int               `yaml:"page-size"`
	KeyboardSelection KeyboardSelection `yaml:"keyboard-selection"`
	KeyboardPaging    KeyboardPaging    `yaml:"keyboard-paging"`
	PageIncrement     int               `yaml:"page-increment"`
	RedrawMinimum     int               `yaml:"redraw-minimum"`
	RedrawThreshold   float64           `yaml:"redraw-threshold"`
	// One of none, single and multi.
	Selection string `yaml:"selection"`
	// Name of the platform adapter.
	Platform string `yaml:"platform"`
	// Path of the row database.
	DB string `yaml:"db"`
	// Address of a row server. When set, rows are fetched from it instead of
	// the database.
	Remote string `yaml:"remote"`
	Styles Styles `yaml:"styles"`
}

// Styles are the stylings of a terminal list.
type Styles struct {
	Selected Styling `yaml:"selected"`
	Keyboard Styling `yaml:"keyboard"`
	Status   Styling `yaml:"status"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		PageSize:          presenter.DefaultPageSize,
		KeyboardSelection: KeyboardSelection(presenter.KeyboardEnabled),
		KeyboardPaging:    KeyboardPaging(presenter.ChangePage),
		PageIncrement:     presenter.DefaultPageIncrement,
		RedrawMinimum:     presenter.DefaultRedrawMinimum,
		RedrawThreshold:   presenter.DefaultRedrawThreshold,
		Selection:         "multi",
		Platform:          "terminal",
		Styles: Styles{
			Selected: MustParseStyling("bold"),
			Keyboard: MustParseStyling("inverse"),
			Status:   MustParseStyling("dim"),
		},
	}
}

// Load reads the configuration file. Fields missing from the file keep their
// default values.
func Load(fname string) (Config, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", fname, err)
	}
	return cfg, nil
}

// Parse parses a configuration. Unknown fields are errors.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks values that the YAML types do not constrain.
func (c *Config) Validate() error {
	switch {
	case c.PageSize <= 0:
		return fmt.Errorf("page-size must be positive, got %d", c.PageSize)
	case c.PageIncrement <= 0:
		return fmt.Errorf("page-increment must be positive, got %d", c.PageIncrement)
	case c.RedrawMinimum <= 0:
		return fmt.Errorf("redraw-minimum must be positive, got %d", c.RedrawMinimum)
	case c.RedrawThreshold <= 0:
		return fmt.Errorf("redraw-threshold must be positive, got %v", c.RedrawThreshold)
	}
	switch c.Selection {
	case "none", "single", "multi":
	default:
		return fmt.Errorf("selection should be none, single or multi, got %q", c.Selection)
	}
	if _, err := platform.Select(c.Platform); err != nil {
		return err
	}
	return nil
}

// PresenterConfig returns the presenter configuration. The key function,
// scheduler and error handler are left for the caller to fill.
func PresenterConfig[T any](c *Config) presenter.Config[T] {
	return presenter.Config[T]{
		PageSize:          c.PageSize,
		KeyboardSelection: presenter.KeyboardSelectionPolicy(c.KeyboardSelection),
		KeyboardPaging:    presenter.KeyboardPagingPolicy(c.KeyboardPaging),
		PageIncrement:     c.PageIncrement,
		RedrawMinimum:     c.RedrawMinimum,
		RedrawThreshold:   c.RedrawThreshold,
	}
}

// SelectionModel returns a new selection model of the configured kind.
func SelectionModel[T any](c *Config, keys selection.KeyFunc[T]) selection.Model[T] {
	switch c.Selection {
	case "none":
		return selection.NewNone[T]()
	case "single":
		return selection.NewSingle(keys)
	default:
		return selection.NewMulti(keys)
	}
}

// KeyboardSelection is presenter.KeyboardSelectionPolicy, written as
// disabled, enabled or bound-to-selection.
type KeyboardSelection presenter.KeyboardSelectionPolicy

func (p KeyboardSelection) String() string {
	return presenter.KeyboardSelectionPolicy(p).String()
}

func (p *KeyboardSelection) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	policy, err := presenter.ParseKeyboardSelectionPolicy(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = KeyboardSelection(policy)
	return nil
}

func (p KeyboardSelection) MarshalYAML() (any, error) { return p.String(), nil }

// KeyboardPaging is presenter.KeyboardPagingPolicy, written as current-page,
// change-page or increase-range.
type KeyboardPaging presenter.KeyboardPagingPolicy

func (p KeyboardPaging) String() string {
	return presenter.KeyboardPagingPolicy(p).String()
}

func (p *KeyboardPaging) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	policy, err := presenter.ParseKeyboardPagingPolicy(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = KeyboardPaging(policy)
	return nil
}

func (p KeyboardPaging) MarshalYAML() (any, error) { return p.String(), nil }

// Styling is a ui.Styling written in the syntax of ui.ParseStyling.
type Styling struct {
	ui.Styling
	text string
}

// MustParseStyling parses a Styling, and panics if it is invalid.
func MustParseStyling(s string) Styling {
	st, err := ParseStyling(s)
	if err != nil {
		panic(err)
	}
	return st
}

// ParseStyling parses a Styling. The empty string is the Styling that
// changes nothing.
func ParseStyling(s string) (Styling, error) {
	if s == "" {
		return Styling{}, nil
	}
	st := ui.ParseStyling(s)
	if st == nil {
		return Styling{}, fmt.Errorf("invalid styling %q", s)
	}
	return Styling{st, s}, nil
}

func (s Styling) String() string { return s.text }

func (s *Styling) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	st, err := ParseStyling(text)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = st
	return nil
}

func (s Styling) MarshalYAML() (any, error) { return s.text, nil }
