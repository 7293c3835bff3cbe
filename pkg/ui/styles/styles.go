// Package styles holds the lipgloss styles used by sdkpack's terminal
// output. Styles are defined in the embedded styles.yaml with adaptive
// colors, so they read on both light and dark backgrounds.
package styles

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Name is a semantic style name as used in styles.yaml
type Name string

const (
	Header       Name = "Header"
	Label        Name = "Label"
	Success      Name = "Success"
	Error        Name = "Error"
	Warning      Name = "Warning"
	Info         Name = "Info"
	Muted        Name = "Muted"
	Bold         Name = "Bold"
	FilePath     Name = "FilePath"
	Version      Name = "Version"
	DryRunBanner Name = "DryRunBanner"
)

// Names lists every style the renderers ask for
var Names = []Name{
	Header, Label, Success, Error, Warning, Info,
	Muted, Bold, FilePath, Version, DryRunBanner,
}

type colorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

type styleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

type themeFile struct {
	Colors map[string]colorDef `yaml:"colors"`
	Styles map[Name]styleDef   `yaml:"styles"`
}

// Theme is a resolved set of styles
type Theme struct {
	styles map[Name]lipgloss.Style
}

//go:embed styles.yaml
var embeddedStyles []byte

var current = plainTheme()

func init() {
	if theme, err := ParseTheme(embeddedStyles); err == nil {
		current = theme
	}
}

// plainTheme has every style unset, used when styles.yaml is unusable
func plainTheme() *Theme {
	t := &Theme{styles: make(map[Name]lipgloss.Style, len(Names))}
	for _, name := range Names {
		t.styles[name] = lipgloss.NewStyle()
	}
	return t
}

// ParseTheme builds a theme from YAML. Styles naming an undefined color
// simply get no color.
func ParseTheme(data []byte) (*Theme, error) {
	var file themeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	palette := make(map[string]lipgloss.AdaptiveColor, len(file.Colors))
	for name, c := range file.Colors {
		palette[name] = lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark}
	}

	t := &Theme{styles: make(map[Name]lipgloss.Style, len(file.Styles))}
	for name, def := range file.Styles {
		t.styles[name] = def.build(palette)
	}
	return t, nil
}

func (d styleDef) build(palette map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	s := lipgloss.NewStyle().
		Bold(d.Bold).
		Italic(d.Italic).
		Underline(d.Underline)

	if c, ok := palette[d.Foreground]; ok {
		s = s.Foreground(c)
	}
	if c, ok := palette[d.Background]; ok {
		s = s.Background(c)
	}
	if d.Width > 0 {
		s = s.Width(d.Width)
	}
	if d.MarginBottom > 0 {
		s = s.MarginBottom(d.MarginBottom)
	}
	if d.PaddingLeft > 0 || d.PaddingRight > 0 {
		s = s.PaddingLeft(d.PaddingLeft).PaddingRight(d.PaddingRight)
	}
	return s
}

// Has reports whether the theme defines name
func (t *Theme) Has(name Name) bool {
	_, ok := t.styles[name]
	return ok
}

// Style returns the named style, or an empty style if it is not defined
func (t *Theme) Style(name Name) lipgloss.Style {
	if s, ok := t.styles[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Current returns the active theme
func Current() *Theme { return current }

// Use makes t the active theme
func Use(t *Theme) { current = t }

// LoadStyles replaces the active theme with the one in the YAML file at path
func LoadStyles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read styles file %s: %w", path, err)
	}
	theme, err := ParseTheme(data)
	if err != nil {
		return err
	}
	Use(theme)
	return nil
}

// GetStyle returns the named style of the active theme
func GetStyle(name Name) lipgloss.Style {
	return current.Style(name)
}

// Render applies the named style of the active theme to s
func Render(name Name, s string) string {
	return current.Style(name).Render(s)
}
