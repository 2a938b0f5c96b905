package filter

import (
	"fmt"
	"slices"
	"strings"
)

// Presets holds named filter expressions loaded from configuration.
type Presets struct {
	exprs map[string]string
}

// NewPresets copies the named expressions, dropping blank ones.
func NewPresets(named map[string]string) *Presets {
	p := &Presets{exprs: make(map[string]string, len(named))}
	for name, expression := range named {
		if strings.TrimSpace(expression) == "" {
			continue
		}
		p.exprs[strings.ToLower(name)] = expression
	}
	return p
}

// Expression returns the expression registered under name.
func (p *Presets) Expression(name string) (string, error) {
	expression, ok := p.exprs[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return expression, nil
}

// Names returns the registered names in sorted order.
func (p *Presets) Names() []string {
	names := make([]string, 0, len(p.exprs))
	for name := range p.exprs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CompilePreset compiles the preset called name for subject.
func CompilePreset[T any](p *Presets, subject Subject[T], name string) (*Filter[T], error) {
	expression, err := p.Expression(name)
	if err != nil {
		return nil, err
	}
	f, err := Compile(subject, expression)
	if err != nil {
		return nil, fmt.Errorf("failed to compile preset '%s': %w", name, err)
	}
	return f, nil
}
