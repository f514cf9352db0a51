package loader

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Registry maps normalized trade type tokens to plugins. It is read-only once built.
type Registry struct {
	plugins []Plugin
	byToken map[string]Plugin
}

var defaultRegistry = MustNewRegistry(CdsIndexPlugin{}, SwapPlugin{})

// DefaultRegistry holds the built-in plugins.
func DefaultRegistry() *Registry { return defaultRegistry }

// NewRegistry indexes plugins by their normalized tokens.
func NewRegistry(plugins ...Plugin) (*Registry, error) {
	r := &Registry{byToken: make(map[string]Plugin)}
	for _, p := range plugins {
		if p == nil || strings.TrimSpace(p.Name()) == "" {
			return nil, fmt.Errorf("NewRegistry: %w: plugin has no name", ErrInvalidPlugin)
		}
		types := p.Types()
		if len(types) == 0 {
			return nil, fmt.Errorf("NewRegistry: %w: plugin %s has no trade types", ErrInvalidPlugin, p.Name())
		}
		own := make(map[string]bool, len(types))
		for _, t := range types {
			token := NormalizeToken(t)
			if token == "" {
				return nil, fmt.Errorf("NewRegistry: %w: plugin %s has a blank trade type", ErrInvalidPlugin, p.Name())
			}
			if own[token] {
				continue
			}
			own[token] = true
			if existing, ok := r.byToken[token]; ok {
				return nil, &RegistrationConflictError{Token: token, Existing: existing.Name(), Conflicting: p.Name()}
			}
			r.byToken[token] = p
		}
		r.plugins = append(r.plugins, p)
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(plugins ...Plugin) *Registry {
	r, err := NewRegistry(plugins...)
	if err != nil {
		panic(err)
	}
	return r
}

// NormalizeToken uppercases s and removes all whitespace, so "cds index" and
// "CDSINDEX" are the same token.
func NormalizeToken(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, s)
}

// Lookup finds the plugin for a trade type token.
func (r *Registry) Lookup(token string) (Plugin, bool) {
	p, ok := r.byToken[NormalizeToken(token)]
	return p, ok
}

// Dispatch selects the plugin for a row from its trade type column.
func (r *Registry) Dispatch(row CsvRow) (Plugin, error) {
	token, err := row.Value(TypeField)
	if err != nil {
		return nil, err
	}
	p, ok := r.Lookup(token)
	if !ok {
		return nil, &UnknownTypeError{Token: token, Line: row.Line()}
	}
	return p, nil
}

// Plugins returns the plugins in registration order.
func (r *Registry) Plugins() []Plugin { return slices.Clone(r.plugins) }

// Tokens returns the normalized tokens, sorted.
func (r *Registry) Tokens() []string {
	tokens := make([]string, 0, len(r.byToken))
	for t := range r.byToken {
		tokens = append(tokens, t)
	}
	slices.Sort(tokens)
	return tokens
}
