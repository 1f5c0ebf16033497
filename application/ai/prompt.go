// Package ai composes prompts from node content and cascading context,
// dispatches them to a registered provider and shapes the provider's
// raw output into the response the editor expects.
package ai

import (
	"fmt"
	"strings"

	"mindmap-backend/domain/tree"
	apperrors "mindmap-backend/pkg/errors"
)

// defaultSlot is the fallback slot inside a template variant and the
// fallback variant inside a template key.
const defaultSlot = "default"

// Library is a registry of named modifier templates keyed by
// key -> variant -> provider. Lookup falls back in layers: a
// provider-specific override first, then the variant's default text,
// then the key's default variant. A key with no registration at all is
// a deployment misconfiguration and fails hard.
type Library struct {
	templates map[string]map[string]map[string]string
}

// NewLibrary creates an empty template library.
func NewLibrary() *Library {
	return &Library{templates: make(map[string]map[string]map[string]string)}
}

// Register stores a template text. An empty variant or provider
// registers the respective default slot.
func (l *Library) Register(key, variant, provider, text string) {
	if variant == "" {
		variant = defaultSlot
	}
	if provider == "" {
		provider = defaultSlot
	}
	if l.templates[key] == nil {
		l.templates[key] = make(map[string]map[string]string)
	}
	if l.templates[key][variant] == nil {
		l.templates[key][variant] = make(map[string]string)
	}
	l.templates[key][variant][provider] = text
}

// Lookup resolves a template with layered fallback.
func (l *Library) Lookup(key, variant, provider string) (string, error) {
	variants, ok := l.templates[key]
	if !ok {
		return "", apperrors.NewConfigurationError(
			fmt.Sprintf("prompt template key '%s' not registered", key))
	}

	if variant == "" {
		variant = defaultSlot
	}
	slots, ok := variants[variant]
	if !ok {
		slots, ok = variants[defaultSlot]
		if !ok {
			return "", apperrors.NewConfigurationError(
				fmt.Sprintf("prompt template '%s/%s' has no default", key, variant))
		}
	}

	if text, ok := slots[provider]; ok {
		return text, nil
	}
	if text, ok := slots[defaultSlot]; ok {
		return text, nil
	}
	return "", apperrors.NewConfigurationError(
		fmt.Sprintf("prompt template '%s/%s' has no default", key, variant))
}

// Builder accumulates the parts of one prompt. Modifier lookups are
// resolved eagerly; the first failure sticks and is reported by Build.
type Builder struct {
	library   *Library
	provider  string
	userText  string
	contexts  []tree.ContextEntry
	modifiers []string
	err       error
}

// Build starts a prompt for the given provider.
func (l *Library) Build(userText, provider string) *Builder {
	return &Builder{library: l, provider: provider, userText: userText}
}

// WithContexts attaches the cascading context entries, highest priority
// (the node itself) first.
func (b *Builder) WithContexts(entries []tree.ContextEntry) *Builder {
	b.contexts = entries
	return b
}

// AddModifier appends the resolved template for (key, variant).
func (b *Builder) AddModifier(key, variant string) *Builder {
	if b.err != nil {
		return b
	}
	text, err := b.library.Lookup(key, variant, b.provider)
	if err != nil {
		b.err = err
		return b
	}
	b.modifiers = append(b.modifiers, text)
	return b
}

// String composes the final prompt: user text, then one priority line
// per context entry, then the modifier texts, all separated by blank
// lines.
func (b *Builder) String() (string, error) {
	if b.err != nil {
		return "", b.err
	}

	parts := []string{b.userText}

	if len(b.contexts) > 0 {
		lines := make([]string, 0, len(b.contexts))
		for _, e := range b.contexts {
			lines = append(lines, fmt.Sprintf("Priority %d: %s", e.Priority, e.Context))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	parts = append(parts, b.modifiers...)
	return strings.Join(parts, "\n\n"), nil
}
