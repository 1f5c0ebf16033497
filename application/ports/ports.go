// Package ports declares the interfaces the application layer depends
// on, implemented under infrastructure.
package ports

import "context"

// Provider is the external text-generation capability: one composed
// prompt in, raw text out. Implementations own their transport, rate
// limiting and retries; the returned string is untrusted free text.
type Provider interface {
	// Complete sends the prompt and returns the provider's text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the registry name of the provider.
	Name() string
}
