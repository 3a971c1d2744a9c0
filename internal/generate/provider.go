// AngelaMos | 2026
// provider.go

package generate

import "context"

// Provider streams text for a prompt. Stream invokes onChunk for
// every produced fragment in order and returns the full concatenated
// text once the provider signals completion. A mid-stream failure
// returns the error; chunks already delivered stay delivered.
type Provider interface {
	Stream(
		ctx context.Context,
		prompt string,
		onChunk func(chunk string) error,
	) (string, error)
}
