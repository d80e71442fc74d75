package recommendation

import (
	"context"

	"github.com/futig/puppy-picker/internal/entity"
)

// Completer is the external text-completion provider
type Completer interface {
	// Configured reports whether the provider credential is present
	Configured() bool
	Complete(ctx context.Context, req *entity.CompletionRequest) (string, error)
}
