package diskusage

import (
	"context"
	"fmt"
)

// Provider lists the disk usage of a directory and its immediate children.
type Provider interface {
	// List returns "<size>\t<path>" lines. If humanReadable is set the size
	// token is a formatted string (e.g. "160M") instead of an integer.
	List(ctx context.Context, path string, humanReadable bool) ([]string, error)
}

// Provider names accepted on the command line.
const (
	ProviderDu   = "du"
	ProviderWalk = "walk"
)

// Providers lists the valid provider names.
//
//nolint:gochecknoglobals // Config constant
var Providers = []string{ProviderDu, ProviderWalk}

// ProviderOptions configures provider construction.
type ProviderOptions struct {
	// Command configures the du provider.
	Command Command
	// Walker configures the walk provider.
	Walker Walker
}

// NewProvider returns the provider registered under name.
func NewProvider(name string, opts ProviderOptions) (Provider, error) {
	switch name {
	case ProviderDu, "":
		c := opts.Command

		return &c, nil
	case ProviderWalk:
		w := opts.Walker

		return &w, nil
	default:
		return nil, fmt.Errorf("unknown provider %q: must be one of %v", name, Providers)
	}
}
