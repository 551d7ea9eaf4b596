package babel

import (
	"github.com/arthur-debert/mixconf/pkg/logging"
	"github.com/arthur-debert/mixconf/pkg/types"
)

// Generator produces the final transpiler configuration for a build
type Generator struct {
	fs       types.FS
	resolver Resolver
}

// NewGenerator creates a generator. A nil resolver resolves packages from
// node_modules below each build's root.
func NewGenerator(fsys types.FS, resolver Resolver) *Generator {
	return &Generator{fs: fsys, resolver: resolver}
}

// Generate merges the defaults, the user fragment (with any project-local
// configuration files under it) and the environment fragment, in that order.
func (g *Generator) Generate(ctx types.BuildContext) (types.Fragment, error) {
	logger := logging.GetLogger("babel")
	done := logging.LogOperationStart(logger, "generate transpiler config")
	defer done()

	resolver := g.resolver
	if resolver == nil {
		resolver = NewModuleResolver(g.fs, ctx.Root)
	}
	merger := NewMerger(resolver)

	partial, err := NewPartialLoader(g.fs, ctx.Root, merger).Load(ctx.Babel)
	if err != nil {
		return nil, err
	}

	return merger.MergeAll([]types.Fragment{
		Default(),
		partial,
		EnvironmentFragment(ctx.Root),
	})
}
