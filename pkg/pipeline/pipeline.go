// Package pipeline runs the capability emitter over a whole protocol: it
// validates the hand-off, emits one declaration per (type, capability) pair
// in parallel and returns them in a reproducible order.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/protobind/pkg/capability"
	"github.com/chazu/protobind/pkg/decl"
)

// Options controls a Run.
type Options struct {
	Strict   bool                // reject out-of-range opcodes and unknown variants
	Workers  int                 // 0 means GOMAXPROCS
	Variants capability.Variants // declared enum variants, for strict mode
}

// Result holds the emitted declarations and any non-fatal findings.
type Result struct {
	Declarations []decl.Declaration
	Warnings     []string
}

// Run emits declarations for every pair. In strict mode all validation
// failures are reported together and nothing is emitted. Outside strict mode
// they are downgraded to warnings and opcodes are narrowed to 8 bits.
func Run(ctx context.Context, pairs []capability.Pair, opts Options) (*Result, error) {
	log := Logger()
	result := &Result{}

	if verr := capability.ValidateAll(pairs, opts.Variants); verr != nil {
		if opts.Strict {
			return nil, fmt.Errorf("validate capabilities: %w", verr)
		}
		for _, e := range multierr.Errors(verr) {
			log.Warn("accepting invalid capability", zap.Error(e))
			result.Warnings = append(result.Warnings, e.Error())
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	decls := make([]decl.Declaration, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decls[i] = capability.Emit(p.Descriptor, p.TypeName)
			log.Debug("emitted declaration",
				zap.String("type", p.TypeName),
				zap.Stringer("contract", decls[i].Contract),
				zap.Int("members", len(decls[i].Members)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Declarations = Sort(decls, pairs)
	log.Info("generated declarations",
		zap.Int("pairs", len(pairs)),
		zap.Int("declarations", len(decls)),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

// Sort orders declarations by type name, then capability kind. decls[i] must
// have been emitted from pairs[i]; ties keep input order.
func Sort(decls []decl.Declaration, pairs []capability.Pair) []decl.Declaration {
	idx := make([]int, len(decls))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		da, db := decls[idx[a]], decls[idx[b]]
		if da.SelfType != db.SelfType {
			return da.SelfType < db.SelfType
		}
		return pairs[idx[a]].Descriptor.Kind() < pairs[idx[b]].Descriptor.Kind()
	})

	out := make([]decl.Declaration, len(decls))
	for i, j := range idx {
		out[i] = decls[j]
	}
	return out
}
