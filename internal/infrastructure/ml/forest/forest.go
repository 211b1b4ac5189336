// Package forest implements random forest classification and regression over
// dense float64 feature matrices: bootstrap-sampled CART trees with random
// feature subsets at each split, averaged at prediction time.
package forest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

var (
	ErrNoSamples     = errors.New("forest: no training samples")
	ErrShapeMismatch = errors.New("forest: shape mismatch")
	ErrNotFitted     = errors.New("forest: model is not fitted")
)

// Params configures forest training. Zero values select the defaults noted
// on each field.
type Params struct {
	// Trees is the number of trees. Default 100.
	Trees int
	// MaxDepth limits tree depth. 0 grows until leaves are pure.
	MaxDepth int
	// MinSamplesSplit is the smallest node that may be split. Default 2.
	MinSamplesSplit int
	// MinSamplesLeaf is the smallest allowed leaf. Default 1.
	MinSamplesLeaf int
	// MaxFeatures is the number of features drawn per split. Default is
	// sqrt(n_features) for classification and n_features for regression.
	MaxFeatures int
	// Seed makes training deterministic.
	Seed uint64
	// Workers bounds concurrent tree construction. Default GOMAXPROCS.
	Workers int
}

func (p Params) withDefaults(nFeatures int, criterion Criterion) Params {
	if p.Trees <= 0 {
		p.Trees = 100
	}
	if p.MinSamplesSplit < 2 {
		p.MinSamplesSplit = 2
	}
	if p.MinSamplesLeaf < 1 {
		p.MinSamplesLeaf = 1
	}
	if p.MaxFeatures <= 0 || p.MaxFeatures > nFeatures {
		if criterion == Gini {
			p.MaxFeatures = max(1, int(math.Sqrt(float64(nFeatures))))
		} else {
			p.MaxFeatures = nFeatures
		}
	}
	if p.Workers <= 0 {
		p.Workers = runtime.GOMAXPROCS(0)
	}
	return p
}

// Forest is a fitted ensemble. It is immutable after training and safe for
// concurrent prediction.
type Forest struct {
	Criterion Criterion `json:"criterion"`
	Features  int       `json:"n_features"`
	Trees     []Tree    `json:"trees"`
}

// Predict averages the tree outputs for x.
func (f *Forest) Predict(x []float64) float64 {
	var total float64
	for i := range f.Trees {
		total += f.Trees[i].Predict(x)
	}
	return total / float64(len(f.Trees))
}

func (f *Forest) validate() error {
	if f == nil || len(f.Trees) == 0 {
		return ErrNotFitted
	}
	if f.Features <= 0 {
		return fmt.Errorf("%w: forest has %d features", ErrShapeMismatch, f.Features)
	}
	for t := range f.Trees {
		nodes := f.Trees[t].Nodes
		if len(nodes) == 0 {
			return fmt.Errorf("forest: tree %d is empty", t)
		}
		for i, n := range nodes {
			if n.Feature == leaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= f.Features {
				return fmt.Errorf("forest: tree %d node %d: feature %d out of range", t, i, n.Feature)
			}
			if n.Left <= i || n.Right <= i || n.Left >= len(nodes) || n.Right >= len(nodes) {
				return fmt.Errorf("forest: tree %d node %d: invalid child index", t, i)
			}
		}
	}
	return nil
}

func checkShape(x [][]float64, nTargets int) (int, error) {
	if len(x) == 0 {
		return 0, ErrNoSamples
	}
	if len(x) != nTargets {
		return 0, fmt.Errorf("%w: %d rows but %d targets", ErrShapeMismatch, len(x), nTargets)
	}
	width := len(x[0])
	if width == 0 {
		return 0, fmt.Errorf("%w: rows have no features", ErrShapeMismatch)
	}
	for i, row := range x {
		if len(row) != width {
			return 0, fmt.Errorf("%w: row %d has %d features, want %d", ErrShapeMismatch, i, len(row), width)
		}
	}
	return width, nil
}

// fit grows params.Trees trees concurrently. Each tree draws its bootstrap
// sample and feature subsets from its own generator seeded from params.Seed,
// so the result does not depend on scheduling.
func fit(ctx context.Context, x [][]float64, y []float64, criterion Criterion, params Params) (*Forest, error) {
	nFeatures, err := checkShape(x, len(y))
	if err != nil {
		return nil, err
	}
	params = params.withDefaults(nFeatures, criterion)

	master := rand.New(rand.NewPCG(params.Seed, params.Seed^0x5DEECE66D))
	seeds := make([]uint64, params.Trees)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	trees := make([]Tree, params.Trees)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(params.Workers)

	for t := range trees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(seeds[t], uint64(t)))

			sample := make([]int, len(x))
			for i := range sample {
				sample[i] = rng.IntN(len(x))
			}

			builder := newTreeBuilder(x, y, criterion, params, params.MaxFeatures, rng)
			trees[t] = builder.grow(sample)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("forest: training cancelled: %w", err)
	}

	return &Forest{Criterion: criterion, Features: nFeatures, Trees: trees}, nil
}
