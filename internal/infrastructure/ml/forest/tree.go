package forest

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
)

// Criterion selects the impurity measure a tree is grown with.
type Criterion int

const (
	// Gini grows classification trees over binary 0/1 targets.
	Gini Criterion = iota
	// SquaredError grows regression trees.
	SquaredError
)

// String returns the criterion name.
func (c Criterion) String() string {
	switch c {
	case Gini:
		return "gini"
	case SquaredError:
		return "squared_error"
	default:
		return fmt.Sprintf("criterion(%d)", int(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Criterion) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Criterion) UnmarshalText(b []byte) error {
	switch string(b) {
	case "gini":
		*c = Gini
	case "squared_error":
		*c = SquaredError
	default:
		return fmt.Errorf("forest: unknown criterion %q", string(b))
	}
	return nil
}

// weightedImpurity returns n times the node impurity, computed from the
// count, sum and sum of squares of the node's targets.
func (c Criterion) weightedImpurity(n, sum, sumSq float64) float64 {
	if n == 0 {
		return 0
	}
	if c == Gini {
		p := sum / n
		return n * 2 * p * (1 - p)
	}
	return sumSq - sum*sum/n
}

const leaf = -1

// Node is one decision or leaf node. Leaves have Feature == -1 and carry the
// mean target of their training samples in Value.
type Node struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t,omitempty"`
	Left      int     `json:"l,omitempty"`
	Right     int     `json:"r,omitempty"`
	Value     float64 `json:"v"`
	Samples   int     `json:"n"`
}

// Tree is a binary decision tree stored as a flat node slice rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Predict walks the tree for x. Samples go left when x[feature] <= threshold.
func (t *Tree) Predict(x []float64) float64 {
	if len(t.Nodes) == 0 {
		return 0
	}
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Feature == leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	if len(t.Nodes) == 0 {
		return 0
	}
	var walk func(i int) int
	walk = func(i int) int {
		n := t.Nodes[i]
		if n.Feature == leaf {
			return 0
		}
		return 1 + max(walk(n.Left), walk(n.Right))
	}
	return walk(0)
}

type split struct {
	feature   int
	threshold float64
	score     float64
}

type treeBuilder struct {
	x           [][]float64
	y           []float64
	criterion   Criterion
	params      Params
	maxFeatures int
	rng         *rand.Rand
	features    []int
	scratch     []int
	nodes       []Node
}

func newTreeBuilder(x [][]float64, y []float64, criterion Criterion, params Params, maxFeatures int, rng *rand.Rand) *treeBuilder {
	nFeatures := len(x[0])
	features := make([]int, nFeatures)
	for i := range features {
		features[i] = i
	}
	return &treeBuilder{
		x:           x,
		y:           y,
		criterion:   criterion,
		params:      params,
		maxFeatures: maxFeatures,
		rng:         rng,
		features:    features,
		scratch:     make([]int, len(x)),
	}
}

// grow builds a tree over the samples in idx. idx is reordered in place.
func (b *treeBuilder) grow(idx []int) Tree {
	b.nodes = b.nodes[:0]
	b.build(idx, 0)
	return Tree{Nodes: slices.Clone(b.nodes)}
}

func (b *treeBuilder) build(idx []int, depth int) int {
	n := len(idx)
	var sum, sumSq float64
	for _, i := range idx {
		sum += b.y[i]
		sumSq += b.y[i] * b.y[i]
	}

	pos := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: leaf, Value: sum / float64(n), Samples: n})

	if n < b.params.MinSamplesSplit || n < 2*b.params.MinSamplesLeaf {
		return pos
	}
	if b.params.MaxDepth > 0 && depth >= b.params.MaxDepth {
		return pos
	}
	if b.criterion.weightedImpurity(float64(n), sum, sumSq) <= 1e-12 {
		return pos
	}

	best, ok := b.bestSplit(idx, sum, sumSq)
	if !ok {
		return pos
	}

	k := partition(idx, func(i int) bool { return b.x[i][best.feature] <= best.threshold })
	left := b.build(idx[:k], depth+1)
	right := b.build(idx[k:], depth+1)

	b.nodes[pos].Feature = best.feature
	b.nodes[pos].Threshold = best.threshold
	b.nodes[pos].Left = left
	b.nodes[pos].Right = right
	return pos
}

// bestSplit scans a random subset of features for the split with the lowest
// weighted child impurity. If none of the first maxFeatures candidates yields
// a valid split, the scan continues through the remaining features.
func (b *treeBuilder) bestSplit(idx []int, sum, sumSq float64) (split, bool) {
	n := len(idx)
	best := split{score: b.criterion.weightedImpurity(float64(n), sum, sumSq)}
	found := false

	b.rng.Shuffle(len(b.features), func(i, j int) {
		b.features[i], b.features[j] = b.features[j], b.features[i]
	})

	sorted := b.scratch[:n]
	for visited, f := range b.features {
		if visited >= b.maxFeatures && found {
			break
		}

		copy(sorted, idx)
		slices.SortFunc(sorted, func(a, c int) int { return cmp.Compare(b.x[a][f], b.x[c][f]) })

		var leftSum, leftSq float64
		for i := 0; i < n-1; i++ {
			yi := b.y[sorted[i]]
			leftSum += yi
			leftSq += yi * yi

			nl := i + 1
			nr := n - nl
			if nl < b.params.MinSamplesLeaf || nr < b.params.MinSamplesLeaf {
				continue
			}
			cur, next := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
			if cur == next {
				continue
			}

			score := b.criterion.weightedImpurity(float64(nl), leftSum, leftSq) +
				b.criterion.weightedImpurity(float64(nr), sum-leftSum, sumSq-leftSq)
			if score < best.score-1e-12 {
				threshold := cur + (next-cur)/2
				if threshold == next {
					threshold = cur
				}
				best = split{feature: f, threshold: threshold, score: score}
				found = true
			}
		}
	}

	return best, found
}

// partition reorders idx so that elements satisfying keep come first and
// returns how many there are.
func partition(idx []int, keep func(int) bool) int {
	k := 0
	for i := range idx {
		if keep(idx[i]) {
			idx[k], idx[i] = idx[i], idx[k]
			k++
		}
	}
	return k
}
