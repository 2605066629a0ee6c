package classifier

import (
	"errors"
	"fmt"
)

const leafChild = -1

// Tree is one fitted decision tree in the parallel-array layout of a
// scikit-learn tree_ export. Node 0 is the root; a node is a leaf when
// its left child is -1.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

func (t *Tree) nodeCount() int {
	return len(t.ChildrenLeft)
}

func (t *Tree) validate(featureCount, classCount int) error {
	n := t.nodeCount()
	if n == 0 {
		return errors.New("tree has no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return errors.New("tree arrays have different lengths")
	}
	for i := 0; i < n; i++ {
		if len(t.Value[i]) != classCount {
			return fmt.Errorf("node %d has %d class values, want %d", i, len(t.Value[i]), classCount)
		}
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == leafChild {
			if right != leafChild {
				return fmt.Errorf("node %d has only one child", i)
			}
			continue
		}
		// Children always come after their parent, which also rules out cycles.
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("node %d has invalid children %d/%d", i, left, right)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= featureCount {
			return fmt.Errorf("node %d splits on feature %d, model has %d", i, t.Feature[i], featureCount)
		}
	}
	return nil
}

// leafDistribution walks to the leaf for features and returns its class
// distribution normalised to sum to 1.
func (t *Tree) leafDistribution(features []float64) []float64 {
	idx := 0
	for t.ChildrenLeft[idx] != leafChild {
		if features[t.Feature[idx]] <= t.Threshold[idx] {
			idx = t.ChildrenLeft[idx]
		} else {
			idx = t.ChildrenRight[idx]
		}
	}

	counts := t.Value[idx]
	total := 0.0
	for _, c := range counts {
		total += c
	}
	dist := make([]float64, len(counts))
	if total == 0 {
		return dist
	}
	for i, c := range counts {
		dist[i] = c / total
	}
	return dist
}
