package model

import "fmt"

// Tree is one regression tree stored as a flat node array. Node 0 is the
// root. Internal nodes route on features[Feature] <= Threshold (left) or
// > Threshold (right); leaves carry the predicted value.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is a single tree node. Leaf nodes set Leaf and Value; internal nodes
// set Feature, Threshold, Left, and Right.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value"`
}

// validate checks every node's indices so evaluate cannot walk out of
// bounds. Child links must point forward, which also rules out cycles.
func (t *Tree) validate(featureCount int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("no nodes")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= featureCount {
			return fmt.Errorf("node %d: feature index %d out of range [0,%d)", i, n.Feature, featureCount)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) {
			return fmt.Errorf("node %d: left child %d is not a forward reference", i, n.Left)
		}
		if n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: right child %d is not a forward reference", i, n.Right)
		}
	}
	return nil
}

// evaluate walks the tree for one feature vector. Index checks are repeated
// defensively so a tree constructed without validate still cannot panic.
func (t *Tree) evaluate(features []float64) (float64, error) {
	idx := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("node index %d out of range", idx)
		}
		n := t.Nodes[idx]
		if n.Leaf {
			return n.Value, nil
		}
		if n.Feature < 0 || n.Feature >= len(features) {
			return 0, fmt.Errorf("node %d: feature index %d out of range", idx, n.Feature)
		}
		if features[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return 0, fmt.Errorf("no leaf reached after %d steps", len(t.Nodes))
}
