package hierarchy

import (
	"encoding/json"
	"fmt"
	"os"
)

//Merge records one agglomeration step. Left and Right are node ids: ids below
//N are input points, the others refer to earlier merges.
type Merge struct {
	Left   int     `json:"left"`
	Right  int     `json:"right"`
	ID     int     `json:"id"`
	Height float64 `json:"height"`
	Size   int     `json:"size"`
}

//Dendrogram is the full merge history of N points, N-1 merges for N > 0.
type Dendrogram struct {
	N       int     `json:"n"`
	Linkage Linkage `json:"linkage"`
	Metric  Metric  `json:"metric"`
	Merges  []Merge `json:"merges"`
}

//Root returns the id of the top node, or -1 for an empty dendrogram.
func (d Dendrogram) Root() int {
	if len(d.Merges) > 0 {
		return d.Merges[len(d.Merges)-1].ID
	}
	return d.N - 1
}

//Heights lists merge heights in merge order.
func (d Dendrogram) Heights() []float64 {
	heights := make([]float64, len(d.Merges))
	for ind, merge := range d.Merges {
		heights[ind] = merge.Height
	}
	return heights
}

func (d Dendrogram) validate() error {
	if len(d.Merges) != max(d.N-1, 0) {
		return fmt.Errorf("%d merges for %d points: %w", len(d.Merges), d.N, ErrCorruptDendrogram)
	}
	for ind, merge := range d.Merges {
		if merge.ID != d.N+ind || merge.Left < 0 || merge.Right < 0 || merge.Left >= merge.ID || merge.Right >= merge.ID {
			return fmt.Errorf("merge %d: %w", ind, ErrCorruptDendrogram)
		}
	}
	return nil
}

//Cut undoes the last k-1 merges and returns a cluster label per point.
//Labels are numbered from 0 in order of first appearance by point index.
func (d Dendrogram) Cut(k int) ([]int, error) {
	if k < 1 || k > d.N {
		return nil, hierarchyErrorf(opCut, fmt.Errorf("k = %d for %d points: %w", k, d.N, ErrConfiguration))
	}
	if err := d.validate(); err != nil {
		return nil, hierarchyErrorf(opCut, err)
	}

	owner := make([]int, d.N+len(d.Merges))
	for ind := range owner {
		owner[ind] = ind
	}
	for _, merge := range d.Merges[:d.N-k] {
		owner[merge.Left] = merge.ID
		owner[merge.Right] = merge.ID
	}

	top := func(node int) int {
		for owner[node] != node {
			node = owner[node]
		}
		return node
	}

	labels := make([]int, d.N)
	labelOf := make(map[int]int, k)
	for point := range labels {
		node := top(point)
		label, ok := labelOf[node]
		if !ok {
			label = len(labelOf)
			labelOf[node] = label
		}
		labels[point] = label
	}
	return labels, nil
}

//Save writes the dendrogram as indented JSON.
func (d Dendrogram) Save(filename string) error {
	repr, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, repr, 0o644)
}

//LoadDendrogram reads a dendrogram written by Save.
func LoadDendrogram(filename string) (d Dendrogram, err error) {
	repr, err := os.ReadFile(filename)
	if err != nil {
		return Dendrogram{}, err
	}
	if err = json.Unmarshal(repr, &d); err != nil {
		return Dendrogram{}, err
	}
	if err = d.validate(); err != nil {
		return Dendrogram{}, err
	}
	return d, nil
}
