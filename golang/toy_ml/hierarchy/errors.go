package hierarchy

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for unknown linkage or metric values, a cut
	// size outside [1, N], an unknown render format or non-finite coordinates.
	ErrConfiguration = errors.New("hierarchy: invalid configuration")

	// ErrCorruptDendrogram is returned when a dendrogram refers to nodes it does not define.
	ErrCorruptDendrogram = errors.New("hierarchy: corrupt dendrogram")
)

const (
	opCluster = "Cluster"
	opCut     = "Cut"
	opDraw    = "DrawGraph"
	opRender  = "Render"
)

func hierarchyErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
