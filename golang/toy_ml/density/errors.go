package density

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned before any work starts for a negative or NaN
	// epsilon, minPts < 1, an unknown index kind or non-finite coordinates.
	ErrConfiguration = errors.New("density: invalid configuration")

	// ErrOutOfRange is returned by RegionQuery for a point index outside the input.
	ErrOutOfRange = errors.New("density: index out of range")
)

const (
	opDBSCAN      = "DBSCAN"
	opRegionQuery = "RegionQuery"
)

func densityErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
