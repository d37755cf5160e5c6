package battleship

import (
	cerr "github.com/hamedsk/gridstrike/internal/error"
)

const (
	GridSize uint8 = 5

	GridValidLowerBound uint8 = 0
	GridValidUpperBound uint8 = GridSize - 1
)

type Coordinates struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

func NewCoordinates(x, y uint8) Coordinates {
	return Coordinates{X: x, Y: y}
}

func (c Coordinates) IsWithinGrid() bool {
	return c.X <= GridValidUpperBound && c.Y <= GridValidUpperBound
}

// EncodeCoordinates maps a grid cell to its single wire integer.
// The mapping is a bijection from [0, GridSize-1]^2 onto [0, GridSize^2-1].
// The domain is guaranteed by the caller validating IsWithinGrid first.
func EncodeCoordinates(c Coordinates) int64 {
	return int64(c.X) + int64(GridSize)*int64(c.Y)
}

// DecodeCoordinates is the exact inverse of EncodeCoordinates for values
// in [0, GridSize^2-1]. Values outside that range are rejected, never
// silently wrapped.
func DecodeCoordinates(v int64) (Coordinates, error) {
	if v < 0 || v >= int64(GridSize)*int64(GridSize) {
		return Coordinates{}, cerr.ErrCoordinatesOutOfRange(v)
	}
	return Coordinates{
		X: uint8(v % int64(GridSize)),
		Y: uint8(v / int64(GridSize)),
	}, nil
}
