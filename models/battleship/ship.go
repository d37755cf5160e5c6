package battleship

const (
	OrientationHorizontal uint8 = iota
	OrientationVertical
)

// ShipClass is a static catalog entry. The catalog is fixed for the
// process lifetime; placement walks it in order.
type ShipClass struct {
	Name   string
	Length uint8
	Count  uint8
}

func NewShipClassCatalog() []ShipClass {
	return []ShipClass{
		{Name: "carrier", Length: 5, Count: 1},
		{Name: "battleship", Length: 4, Count: 1},
		{Name: "cruiser", Length: 3, Count: 2},
		{Name: "destroyer", Length: 2, Count: 1},
	}
}

// TotalShipsInCatalog is the number of ships a complete fleet holds.
func TotalShipsInCatalog(catalog []ShipClass) int {
	var total int
	for _, class := range catalog {
		total += int(class.Count)
	}
	return total
}

type Ship struct {
	class       ShipClass
	head        Coordinates
	orientation uint8
}

func NewShip(class ShipClass, head Coordinates, orientation uint8) Ship {
	return Ship{
		class:       class,
		head:        head,
		orientation: orientation,
	}
}

func (sh Ship) Class() ShipClass {
	return sh.class
}

func (sh Ship) Head() Coordinates {
	return sh.head
}

func (sh Ship) Orientation() uint8 {
	return sh.orientation
}

// cellOffsets returns the occupied cells in int space so that an
// out-of-bounds candidate near the top of uint8 cannot wrap back
// into the grid.
func (sh Ship) cellOffsets() [][2]int {
	cells := make([][2]int, 0, sh.class.Length)
	for i := 0; i < int(sh.class.Length); i++ {
		x, y := int(sh.head.X), int(sh.head.Y)
		if sh.orientation == OrientationHorizontal {
			x += i
		} else {
			y += i
		}
		cells = append(cells, [2]int{x, y})
	}
	return cells
}

// Cells returns the occupied cell sequence of a valid ship, head first.
func (sh Ship) Cells() []Coordinates {
	offsets := sh.cellOffsets()
	cells := make([]Coordinates, 0, len(offsets))
	for _, cell := range offsets {
		cells = append(cells, NewCoordinates(uint8(cell[0]), uint8(cell[1])))
	}
	return cells
}
