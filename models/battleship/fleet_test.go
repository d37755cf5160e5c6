package battleship

import "testing"

func classOfLength(t *testing.T, length uint8) ShipClass {
	t.Helper()
	for _, class := range NewShipClassCatalog() {
		if class.Length == length {
			return class
		}
	}
	t.Fatalf("no ship class of length %d in catalog", length)
	return ShipClass{}
}

func TestPlaceShip(t *testing.T) {
	tests := []struct {
		name        string
		length      uint8
		head        Coordinates
		orientation uint8
		expectErr   bool
	}{
		{
			name:        "length five at origin horizontal fills the row",
			length:      5,
			head:        NewCoordinates(0, 0),
			orientation: OrientationHorizontal,
			expectErr:   false,
		},
		{
			name:        "length five shifted one right runs off grid",
			length:      5,
			head:        NewCoordinates(1, 0),
			orientation: OrientationHorizontal,
			expectErr:   true,
		},
		{
			name:        "length four vertical at bottom edge",
			length:      4,
			head:        NewCoordinates(4, 1),
			orientation: OrientationVertical,
			expectErr:   false,
		},
		{
			name:        "length four vertical too low",
			length:      4,
			head:        NewCoordinates(4, 2),
			orientation: OrientationVertical,
			expectErr:   true,
		},
		{
			name:        "head already out of grid",
			length:      2,
			head:        NewCoordinates(5, 0),
			orientation: OrientationHorizontal,
			expectErr:   true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fleet := NewFleet()
			ship := NewShip(classOfLength(t, test.length), test.head, test.orientation)

			err := fleet.PlaceShip(ship)
			if test.expectErr && err == nil {
				t.Fatalf("expected placement rejection, got none")
			}
			if !test.expectErr && err != nil {
				t.Fatalf("unexpected placement rejection: %v", err)
			}

			expectedSize := 1
			if test.expectErr {
				expectedSize = 0
			}
			if fleet.Size() != expectedSize {
				t.Fatalf("expected fleet size: %d\tgot: %d", expectedSize, fleet.Size())
			}
		})
	}
}

func TestPlaceShipRejectsOverlap(t *testing.T) {
	fleet := NewFleet()

	first := NewShip(classOfLength(t, 3), NewCoordinates(1, 1), OrientationHorizontal)
	if err := fleet.PlaceShip(first); err != nil {
		t.Fatal(err)
	}

	// Crosses (2,1), which the first ship occupies.
	second := NewShip(classOfLength(t, 2), NewCoordinates(2, 0), OrientationVertical)
	if err := fleet.PlaceShip(second); err == nil {
		t.Fatal("expected overlap rejection, got none")
	}

	if fleet.Size() != 1 {
		t.Fatalf("expected fleet size: 1\tgot: %d", fleet.Size())
	}
}

func TestIsHit(t *testing.T) {
	fleet := NewFleet()
	ship := NewShip(classOfLength(t, 2), NewCoordinates(0, 0), OrientationHorizontal)
	if err := fleet.PlaceShip(ship); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		coords   Coordinates
		expected bool
	}{
		{name: "head cell", coords: NewCoordinates(0, 0), expected: true},
		{name: "tail cell", coords: NewCoordinates(1, 0), expected: true},
		{name: "cell past the tail", coords: NewCoordinates(2, 0), expected: false},
		{name: "empty row", coords: NewCoordinates(0, 4), expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := fleet.IsHit(test.coords); got != test.expected {
				t.Fatalf("expected hit: %t\tgot: %t", test.expected, got)
			}
		})
	}
}

func TestShipCells(t *testing.T) {
	ship := NewShip(classOfLength(t, 3), NewCoordinates(2, 1), OrientationVertical)

	expected := []Coordinates{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}
	cells := ship.Cells()
	if len(cells) != len(expected) {
		t.Fatalf("expected %d cells\tgot: %d", len(expected), len(cells))
	}
	for i, cell := range cells {
		if cell != expected[i] {
			t.Fatalf("cell %d\texpected: (%d,%d)\tgot: (%d,%d)", i, expected[i].X, expected[i].Y, cell.X, cell.Y)
		}
	}
}
