package wheel

import (
	"math"
	"sort"

	"wheelspin/internal/entry"
)

const fullTurn = 2 * math.Pi

// Sector is the half-open angular range [Start, End) an entry occupies.
type Sector struct {
	Start float64
	End   float64
}

// Center returns the middle of the sector.
func (s Sector) Center() float64 {
	return (s.Start + s.End) / 2
}

// Width returns the sector's angular width.
func (s Sector) Width() float64 {
	return s.End - s.Start
}

// Sectors lays the entries out around the wheel in order, each sized by its
// weight. The last sector always ends exactly at 2π.
func Sectors(entries []*entry.Entry) []Sector {
	if len(entries) == 0 {
		return nil
	}

	var total float64
	for _, e := range entries {
		total += e.SectorWeight()
	}

	sectors := make([]Sector, len(entries))
	var cum, start float64
	for i, e := range entries {
		cum += e.SectorWeight()
		end := fullTurn * cum / total
		if i == len(entries)-1 {
			end = fullTurn
		}
		sectors[i] = Sector{Start: start, End: end}
		start = end
	}
	return sectors
}

// IndexAtPointer returns the index of the entry whose sector contains angle.
// The pointer sits at angle 0, so a wheel rotated by angle shows the sector
// containing angle under it. Sector boundaries belong to the next sector.
// Returns -1 for an empty list.
func IndexAtPointer(entries []*entry.Entry, angle float64) int {
	sectors := Sectors(entries)
	if len(sectors) == 0 {
		return -1
	}

	a := normalizeAngle(angle)
	i := sort.Search(len(sectors), func(i int) bool {
		return a < sectors[i].End
	})
	if i == len(sectors) {
		i--
	}
	return i
}

// normalizeAngle maps any angle into [0, 2π).
func normalizeAngle(a float64) float64 {
	if a >= 0 && a < fullTurn {
		return a
	}
	a = math.Mod(a, fullTurn)
	if a < 0 {
		a += fullTurn
	}
	if a >= fullTurn {
		a = 0
	}
	return a
}
