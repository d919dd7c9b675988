package domain

import (
	"encoding/json"
	"fmt"
	"os"
)

// Location is an immutable surf spot loaded once at process start.
// Coords follows the GeoJSON convention: [longitude, latitude].
type Location struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Region string     `json:"region"`
	Coords [2]float64 `json:"coords"`
}

// Lng returns the spot's longitude.
func (l Location) Lng() float64 { return l.Coords[0] }

// Lat returns the spot's latitude.
func (l Location) Lat() float64 { return l.Coords[1] }

// DefaultSpots is the built-in spot list, used when no spot file is
// configured. It mirrors the list served to the frontend today; spot data is
// expected to move into the document store eventually.
var DefaultSpots = []Location{
	{ID: "1", Name: "Arugam Bay", Region: "East Coast", Coords: [2]float64{81.829, 6.843}},
	{ID: "2", Name: "Weligama", Region: "South Coast", Coords: [2]float64{80.426, 5.972}},
	{ID: "3", Name: "Midigama", Region: "South Coast", Coords: [2]float64{80.383, 5.961}},
	{ID: "4", Name: "Hiriketiya", Region: "South Coast", Coords: [2]float64{80.686, 5.976}},
	{ID: "5", Name: "Okanda", Region: "East Coast", Coords: [2]float64{81.657, 6.660}},
}

// LoadSpots reads a JSON spot list from path. An empty path returns
// DefaultSpots.
func LoadSpots(path string) ([]Location, error) {
	if path == "" {
		return DefaultSpots, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spot file: %w", err)
	}

	var spots []Location
	if err := json.Unmarshal(data, &spots); err != nil {
		return nil, fmt.Errorf("parse spot file %s: %w", path, err)
	}
	if len(spots) == 0 {
		return nil, fmt.Errorf("spot file %s contains no spots", path)
	}

	for i, s := range spots {
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("spot file %s: entry %d is missing id or name", path, i)
		}
	}
	return spots, nil
}
