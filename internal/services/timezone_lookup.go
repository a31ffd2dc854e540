package services

import (
	"github.com/ringsaturn/tzf"
)

type TimezoneLookupInterface interface {
	// TimezoneAt returns the IANA zone name, or "" when the point is not covered.
	TimezoneAt(lat, lng float64) string
}

type tzfLookup struct {
	finder tzf.F
}

// NewTimezoneLookup loads the embedded timezone polygons. It is slow, so build it once.
func NewTimezoneLookup() (TimezoneLookupInterface, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, err
	}
	return &tzfLookup{finder: finder}, nil
}

func (l *tzfLookup) TimezoneAt(lat, lng float64) string {
	return l.finder.GetTimezoneName(lng, lat)
}
