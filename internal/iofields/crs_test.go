package iofields

import (
	"testing"

	"github.com/ctessum/geom"
	"github.com/gnames/gnplet/pkg/num"
	"github.com/stretchr/testify/assert"
)

func TestNameKind(t *testing.T) {
	tests := []struct {
		name string
		kind crsKind
	}{
		{"urn:ogc:def:crs:OGC:1.3:CRS84", crsGeographic},
		{"urn:ogc:def:crs:EPSG::4326", crsGeographic},
		{"urn:ogc:def:crs:EPSG:6.6:4269", crsGeographic},
		{"EPSG:4326", crsGeographic},
		{"epsg:5070", crsProjected},
		{"urn:ogc:def:crs:EPSG::26915", crsProjected},
		{"+proj=longlat +datum=WGS84 +no_defs", crsGeographic},
		{"+proj=utm +zone=15 +datum=NAD83 +units=m +no_defs", crsProjected},
		{"", crsUnknown},
		{"somewhere", crsUnknown},
	}

	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			assert.Equal(t, v.kind, nameKind(v.name))
		})
	}
}

func TestResolveCRS(t *testing.T) {
	small := polygonFootprint(geom.Polygon{{
		{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 1}, {X: 1, Y: 1},
	}})
	big := polygonFootprint(geom.Polygon{{
		{X: 500_000, Y: 4_600_000}, {X: 500_000, Y: 4_601_000},
		{X: 501_000, Y: 4_601_000}, {X: 501_000, Y: 4_600_000},
		{X: 500_000, Y: 4_600_000},
	}})
	none := footprint{area: num.Undef()}

	assert.Equal(t, crsGeographic, resolveCRS(crsUnknown, []footprint{small}))
	assert.Equal(t, crsProjected, resolveCRS(crsUnknown, []footprint{small, big}))
	assert.Equal(t, crsProjected, resolveCRS(crsUnknown, []footprint{none}))
	assert.Equal(t, crsProjected, resolveCRS(crsProjected, []footprint{small}))

	res := areas(crsGeographic, []footprint{small, none})
	assert.False(t, res[0].area.IsDefined())
	assert.Equal(t, noteGeographic, res[0].note)
	assert.Empty(t, res[1].note)
	assert.Equal(t, 1.0, small.area.Or(0))
}
