package geometry

import (
	"strings"

	"github.com/paulmach/orb"

	"github.com/goliatone/go-mapform/pkg/options"
)

// Kind is the declared geometry type of a field, using the upper case names
// spatial databases report.
type Kind string

const (
	KindPoint              Kind = "POINT"
	KindLineString         Kind = "LINESTRING"
	KindPolygon            Kind = "POLYGON"
	KindMultiPoint         Kind = "MULTIPOINT"
	KindMultiLineString    Kind = "MULTILINESTRING"
	KindMultiPolygon       Kind = "MULTIPOLYGON"
	KindGeometryCollection Kind = "GEOMETRYCOLLECTION"
	KindGeometry           Kind = "GEOMETRY"
)

// ParseKind maps loose spellings ("point", "line", "multi_polygon",
// "collection", "any") onto a Kind. Unknown input falls back to KindGeometry.
func ParseKind(raw string) Kind {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("_", "", "-", "", " ", "").Replace(normalized)
	switch normalized {
	case "POINT":
		return KindPoint
	case "LINE", "LINESTRING":
		return KindLineString
	case "POLYGON":
		return KindPolygon
	case "MULTIPOINT":
		return KindMultiPoint
	case "MULTILINE", "MULTILINESTRING":
		return KindMultiLineString
	case "MULTIPOLYGON":
		return KindMultiPolygon
	case "COLLECTION", "GEOMETRYCOLLECTION":
		return KindGeometryCollection
	default:
		return KindGeometry
	}
}

// IsCollection reports whether the kind holds several members.
func (k Kind) IsCollection() bool {
	switch k {
	case KindMultiPoint, KindMultiLineString, KindMultiPolygon, KindGeometryCollection, KindGeometry:
		return true
	default:
		return false
	}
}

// Drawable returns the drawing tool names the editable layer should offer:
// a single string for homogeneous kinds, all tools otherwise.
func (k Kind) Drawable() any {
	switch k {
	case KindPoint, KindMultiPoint:
		return "point"
	case KindLineString, KindMultiLineString:
		return "linestring"
	case KindPolygon, KindMultiPolygon:
		return "polygon"
	default:
		return []string{"polygon", "point", "linestring"}
	}
}

// LayerDefaults returns the editable layer options derived from the kind.
func (k Kind) LayerDefaults() options.Map {
	return options.Map{
		"geometry":      k.Drawable(),
		"is_collection": k.IsCollection(),
	}
}

// Accepts reports whether g may be stored in a field of this kind.
func (k Kind) Accepts(g orb.Geometry) bool {
	if g == nil {
		return false
	}
	switch k {
	case KindGeometry, "":
		return true
	case KindPoint:
		_, ok := g.(orb.Point)
		return ok
	case KindLineString:
		_, ok := g.(orb.LineString)
		return ok
	case KindPolygon:
		switch g.(type) {
		case orb.Polygon, orb.Ring:
			return true
		}
		return false
	case KindMultiPoint:
		_, ok := g.(orb.MultiPoint)
		return ok
	case KindMultiLineString:
		_, ok := g.(orb.MultiLineString)
		return ok
	case KindMultiPolygon:
		_, ok := g.(orb.MultiPolygon)
		return ok
	case KindGeometryCollection:
		_, ok := g.(orb.Collection)
		return ok
	default:
		return false
	}
}

// KindOf reports the Kind of a decoded geometry.
func KindOf(g orb.Geometry) Kind {
	switch g.(type) {
	case orb.Point:
		return KindPoint
	case orb.LineString:
		return KindLineString
	case orb.Polygon, orb.Ring:
		return KindPolygon
	case orb.MultiPoint:
		return KindMultiPoint
	case orb.MultiLineString:
		return KindMultiLineString
	case orb.MultiPolygon:
		return KindMultiPolygon
	case orb.Collection:
		return KindGeometryCollection
	default:
		return KindGeometry
	}
}
