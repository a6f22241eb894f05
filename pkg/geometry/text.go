package geometry

import (
	"github.com/paulmach/orb"
)

// ToText returns value as EWKT. When srid is supplied the geometry is
// reprojected into it and untagged text is assumed to already be in it;
// otherwise the value keeps its own reference (DefaultSRID when it carries
// none). Empty values return "".
func ToText(value any, srid ...int) (string, error) {
	g, err := resolve(value, srid...)
	if err != nil {
		return "", err
	}
	return g.EWKT(), nil
}

// ToCollectionText serialises several geometries as one EWKT value in srid.
// Without srid the first member's own reference is used. No members yields
// "", a single member yields that member's own EWKT and several members are
// wrapped in a GEOMETRYCOLLECTION tagged once. Empty members are skipped.
func ToCollectionText(values []any, srid ...int) (string, error) {
	collected, err := Collect(values, srid...)
	if err != nil {
		return "", err
	}
	members := collected.Geom.(orb.Collection)
	switch len(members) {
	case 0:
		return "", nil
	case 1:
		return New(members[0], collected.SRID).EWKT(), nil
	}
	return collected.EWKT(), nil
}

// Collect decodes and reprojects values into a single collection geometry in
// srid, or in the first member's reference when srid is omitted. Untagged
// text is assumed to be in srid, DefaultSRID when omitted. Empty members are
// skipped.
func Collect(values []any, srid ...int) (Geometry, error) {
	target, assumed := 0, DefaultSRID
	if len(srid) > 0 && srid[0] > 0 {
		target, assumed = srid[0], srid[0]
	}
	collection := make(orb.Collection, 0, len(values))
	for _, value := range values {
		g, err := Decode(value, assumed)
		if err != nil {
			return Geometry{}, err
		}
		if g.IsEmpty() {
			continue
		}
		if target == 0 {
			target = g.SRID
		}
		if g, err = g.Transform(target); err != nil {
			return Geometry{}, err
		}
		collection = append(collection, g.Geom)
	}
	if target == 0 {
		target = DefaultSRID
	}
	return Geometry{Geom: collection, SRID: target}, nil
}

func resolve(value any, srid ...int) (Geometry, error) {
	if len(srid) == 0 || srid[0] <= 0 {
		return Decode(value, DefaultSRID)
	}
	target := srid[0]
	g, err := Decode(value, target)
	if err != nil {
		return Geometry{}, err
	}
	return g.Transform(target)
}
