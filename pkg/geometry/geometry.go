package geometry

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/ewkb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/project"
)

// DefaultSRID is the spatial reference assumed for untagged input and used
// for output when none is requested.
const DefaultSRID = 4326

// MercatorSRID is the spherical mercator reference used by tile providers.
const MercatorSRID = 3857

var (
	ewktPattern = regexp.MustCompile(`(?is)^\s*SRID=(\d+);(.+)$`)
	hexPattern  = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
)

// Geometry pairs a decoded geometry with its spatial reference.
type Geometry struct {
	Geom orb.Geometry
	SRID int
}

// New tags g with srid. A zero srid means DefaultSRID.
func New(g orb.Geometry, srid int) Geometry {
	if srid <= 0 {
		srid = DefaultSRID
	}
	return Geometry{Geom: g, SRID: srid}
}

// IsEmpty reports whether no geometry is held.
func (g Geometry) IsEmpty() bool {
	return g.Geom == nil
}

// Kind reports the geometry kind.
func (g Geometry) Kind() Kind {
	return KindOf(g.Geom)
}

// WKT returns the untagged well known text.
func (g Geometry) WKT() string {
	if g.Geom == nil {
		return ""
	}
	return wkt.MarshalString(g.Geom)
}

// EWKT returns the SRID tagged text, or "" when empty.
func (g Geometry) EWKT() string {
	return tag(g.WKT(), g.SRID)
}

// String implements fmt.Stringer.
func (g Geometry) String() string {
	return g.EWKT()
}

// Transform returns a copy of g reprojected to srid. The receiver is left
// untouched.
func (g Geometry) Transform(srid int) (Geometry, error) {
	if g.Geom == nil {
		return Geometry{SRID: srid}, nil
	}
	from, to := canonicalSRID(g.SRID), canonicalSRID(srid)
	if from == to {
		return Geometry{Geom: orb.Clone(g.Geom), SRID: srid}, nil
	}

	var projection orb.Projection
	switch {
	case from == DefaultSRID && to == MercatorSRID:
		projection = project.WGS84.ToMercator
	case from == MercatorSRID && to == DefaultSRID:
		projection = project.Mercator.ToWGS84
	default:
		return Geometry{}, newError("transform", g.EWKT(),
			fmt.Errorf("%w: %d -> %d", ErrUnsupportedSRID, g.SRID, srid))
	}

	projected := project.Geometry(orb.Clone(g.Geom), projection)
	if !finite(projected) {
		return Geometry{}, newError("transform", g.EWKT(),
			fmt.Errorf("coordinates out of range for srid %d", srid))
	}
	return Geometry{Geom: projected, SRID: srid}, nil
}

// Parse decodes EWKT, bare WKT or hex EWKB. Untagged input is assumed to be
// in defaultSRID (DefaultSRID when zero). Blank input yields an empty
// Geometry and no error.
func Parse(text string, defaultSRID int) (Geometry, error) {
	if defaultSRID <= 0 {
		defaultSRID = DefaultSRID
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Geometry{SRID: defaultSRID}, nil
	}

	srid := defaultSRID
	body := trimmed
	if match := ewktPattern.FindStringSubmatch(trimmed); match != nil {
		parsed, err := strconv.Atoi(match[1])
		if err != nil {
			return Geometry{}, newError("parse", text, err)
		}
		srid = parsed
		body = strings.TrimSpace(match[2])
	} else if looksLikeHexEWKB(trimmed) {
		return parseEWKB(trimmed, defaultSRID)
	}

	g, err := wkt.Unmarshal(body)
	if err != nil {
		return Geometry{}, newError("parse", text, err)
	}
	return Geometry{Geom: g, SRID: srid}, nil
}

// Decode normalises any supported value into a Geometry. Supported inputs are
// string (EWKT, WKT, hex EWKB), []byte (EWKB), Geometry, *Geometry and any
// orb.Geometry. nil and blank values yield an empty Geometry.
func Decode(value any, defaultSRID int) (Geometry, error) {
	if defaultSRID <= 0 {
		defaultSRID = DefaultSRID
	}
	switch typed := value.(type) {
	case nil:
		return Geometry{SRID: defaultSRID}, nil
	case string:
		return Parse(typed, defaultSRID)
	case []byte:
		if len(typed) == 0 {
			return Geometry{SRID: defaultSRID}, nil
		}
		g, srid, err := ewkb.Unmarshal(typed)
		if err != nil {
			return Geometry{}, newError("decode ewkb", hex.EncodeToString(typed), err)
		}
		if srid <= 0 {
			srid = defaultSRID
		}
		return Geometry{Geom: g, SRID: srid}, nil
	case Geometry:
		return withDefault(typed, defaultSRID), nil
	case *Geometry:
		if typed == nil {
			return Geometry{SRID: defaultSRID}, nil
		}
		return withDefault(*typed, defaultSRID), nil
	case orb.Geometry:
		return New(typed, defaultSRID), nil
	case fmt.Stringer:
		return Parse(typed.String(), defaultSRID)
	default:
		return Geometry{}, newError("decode", fmt.Sprintf("%T", value), errors.New("unsupported geometry value"))
	}
}

func withDefault(g Geometry, srid int) Geometry {
	if g.SRID <= 0 {
		g.SRID = srid
	}
	return g
}

func parseEWKB(text string, defaultSRID int) (Geometry, error) {
	data, err := hex.DecodeString(text)
	if err != nil {
		return Geometry{}, newError("parse ewkb", text, err)
	}
	g, srid, err := ewkb.Unmarshal(data)
	if err != nil {
		return Geometry{}, newError("parse ewkb", text, err)
	}
	if srid <= 0 {
		srid = defaultSRID
	}
	return Geometry{Geom: g, SRID: srid}, nil
}

// A WKB header is at least a byte order flag plus a 4 byte type.
func looksLikeHexEWKB(text string) bool {
	if len(text) < 10 || len(text)%2 != 0 {
		return false
	}
	if !strings.HasPrefix(text, "00") && !strings.HasPrefix(text, "01") {
		return false
	}
	return hexPattern.MatchString(text)
}

func canonicalSRID(srid int) int {
	switch srid {
	case 0:
		return DefaultSRID
	case 900913, 102113, 102100, 3785:
		return MercatorSRID
	default:
		return srid
	}
}

func tag(text string, srid int) string {
	if text == "" {
		return ""
	}
	if srid <= 0 {
		srid = DefaultSRID
	}
	return fmt.Sprintf("SRID=%d;%s", srid, text)
}

func finite(g orb.Geometry) bool {
	if g == nil {
		return true
	}
	bound := g.Bound()
	for _, value := range []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return false
		}
	}
	return true
}
