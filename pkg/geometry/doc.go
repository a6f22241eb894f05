// Package geometry converts geometry values to and from the SRID tagged text
// ("SRID=4326;POINT(0 0)") exchanged with the client side map widgets.
//
// Values may arrive as bare WKT, EWKT, hex encoded EWKB (as returned by
// PostGIS) or as already decoded orb geometries. Output is always EWKT in the
// requested SRID; geometries are reprojected between WGS84 (4326) and
// spherical mercator (3857 and its 900913 alias) when the source and target
// references differ.
package geometry
