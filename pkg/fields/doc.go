// Package fields defines the form field contract the map regrouping engine
// works against, an ordered field set, and the built-in text and geometry
// fields. The engine only relies on Required, Widget and Clean; geometry
// fields additionally report their declared GeometryKind.
package fields
