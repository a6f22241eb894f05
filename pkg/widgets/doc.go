// Package widgets renders geometry fields as interactive maps.
//
// A Map is a container for one or more layers. Each layer prepares a pair of
// outputs: the script fragment constructing the client side layer and the
// HTML it binds to (a textarea for editable layers, nothing for info layers).
// The Map wraps every layer with the translated map options and renders the
// result through a template. Widgets hold plain values; options are cloned on
// construction and on every render so no two forms share a mutable mapping.
package widgets
