// Package options holds the configuration mappings handed to map and layer
// widgets. Options are authored with underscore separated keys
// (overlay_style, default_lon) and translated to the lower camelCase keys the
// client side mapping library consumes (overlayStyle, defaultLon) right before
// they are JSON encoded. Merging is deep and always returns fresh maps so a
// merged result never aliases a shared default.
package options
