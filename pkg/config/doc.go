// Package config loads map form configuration documents written in JSON or
// YAML. A document declares global map options, provider media settings and
// named forms, each with its fields, map groups and changelist map.
package config
