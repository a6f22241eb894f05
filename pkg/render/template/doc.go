// Package template defines the template rendering seam used by the map and
// layer widgets. The default implementation lives in the gotemplate
// subpackage and is backed by pongo2; callers can inject any engine that
// satisfies TemplateRenderer.
package template
