// Package render holds the form level helpers shared by form renderers:
// hidden submission inputs, mapping of server side error payloads onto form
// rows, and label translation.
package render
