// Package forms ties regrouped fields to the form lifecycle: initial data is
// fanned out into composite values, submissions are bound and cleaned field
// by field, and cleaned data is fanned back in so callers only ever see the
// original field names.
package forms
