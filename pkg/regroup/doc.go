// Package regroup collapses groups of declared form fields into composite
// multi layer map fields and keeps the bookkeeping needed to move initial
// and cleaned data between the original field names and the composite
// names.
//
// Regroup never mutates its input set. ApplyInitial and ApplyCleaned are
// explicit hooks the host form calls at the matching lifecycle points.
package regroup
