// Package utils provides small generic helpers shared by the merge engine and
// the feature packages. The coalesce helpers implement the field-level rule
// used when folding a delta into a model: a present candidate value wins, an
// absent one leaves the previous value untouched.
package utils
