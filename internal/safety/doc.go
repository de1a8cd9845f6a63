// Package safety checks that a rewrite only inserts lines.
package safety
