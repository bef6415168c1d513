// Package util holds small generic helpers shared across the library.
package util
