// Package registry holds the name to function table used by Call effects.
package registry
