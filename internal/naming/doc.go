// Package naming splits file names into stem and extension and checks rename
// plans for destinations that would collide.
package naming
