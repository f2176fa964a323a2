// Package types holds the data model shared by the assembly packages:
// resolved artifacts and their scopes, declared resource sets, the project
// descriptor, and the filesystem interface every component writes through.
//
// Values in this package are read-only once handed to the assembler. The
// assembler never mutates an Artifact or a ResourceSet; it only reads them
// to decide what to place where.
package types
