// Package fileset selects files and directories under a base directory using
// include and exclude glob patterns.
//
// Patterns use double-star semantics: `**` matches any number of path
// segments and `*` matches within one segment. A pattern ending in `/`
// matches everything below that directory. An empty include list means
// "everything". A fixed set of version-control and OS metadata patterns is
// always added to the excludes.
package fileset
