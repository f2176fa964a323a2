// Package overlay unpacks nested web archives into the work area and merges
// their content into the assembled output. Files the owning project provides
// in its own source tree are never replaced by overlay content.
package overlay
