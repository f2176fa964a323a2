// Package testutil provides shared helpers for warforge tests: an in-memory
// filesystem and small builders for laying out source trees with controlled
// modification times.
package testutil
