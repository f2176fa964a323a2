// Package packaging turns directories into distributable files: the web
// archive of an assembled application, a configuration bundle, and a copy of
// a JavaScript tree with cache-busting query strings on module imports.
package packaging
