// Package archive packs and unpacks the archive formats a web application
// meets: the zip family (jar, war, ear, par, configuration) and tar, plain or
// gzip compressed. Codecs are looked up by file extension through a Registry.
package archive
