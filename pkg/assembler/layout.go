package assembler

import (
	"path"
	"path/filepath"
)

// Well known names inside a web application.
const (
	WebInfDir      = "WEB-INF"
	MetaInfDir     = "META-INF"
	DescriptorName = "web.xml"
)

// Paths relative to the output root, slash separated.
var (
	RelLibDir     = path.Join(WebInfDir, "lib")
	RelTldDir     = path.Join(WebInfDir, "tld")
	RelClassesDir = path.Join(WebInfDir, "classes")
)

// Layout resolves the well known paths of an output root.
type Layout struct {
	Root string
}

func (l Layout) join(rel string) string {
	return filepath.Join(l.Root, filepath.FromSlash(rel))
}

// WebInf returns the descriptor directory.
func (l Layout) WebInf() string { return l.join(WebInfDir) }

// MetaInf returns the metadata directory.
func (l Layout) MetaInf() string { return l.join(MetaInfDir) }

// Lib returns the library directory.
func (l Layout) Lib() string { return l.join(RelLibDir) }

// Classes returns the compiled classes directory.
func (l Layout) Classes() string { return l.join(RelClassesDir) }

// Descriptor returns the canonical web descriptor path.
func (l Layout) Descriptor() string { return filepath.Join(l.WebInf(), DescriptorName) }

// Path returns rel, a slash separated path, under the root.
func (l Layout) Path(rel string) string { return l.join(rel) }
