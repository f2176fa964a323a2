package dependency

import "strings"

// Kind is how an artifact is treated during assembly.
type Kind int

const (
	// Unsupported artifacts are skipped.
	Unsupported Kind = iota
	// Library artifacts are copied into the library directory.
	Library
	// TldDescriptor artifacts are copied into the tag library directory.
	TldDescriptor
	// PackedModule artifacts are copied into the library directory as .jar.
	PackedModule
	// NestedOverlay artifacts are unpacked and merged into the output root.
	NestedOverlay
)

var kindNames = map[Kind]string{
	Unsupported:   "unsupported",
	Library:       "library",
	TldDescriptor: "tld",
	PackedModule:  "packed-module",
	NestedOverlay: "overlay",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the kind by name in reports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf maps an artifact type to its kind. An empty type is a jar.
func KindOf(artifactType string) Kind {
	switch strings.ToLower(artifactType) {
	case "", "jar", "ejb", "ejb-client":
		return Library
	case "tld":
		return TldDescriptor
	case "par":
		return PackedModule
	case "war":
		return NestedOverlay
	default:
		return Unsupported
	}
}

// Placed reports whether artifacts of this kind are copied directly.
func (k Kind) Placed() bool {
	return k == Library || k == TldDescriptor || k == PackedModule
}
