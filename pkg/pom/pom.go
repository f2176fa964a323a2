// Package pom reads a Maven project descriptor: the project coordinates and
// its directly declared dependencies, located in a local repository.
// Dependencies are not resolved transitively.
package pom

import (
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/vifraa/gopom"
	"golang.org/x/net/html/charset"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/resource"
	"github.com/arthur-debert/warforge/pkg/types"
)

// Model is a decoded pom.xml.
type Model struct {
	pom       gopom.Project
	finalName string
	buildDir  string
	baseDir   string
}

// Decode parses pom content. Documents declaring a non UTF-8 encoding are
// transcoded.
func Decode(content []byte) (*Model, error) {
	m := &Model{}

	decoder := xml.NewDecoder(bytes.NewReader(content))
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&m.pom); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unable to decode pom.xml")
	}

	// the build section is read on its own
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return charset.NewReaderLabel(label, input)
	}
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unable to read pom.xml build section")
	}
	if el := doc.FindElement("./project/build/finalName"); el != nil {
		m.finalName = strings.TrimSpace(el.Text())
	}
	if el := doc.FindElement("./project/build/directory"); el != nil {
		m.buildDir = strings.TrimSpace(el.Text())
	}
	return m, nil
}

// Load reads and decodes the pom at path. The project base directory is
// the directory holding it.
func Load(fs types.FS, path string) (*Model, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", path).
			WithDetail("path", path)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, err
	}
	m.baseDir = filepath.Dir(path)
	return m, nil
}

// GroupID falls back to the parent's group.
func (m *Model) GroupID() string {
	if m.pom.GroupID != "" {
		return m.pom.GroupID
	}
	return m.pom.Parent.GroupID
}

// Version falls back to the parent's version.
func (m *Model) Version() string {
	if m.pom.Version != "" {
		return m.pom.Version
	}
	return m.pom.Parent.Version
}

// Packaging defaults to jar.
func (m *Model) Packaging() string {
	if m.pom.Packaging != "" {
		return m.pom.Packaging
	}
	return "jar"
}

// Properties returns the declared properties.
func (m *Model) Properties() map[string]string {
	out := make(map[string]string, len(m.pom.Properties.Entries))
	for k, v := range m.pom.Properties.Entries {
		out[k] = v
	}
	return out
}

// interpolate expands ${...} references against the declared properties and
// the project coordinates. Nested references are followed a few levels.
func (m *Model) interpolate(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	props := resource.NewPropertyMap().
		Push("pom", m.Properties()).
		Push("model", map[string]string{
			"project.groupId":    m.GroupID(),
			"project.artifactId": m.pom.ArtifactID,
			"project.version":    m.Version(),
			"pom.groupId":        m.GroupID(),
			"pom.version":        m.Version(),
			"project.basedir":    m.baseDir,
			"basedir":            m.baseDir,
		})
	pass := resource.TokenPass("${", "}", props)
	for i := 0; i < 5; i++ {
		next := pass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// Project maps the model onto the assembly project description.
func (m *Model) Project() types.Project {
	p := types.Project{
		GroupID:    m.interpolate(m.GroupID()),
		ArtifactID: m.pom.ArtifactID,
		Version:    m.interpolate(m.Version()),
		Packaging:  m.Packaging(),
		FinalName:  m.interpolate(m.finalName),
		BaseDir:    m.baseDir,
		Properties: m.Properties(),
	}
	if m.buildDir != "" {
		p.BuildDir = m.interpolate(m.buildDir)
	}
	return p
}

// Dependencies returns the directly declared dependencies with property
// references expanded. File is left empty; see Repository.Locate.
func (m *Model) Dependencies() []types.Artifact {
	out := make([]types.Artifact, 0, len(m.pom.Dependencies))
	for _, d := range m.pom.Dependencies {
		typ := m.interpolate(d.Type)
		if typ == "" {
			typ = "jar"
		}
		out = append(out, types.Artifact{
			GroupID:    m.interpolate(d.GroupID),
			ArtifactID: m.interpolate(d.ArtifactID),
			Version:    m.interpolate(d.Version),
			Classifier: m.interpolate(d.Classifier),
			Type:       typ,
			Scope:      types.Scope(m.interpolate(d.Scope)).Normalize(),
			Optional:   strings.EqualFold(strings.TrimSpace(d.Optional), "true"),
		})
	}
	return out
}
