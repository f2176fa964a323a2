package resource

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/magiconair/properties"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/types"
)

// Lookup resolves a token name to its value.
type Lookup interface {
	Lookup(key string) (string, bool)
}

// PropertyMap is an ordered stack of key/value layers. Later layers shadow
// earlier ones. It is built once per assembly run and never mutated after.
type PropertyMap struct {
	layers []layer
}

type layer struct {
	name   string
	values map[string]string
}

// NewPropertyMap creates an empty map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{}
}

// Push adds a layer that shadows every existing one.
func (m *PropertyMap) Push(name string, values map[string]string) *PropertyMap {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	m.layers = append(m.layers, layer{name: name, values: copied})
	return m
}

// Lookup returns the value from the highest layer that defines key.
func (m *PropertyMap) Lookup(key string) (string, bool) {
	for i := len(m.layers) - 1; i >= 0; i-- {
		if v, ok := m.layers[i].values[key]; ok {
			return v, true
		}
	}
	return "", false
}

// Source returns the name of the layer key resolves from.
func (m *PropertyMap) Source(key string) string {
	for i := len(m.layers) - 1; i >= 0; i-- {
		if _, ok := m.layers[i].values[key]; ok {
			return m.layers[i].name
		}
	}
	return ""
}

// Len returns the number of distinct keys across all layers.
func (m *PropertyMap) Len() int {
	seen := make(map[string]struct{})
	for _, l := range m.layers {
		for k := range l.values {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

// Layer names, lowest priority first.
const (
	LayerSystem  = "system"
	LayerProject = "project-properties"
	LayerFilters = "filters"
	LayerModel   = "project-model"
)

// PropertySources are the inputs to BuildPropertyMap.
type PropertySources struct {
	Project types.Project
	// Filters are .properties files, applied in order.
	Filters []string
	// Environ is the process environment in KEY=VALUE form.
	Environ []string
}

// BuildPropertyMap layers system values, project properties, filter files and
// finally the project model, which dominates everything else.
func BuildPropertyMap(fs types.FS, src PropertySources) (*PropertyMap, error) {
	m := NewPropertyMap()
	m.Push(LayerSystem, systemProperties(src.Environ))
	m.Push(LayerProject, src.Project.Properties)

	fileValues := make(map[string]string)
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	for _, filter := range src.Filters {
		data, err := fs.ReadFile(filter)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfiguration, "error loading property file '%s'", filter).
				WithDetail("path", filter)
		}
		p, err := loader.LoadBytes(data)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "error parsing property file '%s'", filter).
				WithDetail("path", filter)
		}
		for _, k := range p.Keys() {
			v, _ := p.Get(k)
			fileValues[k] = v
		}
	}
	m.Push(LayerFilters, fileValues)
	m.Push(LayerModel, modelProperties(src.Project))
	return m, nil
}

func systemProperties(environ []string) map[string]string {
	values := map[string]string{
		"os.name":        runtime.GOOS,
		"os.arch":        runtime.GOARCH,
		"file.separator": string(filepath.Separator),
		"path.separator": string(os.PathListSeparator),
		"line.separator": "\n",
	}
	if home, err := os.UserHomeDir(); err == nil {
		values["user.home"] = home
	}
	if wd, err := os.Getwd(); err == nil {
		values["user.dir"] = wd
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		values["env."+k] = v
	}
	return values
}

// modelProperties exposes the project model under project.* and pom.*. Unset
// coordinates are left out so their tokens stay unexpanded.
func modelProperties(p types.Project) map[string]string {
	values := make(map[string]string)
	set := func(key, value string) {
		if value == "" {
			return
		}
		values["project."+key] = value
		values["pom."+key] = value
	}
	set("groupId", p.GroupID)
	set("artifactId", p.ArtifactID)
	set("version", p.Version)
	set("packaging", p.Packaging)
	set("build.finalName", p.EffectiveFinalName())
	set("id", p.ID())
	set("build.directory", p.BuildDir)
	set("basedir", p.BaseDir)
	if p.BaseDir != "" {
		values["basedir"] = p.BaseDir
	}
	return values
}
