package pom

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/warforge/pkg/types"
)

// Repository locates artifact files in a Maven layout local repository.
type Repository struct {
	root string
}

// NewRepository creates a repository rooted at root.
func NewRepository(root string) *Repository {
	return &Repository{root: root}
}

// DefaultRepositoryRoot is ~/.m2/repository.
func DefaultRepositoryRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".m2", "repository")
	}
	return filepath.Join(home, ".m2", "repository")
}

// Root returns the repository root.
func (r *Repository) Root() string {
	return r.root
}

// Path returns where a lives in the repository:
// <root>/<group as dirs>/<artifactId>/<version>/<artifactId>-<version>[-<classifier>].<ext>
func (r *Repository) Path(a types.Artifact) string {
	parts := []string{r.root}
	parts = append(parts, strings.Split(a.GroupID, ".")...)
	parts = append(parts, a.ArtifactID, a.Version, a.DefaultFileName())
	return filepath.Join(parts...)
}

// Locate fills in File for artifacts that have none. Missing files are not
// an error here; placement reports them.
func (r *Repository) Locate(artifacts []types.Artifact) []types.Artifact {
	out := make([]types.Artifact, len(artifacts))
	for i, a := range artifacts {
		if a.File == "" {
			a.File = r.Path(a)
		}
		out[i] = a
	}
	return out
}
