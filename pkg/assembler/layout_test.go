package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/warforge/pkg/types"
)

func TestLayout(t *testing.T) {
	l := Layout{Root: "/out"}

	assert.Equal(t, "/out/WEB-INF", l.WebInf())
	assert.Equal(t, "/out/META-INF", l.MetaInf())
	assert.Equal(t, "/out/WEB-INF/lib", l.Lib())
	assert.Equal(t, "/out/WEB-INF/classes", l.Classes())
	assert.Equal(t, "/out/WEB-INF/web.xml", l.Descriptor())
	assert.Equal(t, "/out/WEB-INF/lib/a.jar", l.Path("WEB-INF/lib/a.jar"))
}

func TestManifest(t *testing.T) {
	m := Manifest(types.Project{ArtifactID: "shop", Version: "1.0"})

	assert.Equal(t, "Manifest-Version: 1.0\r\n"+
		"Created-By: warforge\r\n"+
		"Implementation-Title: shop\r\n"+
		"Implementation-Version: 1.0\r\n"+
		"\r\n", m)
}
