package assembler

import (
	"github.com/beevik/etree"
)

// checkDescriptor warns when a configured web descriptor is not a
// well-formed document rooted at web-app. The file is copied either way.
func (r *run) checkDescriptor(path string) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return
	}
	if len(data) == 0 {
		return
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		r.logger.Warn().Err(err).Str("path", path).Msg("Web descriptor is not well-formed XML")
		r.warn("web descriptor " + path + " is not well-formed: " + err.Error())
		return
	}
	root := doc.Root()
	if root == nil || root.Tag != "web-app" {
		r.logger.Warn().Str("path", path).Msg("Web descriptor root element is not web-app")
		r.warn("web descriptor " + path + " has no web-app root element")
	}
}
