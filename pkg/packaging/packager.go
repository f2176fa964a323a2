package packaging

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/warforge/pkg/archive"
	"github.com/arthur-debert/warforge/pkg/assembler"
	"github.com/arthur-debert/warforge/pkg/fileset"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/types"
)

// Packager writes archives through a types.FS.
type Packager struct {
	fs      types.FS
	codecs  *archive.Registry
	scanner *fileset.Scanner
	logger  zerolog.Logger
}

// New creates a packager. A nil registry means the default codecs.
func New(fs types.FS, codecs *archive.Registry) *Packager {
	if codecs == nil {
		codecs = archive.DefaultRegistry()
	}
	return &Packager{
		fs:      fs,
		codecs:  codecs,
		scanner: fileset.NewScanner(fs),
		logger:  logging.GetLogger("packaging"),
	}
}

// WarFile returns the web archive path for finalName in outputDir.
func WarFile(outputDir, finalName string) string {
	return filepath.Join(outputDir, finalName+".war")
}

// ConfigurationFile returns the configuration bundle path. A classifier is
// joined with a dash unless it already starts with one.
func ConfigurationFile(outputDir, finalName, classifier string) string {
	suffix := strings.TrimSpace(classifier)
	if suffix != "" && !strings.HasPrefix(suffix, "-") {
		suffix = "-" + suffix
	}
	return filepath.Join(outputDir, finalName+suffix+".configuration")
}

// PackageWar archives the assembled webapp at root into dest. A manifest is
// generated when the webapp has none.
func (p *Packager) PackageWar(root, dest string, project types.Project) error {
	done := logging.LogOperationStart(p.logger, "package war")
	defer done()

	scan, err := p.scanner.Scan(root, nil, []string{"**/" + filepath.Base(dest)})
	if err != nil {
		return err
	}

	var entries []archive.Entry
	if !contains(scan.Files, "META-INF/MANIFEST.MF") {
		entries = append(entries, archive.Entry{
			Name: "META-INF/MANIFEST.MF",
			Data: []byte(assembler.Manifest(project)),
		})
	}
	entries = append(entries, dirEntries(root, scan)...)

	if err := p.pack(dest, entries); err != nil {
		return err
	}
	p.logger.Info().Str("war", dest).Int("files", len(scan.Files)).Msg("Packaged webapp")
	return nil
}

// PackageConfiguration zips configDir into dest, leaving out any earlier
// copy of dest found inside configDir.
func (p *Packager) PackageConfiguration(configDir, dest string) error {
	scan, err := p.scanner.Scan(configDir, []string{"**/**"}, []string{"**/" + filepath.Base(dest)})
	if err != nil {
		return err
	}
	if err := p.pack(dest, dirEntries(configDir, scan)); err != nil {
		return err
	}
	p.logger.Info().Str("configuration", dest).Int("files", len(scan.Files)).Msg("Packaged configuration")
	return nil
}

func (p *Packager) pack(dest string, entries []archive.Entry) error {
	codec, err := p.codecs.ForFile(dest)
	if err != nil {
		return err
	}
	return codec.Pack(p.fs, dest, entries)
}

func dirEntries(base string, scan *fileset.Result) []archive.Entry {
	entries := make([]archive.Entry, 0, len(scan.Dirs)+len(scan.Files))
	for _, dir := range scan.Dirs {
		entries = append(entries, archive.Entry{Name: dir, Dir: true})
	}
	for _, file := range scan.Files {
		entries = append(entries, archive.Entry{
			Name:   file,
			Source: filepath.Join(base, filepath.FromSlash(file)),
		})
	}
	return entries
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
