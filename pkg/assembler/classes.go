package assembler

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/warforge/pkg/archive"
	"github.com/arthur-debert/warforge/pkg/fileset"
	"github.com/arthur-debert/warforge/pkg/types"
)

const manifestPath = "META-INF/MANIFEST.MF"

// archiveClasses packs the classes directory into <final name>.jar in the
// library directory. The jar is rebuilt only when a class file is newer.
func (r *run) archiveClasses() error {
	classes := r.opts.ClassesDir
	jar := filepath.Join(r.layout.Lib(), r.opts.Project.EffectiveFinalName()+".jar")
	r.report.ClassesArchive = jar

	excludes := append(append([]string{}, r.opts.Excludes...), manifestPath)
	scan, err := fileset.NewScanner(r.fs).Scan(classes, r.opts.Includes, excludes)
	if err != nil {
		return err
	}

	latest, err := r.newest(classes, scan.Files)
	if err != nil {
		return err
	}
	if info, err := r.fs.Stat(jar); err == nil && !info.IsDir() && !info.ModTime().Before(latest) {
		r.logger.Debug().Str("jar", jar).Msg("Classes archive is up to date")
		return nil
	}

	entries := []archive.Entry{
		{Name: "META-INF/", Dir: true, ModTime: latest},
		{Name: manifestPath, Data: []byte(Manifest(r.opts.Project)), ModTime: latest},
	}
	for _, dir := range scan.Dirs {
		if dir == "META-INF" {
			continue
		}
		entries = append(entries, archive.Entry{Name: dir, Dir: true})
	}
	for _, file := range scan.Files {
		entries = append(entries, archive.Entry{
			Name:   file,
			Source: filepath.Join(classes, filepath.FromSlash(file)),
		})
	}

	codec, err := r.codecs.ForFile(jar)
	if err != nil {
		return err
	}
	if err := codec.Pack(r.fs, jar, entries); err != nil {
		return err
	}

	r.report.ClassesArchived = true
	r.logger.Info().Str("jar", jar).Int("entries", len(entries)).Msg("Archived classes")
	return nil
}

// Manifest renders a jar manifest for project.
func Manifest(project types.Project) string {
	var b strings.Builder
	line := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(key + ": " + value + "\r\n")
	}
	line("Manifest-Version", "1.0")
	line("Created-By", "warforge")
	line("Implementation-Title", project.ArtifactID)
	line("Implementation-Version", project.Version)
	line("Implementation-Vendor-Id", project.GroupID)
	b.WriteString("\r\n")
	return b.String()
}
