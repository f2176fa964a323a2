package archive

import (
	"archive/zip"
	"bytes"
	stderrors "errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/types"
)

// ZipCodec handles zip and every format layered on it.
type ZipCodec struct {
	logger zerolog.Logger
}

// NewZipCodec creates a zip codec.
func NewZipCodec() *ZipCodec {
	return &ZipCodec{logger: logging.GetLogger("archive.zip")}
}

// Name implements Codec.
func (z *ZipCodec) Name() string { return "zip" }

// Unpack extracts archive into dest.
func (z *ZipCodec) Unpack(fs types.FS, archive, dest string, opts UnpackOptions) (UnpackResult, error) {
	var result UnpackResult

	info, err := fs.Stat(archive)
	if err != nil {
		return result, errors.IO(err, archive, "cannot read archive")
	}
	data, err := fs.ReadFile(archive)
	if err != nil {
		return result, errors.IO(err, archive, "cannot read archive")
	}
	// insecure names are rejected per entry below
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil && !stderrors.Is(err, zip.ErrInsecurePath) {
		return result, errors.Wrapf(err, errors.ErrArchive, "cannot open zip archive %s", archive).
			WithDetail("path", archive)
	}

	if err := fs.MkdirAll(dest, 0755); err != nil {
		return result, errors.IO(err, dest, "cannot create directory")
	}

	for _, file := range reader.File {
		target, err := targetPath(archive, dest, file.Name)
		if err != nil {
			return result, err
		}
		mtime := entryTime(file.Modified, info.ModTime())

		if file.FileInfo().IsDir() || strings.HasSuffix(file.Name, "/") {
			if err := fs.MkdirAll(target, 0755); err != nil {
				return result, errors.IO(err, target, "cannot create directory")
			}
			result.Dirs++
			continue
		}

		if !opts.Overwrite && upToDate(fs, target, mtime) {
			result.Skipped++
			continue
		}
		if err := z.extract(fs, file, target, mtime); err != nil {
			return result, err
		}
		result.Files++
	}

	z.logger.Debug().
		Str("archive", archive).
		Int("files", result.Files).
		Int("skipped", result.Skipped).
		Msg("unpacked")
	return result, nil
}

func (z *ZipCodec) extract(fs types.FS, file *zip.File, target string, mtime time.Time) error {
	rc, err := file.Open()
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchive, "cannot read entry %s", file.Name)
	}
	defer func() { _ = rc.Close() }()

	if err := extractFile(fs, target, rc, mtime); err != nil {
		return err
	}
	return stamp(fs, target, mtime)
}

// Pack writes entries, in order, into a new zip at archive.
func (z *ZipCodec) Pack(fs types.FS, archive string, entries []Entry) (err error) {
	if err := fs.MkdirAll(filepath.Dir(archive), 0755); err != nil {
		return errors.IO(err, filepath.Dir(archive), "cannot create directory")
	}
	out, err := fs.Create(archive)
	if err != nil {
		return errors.IO(err, archive, "cannot create archive")
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = errors.IO(closeErr, archive, "cannot write archive")
		}
	}()

	zw := zip.NewWriter(out)
	for i := range entries {
		if err := z.writeEntry(fs, zw, &entries[i]); err != nil {
			_ = zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return errors.IO(err, archive, "cannot write archive")
	}

	z.logger.Debug().Str("archive", archive).Int("entries", len(entries)).Msg("packed")
	return nil
}

func (z *ZipCodec) writeEntry(fs types.FS, zw *zip.Writer, e *Entry) error {
	name := strings.TrimPrefix(filepath.ToSlash(e.Name), "/")
	if e.Dir {
		header := &zip.FileHeader{Name: strings.TrimSuffix(name, "/") + "/", Method: zip.Store}
		if !e.ModTime.IsZero() {
			header.Modified = e.ModTime
		}
		_, err := zw.CreateHeader(header)
		if err != nil {
			return errors.Wrapf(err, errors.ErrArchive, "cannot add directory %s", name)
		}
		return nil
	}

	rc, _, err := entryContent(fs, e)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	header := &zip.FileHeader{Name: name, Method: zip.Deflate}
	if !e.ModTime.IsZero() {
		header.Modified = e.ModTime
	}
	header.SetMode(0644)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchive, "cannot add entry %s", name)
	}
	if _, err := io.Copy(w, rc); err != nil {
		return errors.Wrapf(err, errors.ErrArchive, "cannot write entry %s", name)
	}
	return nil
}
