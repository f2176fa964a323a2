package archive

import (
	"archive/tar"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/types"
)

// TarCodec handles tar archives, optionally gzip compressed.
type TarCodec struct {
	compressed bool
	logger     zerolog.Logger
}

// NewTarCodec creates a tar codec. With compressed set the stream is gzip.
func NewTarCodec(compressed bool) *TarCodec {
	return &TarCodec{
		compressed: compressed,
		logger:     logging.GetLogger("archive.tar"),
	}
}

// Name implements Codec.
func (c *TarCodec) Name() string {
	if c.compressed {
		return "tar.gz"
	}
	return "tar"
}

// Unpack extracts archive into dest. Links and special files are skipped.
func (c *TarCodec) Unpack(fs types.FS, archive, dest string, opts UnpackOptions) (UnpackResult, error) {
	var result UnpackResult

	info, err := fs.Stat(archive)
	if err != nil {
		return result, errors.IO(err, archive, "cannot read archive")
	}
	f, err := fs.Open(archive)
	if err != nil {
		return result, errors.IO(err, archive, "cannot open archive")
	}
	defer func() { _ = f.Close() }()

	var stream io.Reader = f
	if c.compressed {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return result, errors.Wrapf(err, errors.ErrArchive, "cannot open gzip stream %s", archive).
				WithDetail("path", archive)
		}
		defer func() { _ = gz.Close() }()
		stream = gz
	}

	if err := fs.MkdirAll(dest, 0755); err != nil {
		return result, errors.IO(err, dest, "cannot create directory")
	}

	tr := tar.NewReader(stream)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, errors.Wrapf(err, errors.ErrArchive, "cannot read tar archive %s", archive).
				WithDetail("path", archive)
		}

		target, err := targetPath(archive, dest, header.Name)
		if err != nil {
			return result, err
		}
		mtime := entryTime(header.ModTime, info.ModTime())

		switch header.Typeflag {
		case tar.TypeDir:
			if err := fs.MkdirAll(target, 0755); err != nil {
				return result, errors.IO(err, target, "cannot create directory")
			}
			result.Dirs++
		case tar.TypeReg:
			if !opts.Overwrite && upToDate(fs, target, mtime) {
				result.Skipped++
				continue
			}
			if err := extractFile(fs, target, tr, mtime); err != nil {
				return result, err
			}
			if err := stamp(fs, target, mtime); err != nil {
				return result, err
			}
			result.Files++
		default:
			c.logger.Debug().Str("entry", header.Name).Msg("skipping non-regular tar entry")
		}
	}

	c.logger.Debug().
		Str("archive", archive).
		Int("files", result.Files).
		Int("skipped", result.Skipped).
		Msg("unpacked")
	return result, nil
}

// Pack writes entries, in order, into a new tar at archive.
func (c *TarCodec) Pack(fs types.FS, archive string, entries []Entry) (err error) {
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

	var sink io.Writer = out
	var gz *gzip.Writer
	if c.compressed {
		gz = gzip.NewWriter(out)
		sink = gz
	}
	tw := tar.NewWriter(sink)

	for i := range entries {
		if err := c.writeEntry(fs, tw, &entries[i]); err != nil {
			return err
		}
	}
	if err := tw.Close(); err != nil {
		return errors.IO(err, archive, "cannot write archive")
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return errors.IO(err, archive, "cannot write archive")
		}
	}
	return nil
}

func (c *TarCodec) writeEntry(fs types.FS, tw *tar.Writer, e *Entry) error {
	name := strings.TrimPrefix(filepath.ToSlash(e.Name), "/")
	if e.Dir {
		header := &tar.Header{
			Name:     strings.TrimSuffix(name, "/") + "/",
			Typeflag: tar.TypeDir,
			Mode:     0755,
			ModTime:  e.ModTime,
		}
		if err := tw.WriteHeader(header); err != nil {
			return errors.Wrapf(err, errors.ErrArchive, "cannot add directory %s", name)
		}
		return nil
	}

	rc, size, err := entryContent(fs, e)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	header := &tar.Header{
		Name:     name,
		Typeflag: tar.TypeReg,
		Mode:     0644,
		Size:     size,
		ModTime:  e.ModTime,
	}
	if err := tw.WriteHeader(header); err != nil {
		return errors.Wrapf(err, errors.ErrArchive, "cannot add entry %s", name)
	}
	if _, err := io.Copy(tw, rc); err != nil {
		return errors.Wrapf(err, errors.ErrArchive, "cannot write entry %s", name)
	}
	return nil
}
