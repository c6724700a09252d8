package covers

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"omnihub/constants"
	"omnihub/utils"
	"omnihub/utils/fileio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// ErrNoImage is returned when an archive holds no image entry.
var ErrNoImage = errors.New("archive contains no image")

// ImportArchive extracts the first image found in a .zip, .7z or .rar
// archive into the covers directory and returns its path. A plain image
// file is copied as is.
func (s *Service) ImportArchive(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	prefix := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var (
		dest string
		err  error
	)
	switch {
	case ext == ".zip":
		dest, err = s.importZip(path, prefix)
	case ext == ".7z":
		dest, err = s.import7z(path, prefix)
	case ext == ".rar":
		dest, err = s.importRar(path, prefix)
	case utils.IsImageFile(path):
		dest, err = s.importImage(path)
	default:
		return "", fmt.Errorf("unsupported cover file: %s", filepath.Base(path))
	}
	if err != nil {
		return "", err
	}

	s.ui.LogInfof("ImportArchive: Imported cover from %s to %s", path, dest)
	return dest, nil
}

func (s *Service) importZip(path, prefix string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open zip archive: %w", err)
	}
	defer fileio.Close(r, s.ui.LogErrorf, "failed to close zip archive")

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !utils.IsImageFile(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s in zip: %w", f.Name, err)
		}
		defer fileio.Close(rc, s.ui.LogErrorf, "failed to close zip entry")
		return s.save(prefix, f.Name, rc)
	}
	return "", ErrNoImage
}

func (s *Service) import7z(path, prefix string) (string, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer fileio.Close(r, s.ui.LogErrorf, "failed to close 7z archive")

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !utils.IsImageFile(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s in 7z: %w", f.Name, err)
		}
		defer fileio.Close(rc, s.ui.LogErrorf, "failed to close 7z entry")
		return s.save(prefix, f.Name, rc)
	}
	return "", ErrNoImage
}

func (s *Service) importRar(path, prefix string) (string, error) {
	rc, err := rardecode.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open rar archive: %w", err)
	}
	defer fileio.Close(rc, s.ui.LogErrorf, "failed to close rar archive")

	for {
		h, err := rc.Next()
		if err == io.EOF {
			return "", ErrNoImage
		}
		if err != nil {
			return "", fmt.Errorf("failed to read rar archive: %w", err)
		}
		if h.IsDir || !utils.IsImageFile(h.Name) {
			continue
		}
		return s.save(prefix, h.Name, rc)
	}
}

func (s *Service) importImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer fileio.Close(f, s.ui.LogErrorf, "failed to close image")
	return s.save("", filepath.Base(path), f)
}

// save copies one entry into the covers directory. Entry names come from the
// archive and are reduced to their base name.
func (s *Service) save(prefix, entryName string, r io.Reader) (string, error) {
	dir := s.config.GetCoversPath()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create covers dir: %w", err)
	}

	name := filepath.Base(utils.SanitizePath(entryName))
	if prefix != "" {
		name = prefix + "-" + name
	}
	dest, err := utils.SafeJoin(dir, name)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, constants.MaxCoverBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", entryName, err)
	}
	if len(data) > constants.MaxCoverBytes {
		return "", fmt.Errorf("cover %s is larger than %d bytes", entryName, constants.MaxCoverBytes)
	}

	if err := fileio.WriteFileAtomic(dest, data, 0o644); err != nil {
		return "", err
	}
	return dest, nil
}
