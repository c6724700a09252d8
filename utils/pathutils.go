package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".svg":  true,
}

// SanitizePath turns a path coming from an archive entry into a clean relative
// path. Traversal segments, volume names and leading separators are dropped.
func SanitizePath(path string) string {
	p := filepath.ToSlash(path)
	if vol := filepath.VolumeName(path); vol != "" {
		p = strings.TrimPrefix(p, filepath.ToSlash(vol))
	}
	// Windows-style drive letters inside archives built on another OS
	if len(p) >= 2 && p[1] == ':' {
		p = p[2:]
	}

	var parts []string
	for _, segment := range strings.Split(p, "/") {
		switch segment {
		case "", ".":
			continue
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, segment)
		}
	}

	if len(parts) == 0 {
		return "."
	}
	return filepath.FromSlash(strings.Join(parts, "/"))
}

// SafeJoin joins a sanitized name onto base and guarantees the result stays inside base.
func SafeJoin(base, name string) (string, error) {
	clean := SanitizePath(name)
	if clean == "." {
		return "", fmt.Errorf("empty path %q", name)
	}
	joined := filepath.Join(base, clean)
	if !strings.HasPrefix(joined, filepath.Clean(base)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	return joined, nil
}

// IsImageFile reports whether name has a known image extension. Hidden files never match.
func IsImageFile(name string) bool {
	base := filepath.Base(filepath.ToSlash(name))
	if strings.HasPrefix(base, ".") {
		return false
	}
	return imageExtensions[strings.ToLower(filepath.Ext(base))]
}
