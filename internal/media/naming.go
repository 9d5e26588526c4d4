package media

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// mimeExts lists the extensions accepted for each allowed type. The first
// one is canonical.
var mimeExts = map[string][]string{
	"image/jpeg":      {"jpg", "jpeg", "jpe", "jfif"},
	"image/png":       {"png"},
	"image/gif":       {"gif"},
	"image/webp":      {"webp"},
	"video/mp4":       {"mp4", "m4v"},
	"video/webm":      {"webm"},
	"video/quicktime": {"mov", "qt"},
}

// CanonicalExtension returns the preferred extension for mimeType, or ""
// when the type is not allowed.
func CanonicalExtension(mimeType string) string {
	if exts := mimeExts[normalizeMime(mimeType)]; len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// GenerateStorageName returns "<uuid>.<ext>", keeping the extension of the
// original name. A name without an extension yields the bare uuid.
func GenerateStorageName(originalName string) string {
	return withExt(uuid.NewString(), Extension(originalName))
}

// GenerateStorageNameFor names an upload of type mimeType. The original
// extension is kept, case included, only when it belongs to mimeType;
// otherwise the canonical extension is used. Unknown types get a bare uuid.
func GenerateStorageNameFor(originalName, mimeType string) string {
	ext := Extension(originalName)
	if !extensionMatches(ext, mimeType) {
		ext = CanonicalExtension(mimeType)
	}
	return withExt(uuid.NewString(), ext)
}

func extensionMatches(ext, mimeType string) bool {
	if ext == "" {
		return false
	}
	for _, known := range mimeExts[normalizeMime(mimeType)] {
		if strings.EqualFold(ext, known) {
			return true
		}
	}
	return false
}

// Extension returns the text after the last dot of the base name. Dotfiles
// (".env") and trailing dots have no extension.
func Extension(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return base[i+1:]
}

// TrimExtension strips ".<ext>" from a generated name.
func TrimExtension(name string) string {
	if ext := Extension(name); ext != "" {
		return strings.TrimSuffix(name, "."+ext)
	}
	return name
}

func withExt(token, ext string) string {
	if ext == "" {
		return token
	}
	return token + "." + ext
}
