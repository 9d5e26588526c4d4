package media

import (
	"fmt"
	"path"
	"strings"
)

const DefaultNamespace = "glbiashara"

// Folder groups all of a user's assets of one kind:
// <namespace>/user-<id>/<kind>s.
func Folder(namespace string, userID uint, kind Kind) string {
	ns := strings.Trim(namespace, "/")
	if ns == "" {
		ns = DefaultNamespace
	}
	return fmt.Sprintf("%s/user-%d/%s", ns, userID, kind.Plural())
}

// OwnsPublicID reports whether publicID sits inside the user's folder for
// kind. Paths that need cleaning ("..", "//") are refused.
func OwnsPublicID(namespace string, userID uint, kind Kind, publicID string) bool {
	if publicID == "" || path.Clean(publicID) != publicID {
		return false
	}
	prefix := Folder(namespace, userID, kind) + "/"
	return strings.HasPrefix(publicID, prefix) && len(publicID) > len(prefix)
}
