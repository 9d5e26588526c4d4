package media

import "io"

// Kind is the category of an uploaded file. It is always derived from the
// MIME type, never from what the client claims.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Plural returns the folder segment for the kind ("images", "videos").
func (k Kind) Plural() string {
	return string(k) + "s"
}

func (k Kind) Valid() bool {
	return k == KindImage || k == KindVideo
}

// ParseKind accepts "image"/"video" and their plural forms.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "image", "images":
		return KindImage, true
	case "video", "videos":
		return KindVideo, true
	}
	return "", false
}

// UploadRequest lives for the duration of one upload call.
type UploadRequest struct {
	File         io.Reader // nil when the form carried no file
	MimeType     string
	Size         int64
	OriginalName string
	DeclaredType string // "type" form field, logged only
	UserID       uint
}

// StoredMedia describes an asset accepted by the remote store. Ownership
// passes to the caller.
type StoredMedia struct {
	URL      string
	PublicID string
	Kind     Kind
	FileName string
	Size     int64
	Width    *int
	Height   *int
}

// Bounds is a maximum delivered size. Assets are scaled down to fit, keeping
// the aspect ratio, and never scaled up.
type Bounds struct {
	Width  int
	Height int
}

var (
	ImageBounds = Bounds{Width: 1200, Height: 800}
	VideoBounds = Bounds{Width: 1280, Height: 720}
)

// BoundsFor returns the delivery limit for a kind.
func BoundsFor(k Kind) Bounds {
	if k == KindVideo {
		return VideoBounds
	}
	return ImageBounds
}
