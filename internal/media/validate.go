package media

import "strings"

const (
	MiB = int64(1 << 20)

	MaxImageSize = 10 * MiB
	MaxVideoSize = 100 * MiB
)

// RejectionReason tells why Validate refused a request.
type RejectionReason string

const (
	ReasonNone            RejectionReason = ""
	ReasonMissingFile     RejectionReason = "MissingFile"
	ReasonUnsupportedType RejectionReason = "UnsupportedType"
	ReasonTooLarge        RejectionReason = "TooLarge"
)

const (
	MsgNoFile          = "No file provided"
	MsgUnsupportedType = "Invalid file type. Only images (JPEG, PNG, GIF, WebP) and videos (MP4, WebM, MOV) are allowed"
	MsgImageTooLarge   = "File size exceeds 10MB limit for images"
	MsgVideoTooLarge   = "File size exceeds 100MB limit for videos"
)

// AllowedTypes maps every accepted MIME type to its category.
var AllowedTypes = map[string]Kind{
	"image/jpeg":      KindImage,
	"image/png":       KindImage,
	"image/gif":       KindImage,
	"image/webp":      KindImage,
	"video/mp4":       KindVideo,
	"video/webm":      KindVideo,
	"video/quicktime": KindVideo,
}

// ValidationResult is derived from a request, never persisted. Kind is set
// when accepted and on TooLarge.
type ValidationResult struct {
	Accepted bool
	Kind     Kind
	Reason   RejectionReason
	Message  string
}

// KindOf returns the category of an allowed MIME type.
func KindOf(mimeType string) (Kind, bool) {
	k, ok := AllowedTypes[normalizeMime(mimeType)]
	return k, ok
}

// MaxSize returns the size ceiling for a kind.
func MaxSize(k Kind) int64 {
	if k == KindVideo {
		return MaxVideoSize
	}
	return MaxImageSize
}

// Validate checks presence, type and size, in that order. It has no side
// effects.
func Validate(req *UploadRequest) ValidationResult {
	if req == nil || req.File == nil {
		return reject(ReasonMissingFile, MsgNoFile)
	}

	kind, ok := KindOf(req.MimeType)
	if !ok {
		return reject(ReasonUnsupportedType, MsgUnsupportedType)
	}

	if req.Size > MaxSize(kind) {
		res := reject(ReasonTooLarge, MsgImageTooLarge)
		if kind == KindVideo {
			res.Message = MsgVideoTooLarge
		}
		res.Kind = kind
		return res
	}

	return ValidationResult{Accepted: true, Kind: kind}
}

func reject(reason RejectionReason, msg string) ValidationResult {
	return ValidationResult{Reason: reason, Message: msg}
}

// normalizeMime drops parameters ("; charset=...") and case.
func normalizeMime(m string) string {
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	return strings.ToLower(strings.TrimSpace(m))
}
