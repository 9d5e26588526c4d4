package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func req(mime string, size int64) *UploadRequest {
	return &UploadRequest{File: strings.NewReader("x"), MimeType: mime, Size: size, OriginalName: "a.bin", UserID: 1}
}

func TestValidate_UnsupportedTypeRegardlessOfSize(t *testing.T) {
	for _, mime := range []string{"application/pdf", "text/plain", "image/svg+xml", "video/x-msvideo", "application/octet-stream", ""} {
		for _, size := range []int64{0, 1, MaxImageSize, MaxVideoSize + 1, 1 << 40} {
			res := Validate(req(mime, size))
			assert.False(t, res.Accepted, "%s/%d", mime, size)
			assert.Equal(t, ReasonUnsupportedType, res.Reason, "%s/%d", mime, size)
			assert.Equal(t, MsgUnsupportedType, res.Message)
		}
	}
}

func TestValidate_ImageSizes(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		accepted bool
	}{
		{"small", 2 * MiB, true},
		{"exactly at limit", MaxImageSize, true},
		{"one byte over", MaxImageSize + 1, false},
		{"far over", 50 * MiB, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mime := range []string{"image/jpeg", "image/png", "image/gif", "image/webp"} {
				res := Validate(req(mime, tt.size))
				assert.Equal(t, tt.accepted, res.Accepted, mime)
				if tt.accepted {
					assert.Equal(t, KindImage, res.Kind)
				} else {
					assert.Equal(t, ReasonTooLarge, res.Reason)
					assert.Equal(t, MsgImageTooLarge, res.Message)
				}
			}
		})
	}
}

func TestValidate_VideoSizes(t *testing.T) {
	for _, mime := range []string{"video/mp4", "video/webm", "video/quicktime"} {
		res := Validate(req(mime, MaxVideoSize))
		assert.True(t, res.Accepted, mime)
		assert.Equal(t, KindVideo, res.Kind)

		res = Validate(req(mime, MaxVideoSize+1))
		assert.False(t, res.Accepted)
		assert.Equal(t, ReasonTooLarge, res.Reason)
		assert.Contains(t, res.Message, "100MB limit")
		assert.Equal(t, KindVideo, res.Kind)
	}

	// a 50 MiB video is fine even though it would be too large as an image
	assert.True(t, Validate(req("video/mp4", 50*MiB)).Accepted)
}

func TestValidate_MissingFile(t *testing.T) {
	res := Validate(&UploadRequest{MimeType: "image/png", Size: 10})
	assert.False(t, res.Accepted)
	assert.Equal(t, ReasonMissingFile, res.Reason)
	assert.Equal(t, MsgNoFile, res.Message)

	assert.Equal(t, ReasonMissingFile, Validate(nil).Reason)
}

func TestValidate_MimeParametersAndCase(t *testing.T) {
	res := Validate(req("Image/JPEG; charset=binary", MiB))
	assert.True(t, res.Accepted)
	assert.Equal(t, KindImage, res.Kind)
}

func TestValidate_DeclaredTypeIsIgnored(t *testing.T) {
	r := req("video/mp4", 20*MiB)
	r.DeclaredType = "image"
	res := Validate(r)
	assert.True(t, res.Accepted)
	assert.Equal(t, KindVideo, res.Kind)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("images")
	assert.True(t, ok)
	assert.Equal(t, KindImage, k)

	k, ok = ParseKind("video")
	assert.True(t, ok)
	assert.Equal(t, KindVideo, k)

	_, ok = ParseKind("audio")
	assert.False(t, ok)
}
