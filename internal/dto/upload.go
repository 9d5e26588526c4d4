package dto

import "glbiashara_backend/internal/media"

// UploadResponse is the JSON envelope of the upload endpoints.
type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url,omitempty" example:"https://res.cloudinary.com/demo/image/upload/glbiashara/user-42/images/6f1c.jpg"`
	PublicID string `json:"publicId,omitempty" example:"glbiashara/user-42/images/6f1c"`
	Type     string `json:"type,omitempty" example:"image"`
	FileName string `json:"fileName,omitempty" example:"6f1c.jpg"`
	Size     int64  `json:"size,omitempty" example:"204800"`
	Width    *int   `json:"width,omitempty" example:"1200"`
	Height   *int   `json:"height,omitempty" example:"800"`
	Error    string `json:"error,omitempty"`
}

// NewUploadResponse builds the success envelope for a stored asset.
func NewUploadResponse(m *media.StoredMedia) UploadResponse {
	return UploadResponse{
		Success:  true,
		URL:      m.URL,
		PublicID: m.PublicID,
		Type:     string(m.Kind),
		FileName: m.FileName,
		Size:     m.Size,
		Width:    m.Width,
		Height:   m.Height,
	}
}

// DeleteUploadRequest is the body of DELETE /api/upload.
type DeleteUploadRequest struct {
	PublicID string `json:"publicId" validate:"required,public_id"`
	Type     string `json:"type" validate:"required,media_kind"`
}
