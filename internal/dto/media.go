package dto

// FileUpload is a validated multipart file held in memory.
type FileUpload struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// StoredObject describes an object written by the media delegate.
type StoredObject struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
}
