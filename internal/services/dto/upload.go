package dto

// UploadVideoRequest is the upload proxy payload. Required fields are checked
// by the service itself so that missing-parameter errors carry the parameter
// name, matching the proxy's contract.
type UploadVideoRequest struct {
	FileName    string `json:"fileName"`
	FileBase64  string `json:"fileBase64"`
	Title       string `json:"title"`
	RequestID   string `json:"requestId"`
	FanEmail    string `json:"fanEmail"`
	CreatorName string `json:"creatorName"`
}

// EmailResult reports the optional notification side effect of an upload.
// A failed send is informational only.
type EmailResult struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

type UploadVideoResponse struct {
	Success     bool         `json:"success"`
	VideoURL    string       `json:"videoUrl"`
	StorageURL  string       `json:"storageUrl"`
	StoragePath string       `json:"storagePath"`
	RequestID   string       `json:"requestId"`
	EmailResult *EmailResult `json:"emailResult"`
}
