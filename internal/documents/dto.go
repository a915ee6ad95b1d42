package documents

import "time"

// ProcessedFileResponse describes a file that was extracted and stored.
type ProcessedFileResponse struct {
	FileName      string    `json:"filename"`
	Size          int64     `json:"size"`
	UploadedAt    time.Time `json:"uploadedAt"`
	Status        Status    `json:"status"`
	ContentLength int       `json:"contentLength"`
}

// FailedFileResponse describes a file that could not be ingested.
type FailedFileResponse struct {
	FileName string `json:"filename"`
	Status   Status `json:"status"`
	Error    string `json:"error"`
}

// DocumentResponse is the outward-facing metadata of a stored document.
type DocumentResponse struct {
	FileName      string    `json:"filename"`
	Size          int64     `json:"size"`
	UploadedAt    time.Time `json:"uploadedAt"`
	ContentLength int       `json:"contentLength"`
}

func toFileResponse(fr FileResult) any {
	if fr.Status == StatusError {
		msg := "unknown error"
		if fr.Err != nil {
			msg = fr.Err.Error()
		}
		return FailedFileResponse{FileName: fr.FileName, Status: fr.Status, Error: msg}
	}
	return ProcessedFileResponse{
		FileName:      fr.FileName,
		Size:          fr.SizeBytes,
		UploadedAt:    fr.UploadedAt,
		Status:        fr.Status,
		ContentLength: fr.ContentLength,
	}
}

func toDocumentResponse(m Metadata) DocumentResponse {
	return DocumentResponse{
		FileName:      m.FileName,
		Size:          m.SizeBytes,
		UploadedAt:    m.UploadedAt,
		ContentLength: m.ContentLength,
	}
}
