package models

// UploadedFile describes a stored attachment. It is not a persisted domain
// entity: the ID is the object's storage path relative to the upload root,
// and the file lives until its owner removes it.
type UploadedFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}
