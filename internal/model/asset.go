package model

// Asset is an uploaded image. URL points at the file under the public
// /assets/ static path; Name keeps the filename the uploader chose so the
// manager UI can show something human-readable.
type Asset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Kind string `json:"kind"`
}
