package entity

// WorkItem identifies one source document found in the input directory.
type WorkItem struct {
	ID   string `json:"id"`   // file name; the resume key
	Path string `json:"path"` // full path to the document
}
