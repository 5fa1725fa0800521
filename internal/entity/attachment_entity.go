package entity

// Attachment is a user-supplied file associated with an outgoing message.
// Id is derived from the file name and last-modified stamp by the client;
// it is unique within one composer batch, not globally.
type Attachment struct {
	Id   string
	Type string // "pdf" | "image" | "docx" | "txt"
	Name string
	Size int64
	Url  string // displayable data reference, optional
}

const (
	AttachmentTypePdf   = "pdf"
	AttachmentTypeImage = "image"
	AttachmentTypeDocx  = "docx"
	AttachmentTypeTxt   = "txt"
)
