package common

const (
	ContentTypeJson        = "application/json"
	ContentTypeMultipart   = "multipart/form-data"
	ContentTypeOctetStream = "application/octet-stream"
	ContentTypeProblemJson = "application/problem+json"
	ContentTypeXml         = "text/xml"
	ContentTypeXmlApp      = "application/xml"

	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestId     = "X-Request-Id"

	FormFieldFile = "file"

	PathHealth        = "/"
	PathExtract       = "/extract"
	PathExtractBase64 = "/extract/base64"
	PathExtractText   = "/extract/text"
	PathReadiness     = "/readiness"
)

// Request to extract a base64 encoded BPMN XML document.
type ExtractBase64Cmd struct {
	Content string `json:"content" validate:"required,base64"` // Base64 encoded BPMN XML.
}

// Request to extract a BPMN XML document, passed as JSON string.
type ExtractTextCmd struct {
	Content string `json:"content" validate:"required"` // BPMN XML.
}

// Response of a health check.
type HealthRes struct {
	Status string `json:"status" validate:"required"`
}
