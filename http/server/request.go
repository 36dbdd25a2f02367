package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/gclaussn/go-bpmn-extract/http/common"
	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0] // e.g. `json:"content,omitempty"` -> content
	})

	return validate
}

// decodeJSONRequestBody decodes the request body using v and validates it.
// Media type, request body or validation related errors are returned as a Problem.
//
// inspired by https://www.alexedwards.net/blog/how-to-properly-parse-a-json-request-body
func decodeJSONRequestBody(w http.ResponseWriter, r *http.Request, v any, maxBodySize int64) error {
	if mediaType := parseMediaType(r); mediaType != "" && mediaType != common.ContentTypeJson {
		return newMediaTypeProblem(mediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&v); err != nil {
		var (
			maxBytesError      *http.MaxBytesError
			syntaxError        *json.SyntaxError
			unmarshalTypeError *json.UnmarshalTypeError
		)

		problem := common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemHttpRequestBody,
			Title:  "invalid request body",
		}

		switch {
		case errors.As(err, &syntaxError):
			problem.Detail = fmt.Sprintf("malformed JSON at position %d", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			problem.Detail = "unexpected end of JSON"
		case errors.As(err, &unmarshalTypeError):
			problem.Detail = fmt.Sprintf("JSON field %s has an invalid value at position %d", unmarshalTypeError.Field, unmarshalTypeError.Offset)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			problem.Detail = fmt.Sprintf("unknown JSON field %s", fieldName)
		case errors.Is(err, io.EOF):
			problem.Detail = "request body is empty"
		case errors.As(err, &maxBytesError):
			problem.Detail = fmt.Sprintf("request body size must not exceed %d bytes", maxBytesError.Limit)
		default:
			problem.Detail = fmt.Sprintf("failed to unmarshal JSON: %v", err)
		}

		return problem
	}

	if err := validate.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}

		errors := make([]common.Error, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			var (
				pointerBuilder strings.Builder
				next           rune
			)
			for _, r := range fieldError.Namespace() {
				if pointerBuilder.Len() == 0 {
					// skip until first dot
					if r == '.' {
						pointerBuilder.WriteString("#/")
					}
					continue
				}

				switch r {
				case '.':
					if next != '/' {
						next = '/'
					} else {
						next = '.'
					}
				case '[':
					next = '/'
				case ']':
					continue
				default:
					next = r
				}

				pointerBuilder.WriteRune(next)
			}

			var detail string
			switch fieldError.Tag() {
			case "base64":
				detail = "must be base64 encoded"
			case "required":
				detail = "is required"
			default:
				detail = "unknown error"
			}

			errors = append(errors, common.Error{
				Pointer: pointerBuilder.String(),
				Type:    fieldError.Tag(),
				Detail:  detail,
			})
		}

		return common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemValidation,
			Title:  "invalid request body",
			Detail: "failed to validate request body",
			Errors: errors,
		}
	}

	return nil
}

// readBpmnXml reads BPMN XML from a raw request body or from the file field of a multipart form.
func readBpmnXml(w http.ResponseWriter, r *http.Request, maxBodySize int64) ([]byte, error) {
	mediaType := parseMediaType(r)

	switch mediaType {
	case "", common.ContentTypeXml, common.ContentTypeXmlApp, common.ContentTypeOctetStream:
	case common.ContentTypeMultipart:
	default:
		return nil, newMediaTypeProblem(mediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var body io.Reader = r.Body
	if mediaType == common.ContentTypeMultipart {
		if err := r.ParseMultipartForm(maxBodySize); err != nil {
			return nil, newRequestBodyProblem(err, "failed to parse multipart form")
		}

		file, _, err := r.FormFile(common.FormFieldFile)
		if err != nil {
			return nil, common.Problem{
				Status: http.StatusBadRequest,
				Type:   common.ProblemHttpRequestBody,
				Title:  "invalid request body",
				Detail: fmt.Sprintf("multipart form field %s is required", common.FormFieldFile),
			}
		}

		defer file.Close()
		body = file
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return nil, newRequestBodyProblem(err, "failed to read request body")
	}
	if len(b) == 0 {
		return nil, common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemHttpRequestBody,
			Title:  "invalid request body",
			Detail: "request body is empty",
		}
	}

	return b, nil
}

func newMediaTypeProblem(mediaType string) common.Problem {
	return common.Problem{
		Status: http.StatusUnsupportedMediaType,
		Type:   common.ProblemHttpMediaType,
		Title:  "unsupported media type",
		Detail: fmt.Sprintf("media type %s is not supported", mediaType),
	}
}

func newRequestBodyProblem(err error, detail string) common.Problem {
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		detail = fmt.Sprintf("request body size must not exceed %d bytes", maxBytesError.Limit)
	}

	return common.Problem{
		Status: http.StatusBadRequest,
		Type:   common.ProblemHttpRequestBody,
		Title:  "invalid request body",
		Detail: detail,
	}
}

func parseMediaType(r *http.Request) string {
	contentType := r.Header.Get(common.HeaderContentType)
	if contentType == "" {
		return ""
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.TrimSpace(strings.Split(contentType, ";")[0])
	}
	return mediaType
}
