package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"citizenai-backend/pkg/api"

	"github.com/gorilla/schema"
)

const maxFormMemory = 1 << 20

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

// CodedError attaches an HTTP status to err. The error text is written to the
// client, so it must be safe to show.
func CodedError(code int, err error) error {
	return &codedError{err: err, code: code}
}

func CodedErrorf(code int, format string, args ...any) error {
	return &codedError{err: fmt.Errorf(format, args...), code: code}
}

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

func ParseRequest[T any](r *http.Request) (T, error) {
	var data T
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		slog.Error("error parsing request body", "error", err)
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request body")
	}
	return data, nil
}

// ParseForm decodes url-encoded or multipart form values into T.
func ParseForm[T any](r *http.Request) (T, error) {
	var data T

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		slog.Error("error parsing form", "error", err)
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request form")
	}

	if err := formDecoder.Decode(&data, r.Form); err != nil {
		slog.Error("error decoding form", "error", err)
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request form")
	}

	return data, nil
}

// ParseByContentType decodes JSON bodies as JSON and everything else as a form.
func ParseByContentType[T any](r *http.Request) (T, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return ParseRequest[T](r)
	}
	return ParseForm[T](r)
}

func RestHandler(handler func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := handler(r)
		if err != nil {
			var cerr *codedError
			if errors.As(err, &cerr) {
				if cerr.code >= http.StatusInternalServerError {
					slog.Error("internal server error received in endpoint", "path", r.URL.Path, "error", err)
				}
				WriteJsonError(w, cerr.code, err.Error())
			} else {
				slog.Error("received non coded error from endpoint", "path", r.URL.Path, "error", err)
				WriteJsonError(w, http.StatusInternalServerError, internalErrorMessage)
			}
			return
		}

		if res == nil {
			res = struct{}{}
		}

		WriteJsonResponse(w, res)
	}
}

const internalErrorMessage = "Internal server error"

func WriteJsonResponse(w http.ResponseWriter, data interface{}) {
	writeJson(w, http.StatusOK, data)
}

func WriteJsonError(w http.ResponseWriter, code int, message string) {
	writeJson(w, code, api.ErrorResponse{Error: message})
}

func writeJson(w http.ResponseWriter, code int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("error serializing response body", "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(append(body, '\n')); err != nil {
		slog.Error("error writing response body", "error", err)
	}
}
