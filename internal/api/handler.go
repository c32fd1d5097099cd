// Package api is the HTTP boundary of the converter.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/a3tai/pdf-records/internal/archive"
	"github.com/a3tai/pdf-records/internal/convert"
	"github.com/a3tai/pdf-records/internal/logger"
	"github.com/a3tai/pdf-records/internal/pdf"
)

// Form and query names accepted by the converter endpoint.
const (
	FileField       = "arquivo"
	FileFieldAlias  = "file"
	BatchParam      = "bloco"
	BatchParamAlias = "batch_size"
)

// bodySlack covers multipart framing and small form fields around the file.
const bodySlack = 1 << 20

// Converter runs conversions for the handler.
type Converter interface {
	Convert(ctx context.Context, up convert.Upload) (*convert.Result, error)
	ValidateFilename(name string) error
	BatchSize() int
}

// Handler serves the converter endpoints.
type Handler struct {
	conv        Converter
	maxFileSize int64
	version     string
}

// NewHandler creates a handler. A maxFileSize of zero leaves the request
// body unbounded.
func NewHandler(conv Converter, maxFileSize int64, version string) *Handler {
	return &Handler{
		conv:        conv,
		maxFileSize: maxFileSize,
		version:     version,
	}
}

// Routes returns the endpoint mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /converter", h.Convert)
	mux.HandleFunc("GET /healthz", h.Health)
	return mux
}

// Convert handles POST /converter. The upload is streamed straight into the
// request's working area; nothing is written before the filename passes
// validation.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+bodySlack)
	}

	part, err := filePart(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer part.Close()

	if err := h.conv.ValidateFilename(part.FileName()); err != nil {
		h.fail(w, r, err)
		return
	}

	batchSize, err := convert.ParseBatchSize(batchSizeParam(r), h.conv.BatchSize())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.conv.Convert(r.Context(), convert.Upload{
		Filename:  part.FileName(),
		Body:      part,
		BatchSize: batchSize,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", archive.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Archive.Name))
	w.Header().Set("Content-Length", strconv.Itoa(res.Archive.Size()))
	w.Header().Set("X-Record-Count", strconv.Itoa(res.Records))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, res.Archive.Reader()); err != nil {
		log := logger.FromContext(r.Context())
		log.Warn().Err(err).Msg("Failed to send archive")
	}
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		err = fmt.Errorf("%w: request body over %d bytes", pdf.ErrFileTooLarge, mbe.Limit)
	}

	ce := convert.Classify(err)
	status := ce.HTTPStatus()

	log := logger.FromContext(r.Context())
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(ce.Err).
		Str("code", ce.Kind.String()).
		Int("status", status).
		Msg(ce.Message)

	WriteError(w, status, ce.Kind.String(), ce.Message)
}

var (
	errNoFile     = &convert.Error{Kind: convert.KindMissingInput, Message: "no file was uploaded"}
	errNoFilename = &convert.Error{Kind: convert.KindInvalidFormat, Message: "the uploaded file has no name; only .pdf files are accepted"}
)

// filePart returns the first multipart part sent under FileField or
// FileFieldAlias. A part without a filename cannot carry a .pdf extension and
// is rejected as an invalid format.
func filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, errNoFile
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errNoFile
		}
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return nil, err
			}
			return nil, errNoFile
		}

		name := part.FormName()
		if name != FileField && name != FileFieldAlias {
			part.Close()
			continue
		}
		if part.FileName() == "" {
			part.Close()
			return nil, errNoFilename
		}
		return part, nil
	}
}

func batchSizeParam(r *http.Request) string {
	q := r.URL.Query()
	if raw := q.Get(BatchParam); raw != "" {
		return raw
	}
	return q.Get(BatchParamAlias)
}
