package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/TsepisoMotloung/360-Rating/internal/app"
	"github.com/TsepisoMotloung/360-Rating/internal/domain"
)

const maxUploadSize = 10 << 20

// Health GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ConvertHandler обрабатывает загрузку CSV с назначениями.
type ConvertHandler struct {
	repos    *app.Repositories
	svc      app.ConverterService
	defaults domain.RenderOptions
	log      *zap.Logger
}

// NewConvertHandler создаёт обработчик конвертации.
func NewConvertHandler(
	repos *app.Repositories,
	svc app.ConverterService,
	defaults domain.RenderOptions,
	log *zap.Logger,
) *ConvertHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConvertHandler{
		repos:    repos,
		svc:      svc,
		defaults: defaults,
		log:      log,
	}
}

// Convert POST /assignments/convert?format=sql|json&dialect=...&quoting=...&period_id=...
// CSV принимается телом запроса или полем file в multipart-форме.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()

	format := domain.FormatSQL
	if v := q.Get("format"); v != "" {
		f, err := domain.ParseFormat(v)
		if err != nil {
			WriteError(w, err)
			return
		}
		format = f
	}

	opts, err := h.renderOptions(q.Get("dialect"), q.Get("quoting"), q.Get("period_id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	body, closeBody, err := uploadedCSV(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer closeBody()

	conv, err := h.svc.Convert(r.Context(), h.repos.Stream(body), opts)
	if err != nil {
		if FromDomainError(err).Status == http.StatusInternalServerError {
			h.log.Error("convert failed", zap.Error(err))
		}
		WriteError(w, err)
		return
	}

	w.Header().Set("X-Assignments-Total", strconv.Itoa(len(conv.Extraction.Assignments)))
	w.Header().Set("X-Assignments-Orphans", strconv.Itoa(len(conv.Extraction.Orphans)))

	switch format {
	case domain.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(conv.JSON)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, conv.SQL)
	}
}

func (h *ConvertHandler) renderOptions(dialect, quoting, periodID string) (domain.RenderOptions, error) {
	opts := h.defaults

	if dialect != "" {
		d, err := domain.ParseDialect(dialect)
		if err != nil {
			return domain.RenderOptions{}, err
		}
		opts.Dialect = d
	}
	if quoting != "" {
		qm, err := domain.ParseQuoting(quoting)
		if err != nil {
			return domain.RenderOptions{}, err
		}
		opts.Quoting = qm
	}
	if periodID != "" {
		n, err := strconv.Atoi(periodID)
		if err != nil {
			return domain.RenderOptions{}, fmt.Errorf("%w: period_id must be an integer", errBadRequest)
		}
		opts.PeriodID = n
	}

	return opts, nil
}

// uploadedCSV отдаёт поток с CSV: файл из multipart-формы или тело запроса как есть.
func uploadedCSV(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: no file uploaded", errBadRequest)
	}
	return file, func() { _ = file.Close() }, nil
}
