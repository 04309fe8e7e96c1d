package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/TsepisoMotloung/360-Rating/internal/app"
	"github.com/TsepisoMotloung/360-Rating/internal/domain"
	"github.com/TsepisoMotloung/360-Rating/internal/repository/csvfile"
	"github.com/TsepisoMotloung/360-Rating/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const uploadCSV = "Ratee Email ,Rater Email\n" +
	"bob@co.com,alice@co.com\n" +
	",dave@co.com\n" +
	",Rater Email\n" +
	"carol@co.com,\n" +
	",erin@co.com\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repos := app.NewRepositories(csvfile.DefaultColumns())
	converter := service.NewConverterService(repos.Artifacts, csvfile.DefaultRaterColumn, zap.NewNop())
	defaults := domain.RenderOptions{
		Dialect:  domain.DialectMSSQL,
		Quoting:  domain.QuotingEscape,
		PeriodID: service.DefaultPeriodID,
	}

	srv := httptest.NewServer(NewRouter(repos, converter, defaults, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestConvert_SQLFromBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Post(srv.URL+"/assignments/convert?dialect=postgres", "text/csv", strings.NewReader(uploadCSV))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3", resp.Header.Get("X-Assignments-Total"))
	assert.Equal(t, "0", resp.Header.Get("X-Assignments-Orphans"))

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "DO $import$")
	assert.Contains(t, buf.String(), "('erin@co.com', 'carol@co.com')")
}

func TestConvert_JSONFromMultipart(t *testing.T) {
	srv := newTestServer(t)

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, err := mw.CreateFormFile("file", "guide.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(uploadCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := srv.Client().Post(srv.URL+"/assignments/convert?format=json&period_id=12", mw.FormDataContentType(), &form)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var records []domain.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	assert.Equal(t, []domain.Record{
		{RaterEmail: "alice@co.com", RaterUserID: "alice", RateeEmail: "bob@co.com", RateeUserID: "bob", PeriodID: 12},
		{RaterEmail: "dave@co.com", RaterUserID: "dave", RateeEmail: "bob@co.com", RateeUserID: "bob", PeriodID: 12},
		{RaterEmail: "erin@co.com", RaterUserID: "erin", RateeEmail: "carol@co.com", RateeUserID: "carol", PeriodID: 12},
	}, records)
}

func TestConvert_Errors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   ErrorCode
	}{
		{"schema mismatch", "", "Email,Manager\na@co.com,b@co.com\n", http.StatusBadRequest, CodeSchemaMismatch},
		{"empty body", "", "", http.StatusBadRequest, CodeEmptyInput},
		{"unknown dialect", "?dialect=oracle", uploadCSV, http.StatusBadRequest, CodeUnknownDialect},
		{"unknown quoting", "?quoting=html", uploadCSV, http.StatusBadRequest, CodeUnknownQuoting},
		{"unknown format", "?format=xml", uploadCSV, http.StatusBadRequest, CodeUnknownFormat},
		{"bad period", "?period_id=first", uploadCSV, http.StatusBadRequest, CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := srv.Client().Post(srv.URL+"/assignments/convert"+tt.query, "text/csv", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.status, resp.StatusCode)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestConvert_MultipartWithoutFile(t *testing.T) {
	srv := newTestServer(t)

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	require.NoError(t, mw.WriteField("periodId", "1"))
	require.NoError(t, mw.Close())

	resp, err := srv.Client().Post(srv.URL+"/assignments/convert", mw.FormDataContentType(), &form)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConvert_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/assignments/convert")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
}

func TestFromDomainError_Unknown(t *testing.T) {
	httpErr := FromDomainError(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Nil(t, httpErr.Body)
}

func TestConvert_UploadTooLarge(t *testing.T) {
	srv := newTestServer(t)

	body := "Ratee Email ,Rater Email\n" + strings.Repeat("bob@co.com,alice@co.com\n", maxUploadSize/24+1000)

	resp, err := srv.Client().Post(srv.URL+"/assignments/convert", "text/csv", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	var errBody ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, CodeTooLarge, errBody.Error.Code)
}

func TestFromDomainError_MaxBytes(t *testing.T) {
	err := fmt.Errorf("read csv: %w", &http.MaxBytesError{Limit: maxUploadSize})

	httpErr := FromDomainError(err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, httpErr.Status)
	require.NotNil(t, httpErr.Body)
	assert.Equal(t, CodeTooLarge, httpErr.Body.Error.Code)
}
