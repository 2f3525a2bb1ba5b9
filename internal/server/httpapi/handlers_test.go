package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metco-eng/fieldvault/internal/common"
	"github.com/metco-eng/fieldvault/internal/logging"
	"github.com/metco-eng/fieldvault/internal/server/models"
	"github.com/metco-eng/fieldvault/internal/server/services"
	"github.com/metco-eng/fieldvault/internal/staging"
	"github.com/metco-eng/fieldvault/internal/workbook"
)

type fakeSearch struct {
	result *services.SearchResult
	row    map[string]string
	err    error
}

func (f *fakeSearch) Search(ctx context.Context, query string) (*services.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeSearch) GetRow(ctx context.Context, kind models.Kind, sheetName string, rowIndex int) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.row, nil
}

type fakeSubmitter struct {
	got    *services.Submission
	result *services.SubmitResult
	rec    *models.Record
	err    error
}

func (f *fakeSubmitter) Submit(ctx context.Context, sub *services.Submission) (*services.SubmitResult, error) {
	f.got = sub
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeSubmitter) GetRecord(ctx context.Context, id int64) (*models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rec, nil
}

type fakeCatalog struct {
	list []models.ArchiveInfo
	arch *models.Archive
	err  error
}

func (f *fakeCatalog) List(ctx context.Context, query string) ([]models.ArchiveInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeCatalog) GetByID(ctx context.Context, id int64) (*models.Archive, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.arch, nil
}

func (f *fakeCatalog) GetByName(ctx context.Context, filename string) (*models.Archive, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.arch, nil
}

type apiFixture struct {
	srv       *httptest.Server
	search    *fakeSearch
	submitter *fakeSubmitter
	catalog   *fakeCatalog
	area      *staging.Area
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	area, err := staging.New(filepath.Join(t.TempDir(), "Images"))
	require.NoError(t, err)

	f := &apiFixture{
		search:    &fakeSearch{},
		submitter: &fakeSubmitter{},
		catalog:   &fakeCatalog{},
		area:      area,
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewHandler(f.search, f.submitter, f.catalog, area, logger)
	f.srv = httptest.NewServer(h.Routes())
	t.Cleanup(f.srv.Close)
	return f
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	resp, err := http.Get(f.srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestSearch(t *testing.T) {
	f := newAPIFixture(t)
	f.search.result = &services.SearchResult{
		PMMatches: []workbook.RowMatch{
			{SheetName: "Schedule", RowIndex: 2, Data: map[string]string{"Work Order": "WO-1"}},
		},
	}

	resp, err := http.Post(f.srv.URL+"/api/v1/search", "application/json",
		strings.NewReader(`{"query":"WO-1"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got services.SearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.PMMatches, 1)
	require.Equal(t, "Schedule", got.PMMatches[0].SheetName)
}

func TestSearch_BadBody(t *testing.T) {
	f := newAPIFixture(t)

	resp, err := http.Post(f.srv.URL+"/api/v1/search", "application/json",
		strings.NewReader("not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRow(t *testing.T) {
	f := newAPIFixture(t)
	f.search.row = map[string]string{"Asset": "A-100"}

	resp, err := http.Get(f.srv.URL + "/api/v1/rows/Asset/Pumps/0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "A-100", got["Asset"])
}

func TestGetRow_UnknownKind(t *testing.T) {
	f := newAPIFixture(t)

	resp, err := http.Get(f.srv.URL + "/api/v1/rows/Bogus/Pumps/0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRow_NotFound(t *testing.T) {
	f := newAPIFixture(t)
	f.search.err = common.ErrorNotFound

	resp, err := http.Get(f.srv.URL + "/api/v1/rows/PM/Schedule/99")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateRecord_StreamsOrderedFieldsAndStagesFiles(t *testing.T) {
	f := newAPIFixture(t)
	f.submitter.result = &services.SubmitResult{RecordID: 7, ArchiveID: 11, ZipFilename: "x.zip"}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("kind", "PM"))
	require.NoError(t, mw.WriteField("sheet_name", "Schedule"))
	require.NoError(t, mw.WriteField("row_index", "3"))
	require.NoError(t, mw.WriteField("field_Work Order", "WO-9"))
	require.NoError(t, mw.WriteField("field_Location", "Bldg 7"))
	require.NoError(t, mw.WriteField("notes_text", "all good"))

	fw, err := mw.CreateFormFile("before_images", "before one.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)

	// Disallowed extension: skipped, not an error.
	fw, err = mw.CreateFormFile("after_images", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("text"))
	require.NoError(t, err)

	require.NoError(t, mw.Close())

	resp, err := http.Post(f.srv.URL+"/api/v1/records", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got services.SubmitResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "x.zip", got.ZipFilename)

	sub := f.submitter.got
	require.NotNil(t, sub)
	require.Equal(t, models.KindPM, sub.Kind)
	require.Equal(t, "Schedule", sub.SheetName)
	require.Equal(t, 3, sub.RowIndex)
	require.Equal(t, "all good", sub.NotesText)

	// Submission order of the field pairs is preserved.
	require.Len(t, sub.Pairs, 2)
	require.Equal(t, "field_Work Order", sub.Pairs[0].Key)
	require.Equal(t, "field_Location", sub.Pairs[1].Key)

	// The allowed file got staged with the sanitized-name convention, the
	// txt one was dropped.
	require.Len(t, sub.Staged.Before, 1)
	require.True(t, strings.HasSuffix(sub.Staged.Before[0], "_before_one.png"))
	require.Empty(t, sub.Staged.After)

	content, err := os.ReadFile(f.area.Path(sub.Staged.Before[0]))
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), content)
}

func TestCreateRecord_MissingKind(t *testing.T) {
	f := newAPIFixture(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("sheet_name", "Schedule"))
	require.NoError(t, mw.WriteField("row_index", "3"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(f.srv.URL+"/api/v1/records", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Nil(t, f.submitter.got)
}

func TestCreateRecord_NotMultipart(t *testing.T) {
	f := newAPIFixture(t)

	resp, err := http.Post(f.srv.URL+"/api/v1/records", "application/json",
		strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRecord(t *testing.T) {
	f := newAPIFixture(t)
	f.submitter.rec = &models.Record{
		ID:        7,
		Kind:      models.KindPM,
		SheetName: "Schedule",
		RowIndex:  3,
		Fields: models.Fields{
			{Name: "Work Order", Value: "WO-9"},
			{Name: "Location", Value: "Bldg 7"},
		},
	}

	resp, err := http.Get(f.srv.URL + "/api/v1/records/7")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(b), `"kind":"PM"`)
	// Ordered field bag: Work Order serializes before Location.
	require.Less(t,
		strings.Index(string(b), "Work Order"),
		strings.Index(string(b), "Location"))
}

func TestGetRecord_NotFound(t *testing.T) {
	f := newAPIFixture(t)
	f.submitter.err = common.ErrorNotFound

	resp, err := http.Get(f.srv.URL + "/api/v1/records/424242")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListArchives(t *testing.T) {
	f := newAPIFixture(t)
	f.catalog.list = []models.ArchiveInfo{{ID: 2, Filename: "b.zip"}, {ID: 1, Filename: "a.zip"}}

	resp, err := http.Get(f.srv.URL + "/api/v1/archives?q=zip")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []models.ArchiveInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 2)
	require.Equal(t, int64(2), got[0].ID)
}

func TestListArchives_EmptyIsJSONArray(t *testing.T) {
	f := newAPIFixture(t)

	resp, err := http.Get(f.srv.URL + "/api/v1/archives")
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "[]", strings.TrimSpace(string(b)))
}

func TestGetArchive_Download(t *testing.T) {
	f := newAPIFixture(t)
	f.catalog.arch = &models.Archive{ID: 5, Filename: "WO1_x.zip", Content: []byte("zipbytes")}

	resp, err := http.Get(f.srv.URL + "/api/v1/archives/5")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), `filename="WO1_x.zip"`)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, []byte("zipbytes"), b)
}

func TestGetArchive_BadID(t *testing.T) {
	f := newAPIFixture(t)

	resp, err := http.Get(f.srv.URL + "/api/v1/archives/notanumber")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetArchiveByName_NotFound(t *testing.T) {
	f := newAPIFixture(t)
	f.catalog.err = common.ErrorNotFound

	resp, err := http.Get(f.srv.URL + "/api/v1/archives/name/missing.zip")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
