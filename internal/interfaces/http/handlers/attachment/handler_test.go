package attachment

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/application/attachment/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/attachment/usecases"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers/testutil"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
)

type uploadedFile struct {
	name    string
	size    int64
	content string
}

type mockUploadUC struct {
	got    []uploadedFile
	ticket uint
	err    error
}

func (m *mockUploadUC) Execute(_ context.Context, cmd usecases.UploadAttachmentsCommand) ([]dto.AttachmentDTO, error) {
	m.ticket = cmd.TicketID
	out := make([]dto.AttachmentDTO, 0, len(cmd.Files))
	for i, f := range cmd.Files {
		data, err := io.ReadAll(f.Reader)
		if err != nil {
			return nil, err
		}
		m.got = append(m.got, uploadedFile{name: f.Name, size: f.Size, content: string(data)})
		out = append(out, dto.AttachmentDTO{ID: uint(i + 1), TicketID: cmd.TicketID, OriginalName: f.Name})
	}
	if m.err != nil {
		return nil, m.err
	}
	return out, nil
}

type mockListUC struct {
	result []dto.AttachmentDTO
	err    error
}

func (m *mockListUC) Execute(_ context.Context, _ usecases.ListAttachmentsQuery) ([]dto.AttachmentDTO, error) {
	return m.result, m.err
}

type mockGetUC struct {
	result *dto.AttachmentDTO
	err    error
}

func (m *mockGetUC) Execute(_ context.Context, _ usecases.GetAttachmentQuery) (*dto.AttachmentDTO, error) {
	return m.result, m.err
}

type trackingReader struct {
	io.Reader
	closed bool
}

func (r *trackingReader) Close() error {
	r.closed = true
	return nil
}

type mockStreamUC struct {
	got    usecases.StreamAttachmentQuery
	stream *usecases.FileStream
	err    error
}

func (m *mockStreamUC) Execute(_ context.Context, q usecases.StreamAttachmentQuery) (*usecases.FileStream, error) {
	m.got = q
	return m.stream, m.err
}

type mockDeleteUC struct {
	got usecases.DeleteAttachmentCommand
	err error
}

func (m *mockDeleteUC) Execute(_ context.Context, cmd usecases.DeleteAttachmentCommand) error {
	m.got = cmd
	return m.err
}

type testDeps struct {
	upload *mockUploadUC
	list   *mockListUC
	get    *mockGetUC
	stream *mockStreamUC
	delete *mockDeleteUC
}

func newTestHandler(deps testDeps) *AttachmentHandler {
	return NewAttachmentHandler(deps.upload, deps.list, deps.get, deps.stream, deps.delete, 1024, 2, testutil.NewMockLogger())
}

func TestAttachmentHandler_Upload(t *testing.T) {
	mockUC := &mockUploadUC{}
	handler := newTestHandler(testDeps{upload: mockUC})

	c, w := testutil.NewMultipartContext(http.MethodPost, "/api/tickets/7/attachments",
		testutil.UploadFile{Field: FormField, Name: "error.log", Content: []byte("panic: nil map")},
		testutil.UploadFile{Field: FormField, Name: "notes.txt", Content: []byte("steps")},
	)
	testutil.SetAuthContext(c, 10, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "7")

	handler.UploadAttachments(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(7), mockUC.ticket)
	require.Len(t, mockUC.got, 2)
	assert.Equal(t, uploadedFile{name: "error.log", size: 14, content: "panic: nil map"}, mockUC.got[0])
	assert.Equal(t, "notes.txt", mockUC.got[1].name)
}

func TestAttachmentHandler_Upload_NotMultipart(t *testing.T) {
	handler := newTestHandler(testDeps{upload: &mockUploadUC{}})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/tickets/7/attachments", map[string]string{"file": "x"})
	testutil.SetAuthContext(c, 10, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "7")

	handler.UploadAttachments(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttachmentHandler_Upload_BodyTooLarge(t *testing.T) {
	mockUC := &mockUploadUC{}
	handler := newTestHandler(testDeps{upload: mockUC})
	handler.maxRequestBytes = 512

	c, w := testutil.NewMultipartContext(http.MethodPost, "/api/tickets/7/attachments",
		testutil.UploadFile{Field: FormField, Name: "big.txt", Content: []byte(strings.Repeat("a", 4096))},
	)
	testutil.SetAuthContext(c, 10, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "7")

	handler.UploadAttachments(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, mockUC.got)
}

func TestAttachmentHandler_Upload_UseCaseError(t *testing.T) {
	handler := newTestHandler(testDeps{upload: &mockUploadUC{err: errors.NewUnsupportedFileTypeError("setup.exe")}})

	c, w := testutil.NewMultipartContext(http.MethodPost, "/api/tickets/7/attachments",
		testutil.UploadFile{Field: FormField, Name: "setup.exe", Content: []byte("MZ")},
	)
	testutil.SetAuthContext(c, 10, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "7")

	handler.UploadAttachments(c)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestAttachmentHandler_ListAndGet(t *testing.T) {
	handler := newTestHandler(testDeps{
		list: &mockListUC{result: []dto.AttachmentDTO{{ID: 1}, {ID: 2}}},
		get:  &mockGetUC{err: errors.NewNotFoundError("attachment not found")},
	})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/tickets/7/attachments", nil)
	testutil.SetAuthContext(c, 10, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "7")
	handler.ListAttachments(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/attachments/9", nil)
	testutil.SetAuthContext(c, 10, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "9")
	handler.GetAttachment(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttachmentHandler_Download(t *testing.T) {
	reader := &trackingReader{Reader: strings.NewReader("%PDF-1.4")}
	mockUC := &mockStreamUC{stream: &usecases.FileStream{
		Reader:      reader,
		ContentType: "application/pdf",
		FileName:    "invoice march.pdf",
		Size:        8,
	}}
	handler := newTestHandler(testDeps{stream: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/attachments/9/download", nil)
	testutil.SetAuthContext(c, 10, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "9")

	handler.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecases.VariantDownload, mockUC.got.Variant)
	assert.Equal(t, "%PDF-1.4", w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice march.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, reader.closed)
}

func TestAttachmentHandler_PreviewIsInline(t *testing.T) {
	mockUC := &mockStreamUC{stream: &usecases.FileStream{
		Reader:      &trackingReader{Reader: strings.NewReader("jpeg")},
		ContentType: "image/jpeg",
		FileName:    "thumbnail.jpg",
		Size:        -1,
		Inline:      true,
	}}
	handler := newTestHandler(testDeps{stream: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/attachments/9/thumbnail", nil)
	testutil.SetAuthContext(c, 10, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "9")

	handler.Thumbnail(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecases.VariantThumbnail, mockUC.got.Variant)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "inline"))
}

func TestAttachmentHandler_PreviewNotAvailable(t *testing.T) {
	handler := newTestHandler(testDeps{stream: &mockStreamUC{err: errors.NewPreviewNotAvailableError("application/zip")}})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/attachments/9/preview", nil)
	testutil.SetAuthContext(c, 10, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "9")

	handler.Preview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttachmentHandler_Delete(t *testing.T) {
	mockUC := &mockDeleteUC{}
	handler := newTestHandler(testDeps{delete: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/attachments/9", nil)
	testutil.SetAuthContext(c, 10, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "9")

	handler.DeleteAttachment(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(9), mockUC.got.AttachmentID)
	assert.Equal(t, uint(10), mockUC.got.Actor.UserID)
}
