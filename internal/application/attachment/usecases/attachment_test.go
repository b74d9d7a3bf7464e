package usecases

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/application/attachment/services"
	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x10\x00\x00\x00\x10\x08\x02\x00\x00\x00")

type uploadFixture struct {
	repo      *mockAttachmentRepository
	storage   *memoryStorage
	publisher *mockPublisher
	uc        *UploadAttachmentsUseCase
}

func newUploadFixture(t *testing.T, maxSize int64) *uploadFixture {
	f := &uploadFixture{repo: newAttachmentRepo(), storage: newMemoryStorage(), publisher: &mockPublisher{}}
	log := logger.NewNopLogger()
	f.uc = NewUploadAttachmentsUseCase(
		newTicketRepo(t), f.repo,
		services.NewFileValidationService(maxSize, nil),
		services.NewFileProcessingService(f.storage, stubImages{}, 0, log),
		mockTxRunner{}, f.publisher, 2, log,
	)
	return f
}

func file(name string, content []byte) UploadFile {
	return UploadFile{Name: name, Size: int64(len(content)), Reader: bytes.NewReader(content)}
}

func TestUploadAttachmentsUseCase_Execute(t *testing.T) {
	f := newUploadFixture(t, 1024)

	result, err := f.uc.Execute(context.Background(), UploadAttachmentsCommand{
		TicketID: 7,
		Files:    []UploadFile{file("screen.png", pngBytes), file("notes.txt", []byte("hello"))},
		Actor:    creator,
	})

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "image/png", result[0].MimeType)
	assert.True(t, result[0].HasThumbnail)
	assert.Equal(t, 800, *result[0].Width)
	assert.Equal(t, "/api/attachments/200/thumbnail", result[0].ThumbnailURL)
	assert.False(t, result[1].HasThumbnail)
	assert.Equal(t, creator.UserID, result[1].UploaderID)
	assert.Len(t, f.storage.files, 3)
	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, attachment.EventAttachmentUploaded, f.publisher.events[0].GetEventType())
}

func TestUploadAttachmentsUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		files    []UploadFile
		actorID  uint
		wantType errors.ErrorType
	}{
		{name: "no files", wantType: errors.ErrorTypeValidation},
		{name: "too many files", files: []UploadFile{
			file("a.txt", []byte("a")), file("b.txt", []byte("b")), file("c.txt", []byte("c")),
		}, wantType: errors.ErrorTypeValidation},
		{name: "declared too large", files: []UploadFile{{Name: "a.txt", Size: 4096, Reader: strings.NewReader("a")}},
			wantType: errors.ErrorTypeFileTooLarge},
		{name: "content too large", files: []UploadFile{{Name: "a.txt", Size: 1, Reader: bytes.NewReader(bytes.Repeat([]byte("a"), 2000))}},
			wantType: errors.ErrorTypeFileTooLarge},
		{name: "one bad file rejects all", files: []UploadFile{file("ok.txt", []byte("ok")), file("run.exe", []byte("MZ"))},
			wantType: errors.ErrorTypeUnsupportedFileType},
		{name: "invisible ticket", files: []UploadFile{file("a.txt", []byte("a"))}, actorID: stranger.UserID,
			wantType: errors.ErrorTypeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUploadFixture(t, 1024)
			actor := creator
			if tt.actorID == stranger.UserID {
				actor = stranger
			}

			_, err := f.uc.Execute(context.Background(), UploadAttachmentsCommand{TicketID: 7, Files: tt.files, Actor: actor})

			assert.True(t, errors.HasType(err, tt.wantType), "unexpected error %v", err)
			assert.Empty(t, f.storage.files)
			assert.Empty(t, f.repo.created)
		})
	}
}

func TestUploadAttachmentsUseCase_Execute_DiscardsFilesWhenSaveFails(t *testing.T) {
	f := newUploadFixture(t, 1024)
	f.repo.createErr = assert.AnError

	_, err := f.uc.Execute(context.Background(), UploadAttachmentsCommand{
		TicketID: 7, Files: []UploadFile{file("screen.png", pngBytes)}, Actor: agent,
	})

	assert.True(t, errors.HasType(err, errors.ErrorTypeInternal))
	assert.Empty(t, f.storage.files)
	assert.Len(t, f.storage.deleted, 2)
	assert.Empty(t, f.publisher.events)
}

func TestListAndGetAttachments(t *testing.T) {
	repo := newAttachmentRepo()
	storage := newMemoryStorage()
	storeAttachment(t, repo, storage, 1, creator.UserID, "application/pdf", false)
	tickets := newTicketRepo(t)
	log := logger.NewNopLogger()

	list, err := NewListAttachmentsUseCase(tickets, repo, log).Execute(context.Background(), ListAttachmentsQuery{TicketID: 7, Actor: agent})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/api/attachments/1/preview", list[0].PreviewURL)

	get := NewGetAttachmentUseCase(tickets, repo, log)
	got, err := get.Execute(context.Background(), GetAttachmentQuery{AttachmentID: 1, Actor: creator})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", got.MimeType)

	_, err = get.Execute(context.Background(), GetAttachmentQuery{AttachmentID: 1, Actor: stranger})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = get.Execute(context.Background(), GetAttachmentQuery{AttachmentID: 99, Actor: admin})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestStreamAttachmentUseCase_Execute(t *testing.T) {
	repo := newAttachmentRepo()
	storage := newMemoryStorage()
	storeAttachment(t, repo, storage, 1, creator.UserID, "image/png", true)
	storeAttachment(t, repo, storage, 2, creator.UserID, "application/zip", false)
	uc := NewStreamAttachmentUseCase(newTicketRepo(t), repo, storage, services.NewFilePreviewService(), logger.NewNopLogger())
	ctx := context.Background()

	stream, err := uc.Execute(ctx, StreamAttachmentQuery{AttachmentID: 1, Variant: VariantThumbnail, Actor: creator})
	require.NoError(t, err)
	body, _ := io.ReadAll(stream.Reader)
	assert.Equal(t, "jpg", string(body))
	assert.Equal(t, "image/jpeg", stream.ContentType)
	assert.True(t, stream.Inline)

	stream, err = uc.Execute(ctx, StreamAttachmentQuery{AttachmentID: 1, Variant: VariantDownload, Actor: agent})
	require.NoError(t, err)
	assert.False(t, stream.Inline)
	assert.Equal(t, int64(4), stream.Size)

	_, err = uc.Execute(ctx, StreamAttachmentQuery{AttachmentID: 2, Variant: VariantPreview, Actor: creator})
	assert.True(t, errors.HasType(err, errors.ErrorTypePreviewNotAvailable))

	delete(storage.files, "2024/03/2")
	_, err = uc.Execute(ctx, StreamAttachmentQuery{AttachmentID: 2, Variant: VariantDownload, Actor: creator})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDeleteAttachmentUseCase_Execute(t *testing.T) {
	repo := newAttachmentRepo()
	storage := newMemoryStorage()
	storeAttachment(t, repo, storage, 1, creator.UserID, "image/png", true)
	publisher := &mockPublisher{}
	uc := NewDeleteAttachmentUseCase(newTicketRepo(t), repo, storage, publisher, logger.NewNopLogger())

	err := uc.Execute(context.Background(), DeleteAttachmentCommand{AttachmentID: 1, Actor: agent})
	assert.True(t, errors.IsForbiddenError(err), "agents may only delete their own uploads")

	err = uc.Execute(context.Background(), DeleteAttachmentCommand{AttachmentID: 1, Actor: creator})
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, repo.deleted)
	assert.ElementsMatch(t, []string{"2024/03/1", "2024/03/1_thumb.jpg"}, storage.deleted)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, attachment.EventAttachmentDeleted, publisher.events[0].GetEventType())
}
