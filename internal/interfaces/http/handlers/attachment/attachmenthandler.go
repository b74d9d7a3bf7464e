package attachment

import (
	stderrors "errors"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/application/attachment/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

// FormField is the multipart field carrying uploaded files.
const FormField = "files"

// multipartOverhead allows for part headers and boundaries on top of the
// file payloads.
const multipartOverhead = 1 << 20

type AttachmentHandler struct {
	uploadUC usecases.UploadAttachmentsExecutor
	listUC   usecases.ListAttachmentsExecutor
	getUC    usecases.GetAttachmentExecutor
	streamUC usecases.StreamAttachmentExecutor
	deleteUC usecases.DeleteAttachmentExecutor
	// maxRequestBytes caps the whole upload request body.
	maxRequestBytes int64
	logger          logger.Interface
}

// NewAttachmentHandler limits upload bodies to maxFiles files of maxFileSize
// bytes each.
func NewAttachmentHandler(
	uploadUC usecases.UploadAttachmentsExecutor,
	listUC usecases.ListAttachmentsExecutor,
	getUC usecases.GetAttachmentExecutor,
	streamUC usecases.StreamAttachmentExecutor,
	deleteUC usecases.DeleteAttachmentExecutor,
	maxFileSize int64,
	maxFiles int,
	logger logger.Interface,
) *AttachmentHandler {
	return &AttachmentHandler{
		uploadUC:        uploadUC,
		listUC:          listUC,
		getUC:           getUC,
		streamUC:        streamUC,
		deleteUC:        deleteUC,
		maxRequestBytes: maxFileSize*int64(maxFiles) + multipartOverhead,
		logger:          logger,
	}
}

// UploadAttachments godoc
// @Summary Upload attachments
// @Description Upload one or more files to a ticket. Either every file is stored or none is.
// @Security Bearer
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Ticket ID"
// @Param files formData file true "Files to upload"
// @Success 201 {object} utils.APIResponse{data=[]dto.AttachmentDTO} "Files uploaded successfully"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 413 {object} utils.APIResponse "File too large"
// @Failure 415 {object} utils.APIResponse "Unsupported file type"
// @Router /tickets/{id}/attachments [post]
func (h *AttachmentHandler) UploadAttachments(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxRequestBytes)
	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			utils.ErrorResponseWithError(c, errors.NewFileTooLargeError("upload", h.maxRequestBytes))
			return
		}
		h.logger.Warnw("invalid multipart upload", "error", err, "ticket_id", ticketID)
		utils.ErrorResponseWithError(c, errors.NewValidationError("expected multipart/form-data with a files field"))
		return
	}
	defer func() {
		_ = form.RemoveAll()
	}()

	headers := form.File[FormField]
	files := make([]usecases.UploadFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.logger.Errorw("failed to open uploaded file", "error", err, "file", fh.Filename)
			utils.ErrorResponseWithError(c, errors.NewInternalError("failed to read upload"))
			return
		}
		opened = append(opened, f)
		files = append(files, usecases.UploadFile{Name: fh.Filename, Size: fh.Size, Reader: f})
	}

	result, err := h.uploadUC.Execute(c.Request.Context(), usecases.UploadAttachmentsCommand{
		TicketID: ticketID,
		Files:    files,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Files uploaded successfully")
}

// ListAttachments godoc
// @Summary List ticket attachments
// @Security Bearer
// @Tags attachments
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.AttachmentDTO}
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Ticket not found"
// @Router /tickets/{id}/attachments [get]
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListAttachmentsQuery{
		TicketID: ticketID,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetAttachment godoc
// @Summary Get attachment metadata
// @Security Bearer
// @Tags attachments
// @Produce json
// @Param id path int true "Attachment ID"
// @Success 200 {object} utils.APIResponse{data=dto.AttachmentDTO}
// @Failure 404 {object} utils.APIResponse "Attachment not found"
// @Router /attachments/{id} [get]
func (h *AttachmentHandler) GetAttachment(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	attachmentID, err := utils.ParseUintParam(c, "id", "attachment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetAttachmentQuery{
		AttachmentID: attachmentID,
		Actor:        actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Download godoc
// @Summary Download attachment
// @Security Bearer
// @Tags attachments
// @Produce octet-stream
// @Param id path int true "Attachment ID"
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse "Attachment not found"
// @Router /attachments/{id}/download [get]
func (h *AttachmentHandler) Download(c *gin.Context) {
	h.stream(c, usecases.VariantDownload)
}

// Preview godoc
// @Summary Preview attachment inline
// @Description Images, PDFs and text files only.
// @Security Bearer
// @Tags attachments
// @Param id path int true "Attachment ID"
// @Success 200 {file} file
// @Failure 400 {object} utils.APIResponse "Preview not available"
// @Router /attachments/{id}/preview [get]
func (h *AttachmentHandler) Preview(c *gin.Context) {
	h.stream(c, usecases.VariantPreview)
}

// Thumbnail godoc
// @Summary Attachment thumbnail
// @Security Bearer
// @Tags attachments
// @Produce jpeg
// @Param id path int true "Attachment ID"
// @Success 200 {file} file
// @Failure 400 {object} utils.APIResponse "Preview not available"
// @Router /attachments/{id}/thumbnail [get]
func (h *AttachmentHandler) Thumbnail(c *gin.Context) {
	h.stream(c, usecases.VariantThumbnail)
}

func (h *AttachmentHandler) stream(c *gin.Context, variant usecases.StreamVariant) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	attachmentID, err := utils.ParseUintParam(c, "id", "attachment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	file, err := h.streamUC.Execute(c.Request.Context(), usecases.StreamAttachmentQuery{
		AttachmentID: attachmentID,
		Variant:      variant,
		Actor:        actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer file.Reader.Close()

	disposition := "attachment"
	if file.Inline {
		disposition = "inline"
	}
	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, file.Reader, map[string]string{
		"Content-Disposition":    mime.FormatMediaType(disposition, map[string]string{"filename": file.FileName}),
		"Cache-Control":          "private, max-age=300",
		"X-Content-Type-Options": "nosniff",
	})
}

// DeleteAttachment godoc
// @Summary Delete attachment
// @Description The uploader or an admin may delete an attachment.
// @Security Bearer
// @Tags attachments
// @Param id path int true "Attachment ID"
// @Success 204 "Attachment deleted"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Attachment not found"
// @Router /attachments/{id} [delete]
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	attachmentID, err := utils.ParseUintParam(c, "id", "attachment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteAttachmentCommand{
		AttachmentID: attachmentID,
		Actor:        actor,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
