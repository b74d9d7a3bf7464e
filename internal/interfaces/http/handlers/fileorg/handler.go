package fileorg

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/application/fileorganization/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Color       string `json:"color" binding:"max=7"`
}

type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"max=7"`
}

// SetCategoryRequest with a null category_id removes the category.
type SetCategoryRequest struct {
	CategoryID *uint `json:"category_id"`
}

// SetTagsRequest replaces the tag set. Unknown tag names are created.
type SetTagsRequest struct {
	Tags []string `json:"tags" binding:"max=20,dive,max=50"`
}

type Handler struct {
	listCategoriesUC usecases.ListCategoriesExecutor
	createCategoryUC usecases.CreateCategoryExecutor
	updateCategoryUC usecases.UpdateCategoryExecutor
	deleteCategoryUC usecases.DeleteCategoryExecutor
	listTagsUC       usecases.ListTagsExecutor
	createTagUC      usecases.CreateTagExecutor
	deleteTagUC      usecases.DeleteTagExecutor
	setCategoryUC    usecases.SetAttachmentCategoryExecutor
	setTagsUC        usecases.SetAttachmentTagsExecutor
	listFilesUC      usecases.ListOrganizedAttachmentsExecutor
	logger           logger.Interface
}

func NewHandler(
	listCategoriesUC usecases.ListCategoriesExecutor,
	createCategoryUC usecases.CreateCategoryExecutor,
	updateCategoryUC usecases.UpdateCategoryExecutor,
	deleteCategoryUC usecases.DeleteCategoryExecutor,
	listTagsUC usecases.ListTagsExecutor,
	createTagUC usecases.CreateTagExecutor,
	deleteTagUC usecases.DeleteTagExecutor,
	setCategoryUC usecases.SetAttachmentCategoryExecutor,
	setTagsUC usecases.SetAttachmentTagsExecutor,
	listFilesUC usecases.ListOrganizedAttachmentsExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		listCategoriesUC: listCategoriesUC,
		createCategoryUC: createCategoryUC,
		updateCategoryUC: updateCategoryUC,
		deleteCategoryUC: deleteCategoryUC,
		listTagsUC:       listTagsUC,
		createTagUC:      createTagUC,
		deleteTagUC:      deleteTagUC,
		setCategoryUC:    setCategoryUC,
		setTagsUC:        setTagsUC,
		listFilesUC:      listFilesUC,
		logger:           logger,
	}
}

// ListCategories godoc
// @Summary List file categories
// @Security Bearer
// @Tags file-organization
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]dto.CategoryDTO}
// @Router /file-organization/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	result, err := h.listCategoriesUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateCategory godoc
// @Summary Create file category
// @Security Bearer
// @Tags file-organization
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category"
// @Success 201 {object} utils.APIResponse{data=dto.CategoryDTO}
// @Failure 409 {object} utils.APIResponse "Category name already exists"
// @Router /file-organization/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createCategoryUC.Execute(c.Request.Context(), usecases.CreateCategoryCommand{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Actor:       actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Category created successfully")
}

// UpdateCategory godoc
// @Summary Update file category
// @Security Bearer
// @Tags file-organization
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body CategoryRequest true "Category"
// @Success 200 {object} utils.APIResponse{data=dto.CategoryDTO}
// @Failure 404 {object} utils.APIResponse "Category not found"
// @Router /file-organization/categories/{id} [put]
func (h *Handler) UpdateCategory(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	categoryID, err := utils.ParseUintParam(c, "id", "category")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateCategoryUC.Execute(c.Request.Context(), usecases.UpdateCategoryCommand{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Actor:       actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Category updated successfully", result)
}

// DeleteCategory godoc
// @Summary Delete file category
// @Description Attachments in the category become uncategorized.
// @Security Bearer
// @Tags file-organization
// @Param id path int true "Category ID"
// @Success 204 "Category deleted"
// @Router /file-organization/categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	categoryID, err := utils.ParseUintParam(c, "id", "category")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteCategoryUC.Execute(c.Request.Context(), usecases.DeleteCategoryCommand{
		CategoryID: categoryID,
		Actor:      actor,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// ListTags godoc
// @Summary List file tags
// @Security Bearer
// @Tags file-organization
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]dto.TagDTO}
// @Router /file-organization/tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	result, err := h.listTagsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateTag godoc
// @Summary Create file tag
// @Security Bearer
// @Tags file-organization
// @Accept json
// @Produce json
// @Param request body CreateTagRequest true "Tag"
// @Success 201 {object} utils.APIResponse{data=dto.TagDTO}
// @Failure 409 {object} utils.APIResponse "Tag already exists"
// @Router /file-organization/tags [post]
func (h *Handler) CreateTag(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	var req CreateTagRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTagUC.Execute(c.Request.Context(), usecases.CreateTagCommand{
		Name:  req.Name,
		Color: req.Color,
		Actor: actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Tag created successfully")
}

// DeleteTag godoc
// @Summary Delete file tag
// @Security Bearer
// @Tags file-organization
// @Param id path int true "Tag ID"
// @Success 204 "Tag deleted"
// @Router /file-organization/tags/{id} [delete]
func (h *Handler) DeleteTag(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	tagID, err := utils.ParseUintParam(c, "id", "tag")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTagUC.Execute(c.Request.Context(), usecases.DeleteTagCommand{
		TagID: tagID,
		Actor: actor,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// SetAttachmentCategory godoc
// @Summary Categorize attachment
// @Security Bearer
// @Tags file-organization
// @Accept json
// @Produce json
// @Param id path int true "Attachment ID"
// @Param request body SetCategoryRequest true "Category"
// @Success 200 {object} utils.APIResponse{data=dto.AttachmentDTO}
// @Router /file-organization/attachments/{id}/category [put]
func (h *Handler) SetAttachmentCategory(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	attachmentID, err := utils.ParseUintParam(c, "id", "attachment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetCategoryRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setCategoryUC.Execute(c.Request.Context(), usecases.SetAttachmentCategoryCommand{
		AttachmentID: attachmentID,
		CategoryID:   req.CategoryID,
		Actor:        actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Attachment category updated", result)
}

// SetAttachmentTags godoc
// @Summary Tag attachment
// @Security Bearer
// @Tags file-organization
// @Accept json
// @Produce json
// @Param id path int true "Attachment ID"
// @Param request body SetTagsRequest true "Tags"
// @Success 200 {object} utils.APIResponse{data=dto.AttachmentDTO}
// @Router /file-organization/attachments/{id}/tags [put]
func (h *Handler) SetAttachmentTags(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	attachmentID, err := utils.ParseUintParam(c, "id", "attachment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetTagsRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setTagsUC.Execute(c.Request.Context(), usecases.SetAttachmentTagsCommand{
		AttachmentID: attachmentID,
		Tags:         req.Tags,
		Actor:        actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Attachment tags updated", result)
}

// ListAttachments godoc
// @Summary Browse organized attachments
// @Description Customers only see files on their own tickets.
// @Security Bearer
// @Tags file-organization
// @Produce json
// @Param category_id query int false "Category filter"
// @Param tag query string false "Tag name filter"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]dto.AttachmentDTO}}
// @Router /file-organization/attachments [get]
func (h *Handler) ListAttachments(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	categoryID, err := utils.ParseOptionalUintQuery(c, "category_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	pagination := utils.ParsePagination(c)

	result, err := h.listFilesUC.Execute(c.Request.Context(), usecases.ListOrganizedAttachmentsQuery{
		CategoryID: categoryID,
		Tag:        c.Query("tag"),
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		Actor:      actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}
