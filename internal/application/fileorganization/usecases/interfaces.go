package usecases

import (
	"context"

	attachmentdto "github.com/helpdeskhq/helpdesk/internal/application/attachment/dto"
	commondto "github.com/helpdeskhq/helpdesk/internal/application/common/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/fileorganization/dto"
)

// TransactionRunner is satisfied by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ListCategoriesExecutor interface {
	Execute(ctx context.Context) ([]dto.CategoryDTO, error)
}

type CreateCategoryExecutor interface {
	Execute(ctx context.Context, cmd CreateCategoryCommand) (*dto.CategoryDTO, error)
}

type UpdateCategoryExecutor interface {
	Execute(ctx context.Context, cmd UpdateCategoryCommand) (*dto.CategoryDTO, error)
}

type DeleteCategoryExecutor interface {
	Execute(ctx context.Context, cmd DeleteCategoryCommand) error
}

type ListTagsExecutor interface {
	Execute(ctx context.Context) ([]dto.TagDTO, error)
}

type CreateTagExecutor interface {
	Execute(ctx context.Context, cmd CreateTagCommand) (*dto.TagDTO, error)
}

type DeleteTagExecutor interface {
	Execute(ctx context.Context, cmd DeleteTagCommand) error
}

type SetAttachmentCategoryExecutor interface {
	Execute(ctx context.Context, cmd SetAttachmentCategoryCommand) (*attachmentdto.AttachmentDTO, error)
}

type SetAttachmentTagsExecutor interface {
	Execute(ctx context.Context, cmd SetAttachmentTagsCommand) (*attachmentdto.AttachmentDTO, error)
}

type ListOrganizedAttachmentsExecutor interface {
	Execute(ctx context.Context, query ListOrganizedAttachmentsQuery) (*commondto.Page[attachmentdto.AttachmentDTO], error)
}
