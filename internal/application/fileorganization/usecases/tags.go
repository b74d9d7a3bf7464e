package usecases

import (
	"context"
	"fmt"

	"github.com/helpdeskhq/helpdesk/internal/application/fileorganization/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/fileorg"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type ListTagsUseCase struct {
	tagRepo fileorg.TagRepository
	logger  logger.Interface
}

func NewListTagsUseCase(tagRepo fileorg.TagRepository, logger logger.Interface) *ListTagsUseCase {
	return &ListTagsUseCase{tagRepo: tagRepo, logger: logger}
}

func (uc *ListTagsUseCase) Execute(ctx context.Context) ([]dto.TagDTO, error) {
	items, err := uc.tagRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list tags", "error", err)
		return nil, errors.NewInternalError("failed to list tags")
	}
	return dto.ToTagDTOs(items), nil
}

type CreateTagCommand struct {
	Name  string
	Color string
	Actor authorization.Actor
}

type CreateTagUseCase struct {
	tagRepo fileorg.TagRepository
	logger  logger.Interface
}

func NewCreateTagUseCase(tagRepo fileorg.TagRepository, logger logger.Interface) *CreateTagUseCase {
	return &CreateTagUseCase{tagRepo: tagRepo, logger: logger}
}

func (uc *CreateTagUseCase) Execute(ctx context.Context, cmd CreateTagCommand) (*dto.TagDTO, error) {
	uc.logger.Infow("executing create tag use case", "name", cmd.Name, "actor_id", cmd.Actor.UserID)

	if err := requireStaff(cmd.Actor, "tags"); err != nil {
		return nil, err
	}
	tag, err := fileorg.NewTag(cmd.Name, cmd.Color)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	existing, err := uc.tagRepo.GetByNames(ctx, []string{tag.Name()})
	if err != nil {
		uc.logger.Errorw("failed to look up tag", "error", err)
		return nil, errors.NewInternalError("failed to create tag")
	}
	if len(existing) > 0 {
		return nil, errors.NewConflictError(fmt.Sprintf("tag %q already exists", tag.Name()))
	}

	if err := uc.tagRepo.Create(ctx, tag); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError(fmt.Sprintf("tag %q already exists", tag.Name()))
		}
		uc.logger.Errorw("failed to create tag", "error", err)
		return nil, errors.NewInternalError("failed to create tag")
	}

	result := dto.ToTagDTO(tag)
	return &result, nil
}

type DeleteTagCommand struct {
	TagID uint
	Actor authorization.Actor
}

type DeleteTagUseCase struct {
	tagRepo fileorg.TagRepository
	logger  logger.Interface
}

func NewDeleteTagUseCase(tagRepo fileorg.TagRepository, logger logger.Interface) *DeleteTagUseCase {
	return &DeleteTagUseCase{tagRepo: tagRepo, logger: logger}
}

func (uc *DeleteTagUseCase) Execute(ctx context.Context, cmd DeleteTagCommand) error {
	uc.logger.Infow("executing delete tag use case", "tag_id", cmd.TagID, "actor_id", cmd.Actor.UserID)

	if err := requireStaff(cmd.Actor, "tags"); err != nil {
		return err
	}
	tag, err := uc.tagRepo.GetByID(ctx, cmd.TagID)
	if err != nil {
		uc.logger.Errorw("failed to get tag", "tag_id", cmd.TagID, "error", err)
		return errors.NewInternalError("failed to delete tag")
	}
	if tag == nil {
		return errors.NewNotFoundError(fmt.Sprintf("tag %d not found", cmd.TagID))
	}
	if err := uc.tagRepo.Delete(ctx, cmd.TagID); err != nil {
		uc.logger.Errorw("failed to delete tag", "tag_id", cmd.TagID, "error", err)
		return errors.NewInternalError("failed to delete tag")
	}
	return nil
}
