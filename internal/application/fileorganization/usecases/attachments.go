package usecases

import (
	"context"

	attachmentdto "github.com/helpdeskhq/helpdesk/internal/application/attachment/dto"
	attachmentusecases "github.com/helpdeskhq/helpdesk/internal/application/attachment/usecases"
	commondto "github.com/helpdeskhq/helpdesk/internal/application/common/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/fileorg"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

// MaxTagsPerAttachment bounds SetAttachmentTags.
const MaxTagsPerAttachment = 20

// loadEditableAttachment allows staff and the uploader to organise a file
// they can see.
func loadEditableAttachment(
	ctx context.Context,
	attachmentRepo attachment.Repository,
	ticketRepo ticket.TicketRepository,
	id uint,
	actor authorization.Actor,
	log logger.Interface,
) (*attachment.Attachment, error) {
	a, err := attachmentusecases.LoadVisibleAttachment(ctx, attachmentRepo, ticketRepo, id, actor, log)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && a.UploaderID() != actor.UserID {
		return nil, errors.NewForbiddenError("only the uploader or staff can organise this attachment")
	}
	return a, nil
}

type SetAttachmentCategoryCommand struct {
	AttachmentID uint
	// CategoryID nil removes the category.
	CategoryID *uint
	Actor      authorization.Actor
}

type SetAttachmentCategoryUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo attachment.Repository
	categoryRepo   fileorg.CategoryRepository
	logger         logger.Interface
}

func NewSetAttachmentCategoryUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo attachment.Repository,
	categoryRepo fileorg.CategoryRepository,
	logger logger.Interface,
) *SetAttachmentCategoryUseCase {
	return &SetAttachmentCategoryUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		categoryRepo:   categoryRepo,
		logger:         logger,
	}
}

func (uc *SetAttachmentCategoryUseCase) Execute(ctx context.Context, cmd SetAttachmentCategoryCommand) (*attachmentdto.AttachmentDTO, error) {
	uc.logger.Infow("executing set attachment category use case", "attachment_id", cmd.AttachmentID, "actor_id", cmd.Actor.UserID)

	a, err := loadEditableAttachment(ctx, uc.attachmentRepo, uc.ticketRepo, cmd.AttachmentID, cmd.Actor, uc.logger)
	if err != nil {
		return nil, err
	}
	if cmd.CategoryID != nil {
		if _, err := loadCategory(ctx, uc.categoryRepo, *cmd.CategoryID, uc.logger); err != nil {
			return nil, err
		}
	}

	if err := uc.attachmentRepo.UpdateCategory(ctx, a.ID(), cmd.CategoryID); err != nil {
		uc.logger.Errorw("failed to update attachment category", "attachment_id", a.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update attachment category")
	}
	a.SetCategory(cmd.CategoryID)

	result := attachmentdto.ToAttachmentDTO(a)
	return &result, nil
}

type SetAttachmentTagsCommand struct {
	AttachmentID uint
	Tags         []string
	Actor        authorization.Actor
}

type SetAttachmentTagsUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo attachment.Repository
	tagRepo        fileorg.TagRepository
	txManager      TransactionRunner
	logger         logger.Interface
}

func NewSetAttachmentTagsUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo attachment.Repository,
	tagRepo fileorg.TagRepository,
	txManager TransactionRunner,
	logger logger.Interface,
) *SetAttachmentTagsUseCase {
	return &SetAttachmentTagsUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		tagRepo:        tagRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute replaces the attachment's tags, creating tags that do not exist
// yet. An empty list clears them.
func (uc *SetAttachmentTagsUseCase) Execute(ctx context.Context, cmd SetAttachmentTagsCommand) (*attachmentdto.AttachmentDTO, error) {
	uc.logger.Infow("executing set attachment tags use case", "attachment_id", cmd.AttachmentID, "count", len(cmd.Tags), "actor_id", cmd.Actor.UserID)

	names, err := fileorg.NormalizeTagNames(cmd.Tags)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if len(names) > MaxTagsPerAttachment {
		return nil, errors.NewValidationError("too many tags", "at most 20 tags per attachment")
	}

	a, err := loadEditableAttachment(ctx, uc.attachmentRepo, uc.ticketRepo, cmd.AttachmentID, cmd.Actor, uc.logger)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		tags, err := uc.resolveTags(txCtx, names)
		if err != nil {
			return err
		}
		ids := make([]uint, 0, len(tags))
		for _, t := range tags {
			ids = append(ids, t.ID())
		}
		return uc.attachmentRepo.ReplaceTags(txCtx, a.ID(), ids)
	})
	if err != nil {
		uc.logger.Errorw("failed to replace attachment tags", "attachment_id", a.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update attachment tags")
	}
	a.SetTags(names)

	result := attachmentdto.ToAttachmentDTO(a)
	return &result, nil
}

func (uc *SetAttachmentTagsUseCase) resolveTags(ctx context.Context, names []string) ([]*fileorg.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	existing, err := uc.tagRepo.GetByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*fileorg.Tag, len(existing))
	for _, t := range existing {
		byName[t.Name()] = t
	}

	tags := make([]*fileorg.Tag, 0, len(names))
	for _, name := range names {
		if t, ok := byName[name]; ok {
			tags = append(tags, t)
			continue
		}
		t, err := fileorg.NewTag(name, "")
		if err != nil {
			return nil, err
		}
		if err := uc.tagRepo.Create(ctx, t); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

type ListOrganizedAttachmentsQuery struct {
	CategoryID *uint
	Tag        string
	Page       int
	PageSize   int
	Actor      authorization.Actor
}

type ListOrganizedAttachmentsUseCase struct {
	attachmentRepo attachment.Repository
	logger         logger.Interface
}

func NewListOrganizedAttachmentsUseCase(attachmentRepo attachment.Repository, logger logger.Interface) *ListOrganizedAttachmentsUseCase {
	return &ListOrganizedAttachmentsUseCase{attachmentRepo: attachmentRepo, logger: logger}
}

// Execute lists attachments across tickets. USER callers only see files on
// their own tickets.
func (uc *ListOrganizedAttachmentsUseCase) Execute(ctx context.Context, q ListOrganizedAttachmentsQuery) (*commondto.Page[attachmentdto.AttachmentDTO], error) {
	page := q.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	filter := attachment.ListFilter{
		PageFilter: query.PageFilter{Page: page, PageSize: q.PageSize},
		CategoryID: q.CategoryID,
	}
	if q.Tag != "" {
		tag, err := fileorg.NormalizeTagName(q.Tag)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Tag = tag
	}
	if !q.Actor.IsStaff() {
		userID := q.Actor.UserID
		filter.VisibleToUserID = &userID
	}

	items, total, err := uc.attachmentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list attachments", "error", err)
		return nil, errors.NewInternalError("failed to list attachments")
	}
	return commondto.NewPage(attachmentdto.ToAttachmentDTOs(items), total, filter.Page, filter.Limit()), nil
}
