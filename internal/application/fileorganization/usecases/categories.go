package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/helpdeskhq/helpdesk/internal/application/fileorganization/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/fileorg"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

func requireStaff(actor authorization.Actor, what string) error {
	if !actor.IsStaff() {
		return errors.NewForbiddenError("only agents and admins can manage " + what)
	}
	return nil
}

func loadCategory(ctx context.Context, repo fileorg.CategoryRepository, id uint, log logger.Interface) (*fileorg.Category, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Errorw("failed to get category", "category_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get category")
	}
	if c == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("category %d not found", id))
	}
	return c, nil
}

type ListCategoriesUseCase struct {
	categoryRepo fileorg.CategoryRepository
	logger       logger.Interface
}

func NewListCategoriesUseCase(categoryRepo fileorg.CategoryRepository, logger logger.Interface) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo, logger: logger}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]dto.CategoryDTO, error) {
	items, err := uc.categoryRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list categories", "error", err)
		return nil, errors.NewInternalError("failed to list categories")
	}
	return dto.ToCategoryDTOs(items), nil
}

type CreateCategoryCommand struct {
	Name        string
	Description string
	Color       string
	Actor       authorization.Actor
}

type CreateCategoryUseCase struct {
	categoryRepo fileorg.CategoryRepository
	logger       logger.Interface
}

func NewCreateCategoryUseCase(categoryRepo fileorg.CategoryRepository, logger logger.Interface) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo, logger: logger}
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, cmd CreateCategoryCommand) (*dto.CategoryDTO, error) {
	uc.logger.Infow("executing create category use case", "name", cmd.Name, "actor_id", cmd.Actor.UserID)

	if err := requireStaff(cmd.Actor, "categories"); err != nil {
		return nil, err
	}
	c, err := fileorg.NewCategory(cmd.Name, cmd.Description, cmd.Color, cmd.Actor.UserID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := ensureUniqueCategoryName(ctx, uc.categoryRepo, c.Name(), 0, uc.logger); err != nil {
		return nil, err
	}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("category name already exists")
		}
		uc.logger.Errorw("failed to create category", "error", err)
		return nil, errors.NewInternalError("failed to create category")
	}

	result := dto.ToCategoryDTO(c)
	return &result, nil
}

func ensureUniqueCategoryName(ctx context.Context, repo fileorg.CategoryRepository, name string, excludeID uint, log logger.Interface) error {
	exists, err := repo.ExistsByName(ctx, strings.TrimSpace(name), excludeID)
	if err != nil {
		log.Errorw("failed to check category name", "error", err)
		return errors.NewInternalError("failed to save category")
	}
	if exists {
		return errors.NewConflictError("category name already exists")
	}
	return nil
}

type UpdateCategoryCommand struct {
	CategoryID  uint
	Name        string
	Description string
	Color       string
	Actor       authorization.Actor
}

type UpdateCategoryUseCase struct {
	categoryRepo fileorg.CategoryRepository
	logger       logger.Interface
}

func NewUpdateCategoryUseCase(categoryRepo fileorg.CategoryRepository, logger logger.Interface) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryRepo: categoryRepo, logger: logger}
}

func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, cmd UpdateCategoryCommand) (*dto.CategoryDTO, error) {
	uc.logger.Infow("executing update category use case", "category_id", cmd.CategoryID, "actor_id", cmd.Actor.UserID)

	if err := requireStaff(cmd.Actor, "categories"); err != nil {
		return nil, err
	}
	c, err := loadCategory(ctx, uc.categoryRepo, cmd.CategoryID, uc.logger)
	if err != nil {
		return nil, err
	}
	if err := c.Update(cmd.Name, cmd.Description, cmd.Color); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := ensureUniqueCategoryName(ctx, uc.categoryRepo, c.Name(), c.ID(), uc.logger); err != nil {
		return nil, err
	}
	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("category name already exists")
		}
		uc.logger.Errorw("failed to update category", "category_id", c.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update category")
	}

	result := dto.ToCategoryDTO(c)
	return &result, nil
}

type DeleteCategoryCommand struct {
	CategoryID uint
	Actor      authorization.Actor
}

type DeleteCategoryUseCase struct {
	categoryRepo fileorg.CategoryRepository
	logger       logger.Interface
}

func NewDeleteCategoryUseCase(categoryRepo fileorg.CategoryRepository, logger logger.Interface) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryRepo: categoryRepo, logger: logger}
}

// Execute removes the category; attachments in it become uncategorised.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, cmd DeleteCategoryCommand) error {
	uc.logger.Infow("executing delete category use case", "category_id", cmd.CategoryID, "actor_id", cmd.Actor.UserID)

	if err := requireStaff(cmd.Actor, "categories"); err != nil {
		return err
	}
	if _, err := loadCategory(ctx, uc.categoryRepo, cmd.CategoryID, uc.logger); err != nil {
		return err
	}
	if err := uc.categoryRepo.Delete(ctx, cmd.CategoryID); err != nil {
		uc.logger.Errorw("failed to delete category", "category_id", cmd.CategoryID, "error", err)
		return errors.NewInternalError("failed to delete category")
	}
	return nil
}
