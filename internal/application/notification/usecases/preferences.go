package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/notification/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/notification"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type GetPreferencesUseCase struct {
	repo   notification.PreferencesRepository
	logger logger.Interface
}

func NewGetPreferencesUseCase(repo notification.PreferencesRepository, logger logger.Interface) *GetPreferencesUseCase {
	return &GetPreferencesUseCase{repo: repo, logger: logger}
}

func (uc *GetPreferencesUseCase) Execute(ctx context.Context, userID uint) (*dto.PreferencesDTO, error) {
	prefs, err := uc.repo.Get(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get notification preferences", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to get notification preferences")
	}
	result := dto.ToPreferencesDTO(prefs)
	return &result, nil
}

// UpdatePreferencesCommand changes only the flags that are set.
type UpdatePreferencesCommand struct {
	UserID           uint
	EmailEnabled     *bool
	InAppEnabled     *bool
	OnTicketCreated  *bool
	OnTicketAssigned *bool
	OnStatusChanged  *bool
	OnCommentAdded   *bool
	OnSLABreached    *bool
}

type UpdatePreferencesUseCase struct {
	repo   notification.PreferencesRepository
	logger logger.Interface
}

func NewUpdatePreferencesUseCase(repo notification.PreferencesRepository, logger logger.Interface) *UpdatePreferencesUseCase {
	return &UpdatePreferencesUseCase{repo: repo, logger: logger}
}

func (uc *UpdatePreferencesUseCase) Execute(ctx context.Context, cmd UpdatePreferencesCommand) (*dto.PreferencesDTO, error) {
	uc.logger.Infow("executing update notification preferences use case", "user_id", cmd.UserID)

	prefs, err := uc.repo.Get(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get notification preferences", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to get notification preferences")
	}

	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&prefs.EmailEnabled, cmd.EmailEnabled)
	apply(&prefs.InAppEnabled, cmd.InAppEnabled)
	apply(&prefs.OnTicketCreated, cmd.OnTicketCreated)
	apply(&prefs.OnTicketAssigned, cmd.OnTicketAssigned)
	apply(&prefs.OnStatusChanged, cmd.OnStatusChanged)
	apply(&prefs.OnCommentAdded, cmd.OnCommentAdded)
	apply(&prefs.OnSLABreached, cmd.OnSLABreached)
	prefs.UserID = cmd.UserID
	prefs.UpdatedAt = biztime.NowUTC()

	if err := uc.repo.Save(ctx, prefs); err != nil {
		uc.logger.Errorw("failed to save notification preferences", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewInternalError("failed to save notification preferences")
	}

	result := dto.ToPreferencesDTO(prefs)
	return &result, nil
}
