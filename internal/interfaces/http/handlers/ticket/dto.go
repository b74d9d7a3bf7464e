package ticket

import (
	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/application/ticket/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=10000"`
	Priority    string `json:"priority" binding:"omitempty,max=20"`
}

func (r *CreateTicketRequest) ToCommand(actor authorization.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Actor:       actor,
	}
}

// UpdateTicketRequest changes only the fields present in the body.
type UpdateTicketRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=10000"`
	Priority    *string `json:"priority" binding:"omitempty,max=20"`
}

func (r *UpdateTicketRequest) ToCommand(ticketID uint, actor authorization.Actor) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		TicketID:    ticketID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Actor:       actor,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignTicketRequest with a null assignee_id unassigns the ticket.
type AssignTicketRequest struct {
	AssigneeID *uint `json:"assignee_id"`
}

type AddCommentRequest struct {
	Content    string `json:"content" binding:"required,max=10000"`
	IsInternal bool   `json:"is_internal"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=10000"`
}

type ListTicketsRequest struct {
	Status     string `form:"status"`
	Priority   string `form:"priority" binding:"omitempty,max=20"`
	Search     string `form:"search" binding:"max=200"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Unassigned bool   `form:"unassigned"`
	CreatorID  *uint  `form:"-"`
	AssigneeID *uint  `form:"-"`
	Page       int    `form:"-"`
	PageSize   int    `form:"-"`
}

func (r *ListTicketsRequest) ToQuery(actor authorization.Actor) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Status:     r.Status,
		Priority:   r.Priority,
		CreatorID:  r.CreatorID,
		AssigneeID: r.AssigneeID,
		Unassigned: r.Unassigned,
		Search:     r.Search,
		SortBy:     r.SortBy,
		SortOrder:  r.SortOrder,
		Page:       r.Page,
		PageSize:   r.PageSize,
		Actor:      actor,
	}
}

func parseListTicketsRequest(c *gin.Context) (*ListTicketsRequest, error) {
	var req ListTicketsRequest
	if err := utils.BindQuery(c, &req); err != nil {
		return nil, err
	}

	creatorID, err := utils.ParseOptionalUintQuery(c, "creator_id")
	if err != nil {
		return nil, err
	}
	assigneeID, err := utils.ParseOptionalUintQuery(c, "assignee_id")
	if err != nil {
		return nil, err
	}
	if req.Unassigned && assigneeID != nil {
		return nil, errors.NewValidationError("assignee_id and unassigned cannot be combined")
	}

	pagination := utils.ParsePagination(c)
	req.CreatorID = creatorID
	req.AssigneeID = assigneeID
	req.Page = pagination.Page
	req.PageSize = pagination.PageSize
	return &req, nil
}

func parseTicketID(c *gin.Context) (uint, error) {
	return utils.ParseUintParam(c, "id", "ticket")
}
