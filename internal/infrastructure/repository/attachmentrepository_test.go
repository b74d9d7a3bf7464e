package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/fileorg"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

type fileOrgFixture struct {
	attachments *AttachmentRepository
	categories  *CategoryRepository
	tags        *TagRepository
}

func newFileOrgFixture(t *testing.T) *fileOrgFixture {
	db := setupTestDB(t)
	tickets := NewTicketRepository(db)
	seedTicket(t, tickets, seed{id: 1, number: "HD-20240311-0001", status: vo.StatusOpen, priority: vo.PriorityLow, creator: 10, created: at(11, 1), due: at(14, 1)})
	seedTicket(t, tickets, seed{id: 2, number: "HD-20240311-0002", status: vo.StatusOpen, priority: vo.PriorityLow, creator: 11, created: at(11, 2), due: at(14, 2)})
	return &fileOrgFixture{
		attachments: NewAttachmentRepository(db),
		categories:  NewCategoryRepository(db),
		tags:        NewTagRepository(db),
	}
}

func (f *fileOrgFixture) upload(t *testing.T, ticketID uint, name string) *attachment.Attachment {
	t.Helper()
	a, err := attachment.NewAttachment(attachment.Params{
		TicketID:     ticketID,
		UploaderID:   10,
		OriginalName: name,
		StorageKey:   fmt.Sprintf("2024/03/%d-%s", ticketID, name),
		MimeType:     "application/pdf",
		Size:         42,
		Checksum:     "abc",
	})
	require.NoError(t, err)
	require.NoError(t, f.attachments.Create(context.Background(), a))
	return a
}

func (f *fileOrgFixture) tag(t *testing.T, name string) *fileorg.Tag {
	t.Helper()
	tag, err := fileorg.NewTag(name, "")
	require.NoError(t, err)
	require.NoError(t, f.tags.Create(context.Background(), tag))
	return tag
}

func TestAttachmentRepository_TagsAndCategory(t *testing.T) {
	f := newFileOrgFixture(t)
	ctx := context.Background()

	invoice := f.upload(t, 1, "invoice.pdf")
	billing := f.tag(t, "Billing")
	urgent := f.tag(t, "urgent")

	require.NoError(t, f.attachments.ReplaceTags(ctx, invoice.ID(), []uint{urgent.ID(), billing.ID()}))
	found, err := f.attachments.GetByID(ctx, invoice.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"billing", "urgent"}, found.Tags())

	require.NoError(t, f.attachments.ReplaceTags(ctx, invoice.ID(), []uint{urgent.ID()}))
	found, err = f.attachments.GetByID(ctx, invoice.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent"}, found.Tags())

	category, err := fileorg.NewCategory("Invoices", "", "#112233", 1)
	require.NoError(t, err)
	require.NoError(t, f.categories.Create(ctx, category))
	require.NoError(t, f.attachments.UpdateCategory(ctx, invoice.ID(), uintPtr(category.ID())))

	found, err = f.attachments.GetByID(ctx, invoice.ID())
	require.NoError(t, err)
	require.NotNil(t, found.CategoryID())
	assert.Equal(t, category.ID(), *found.CategoryID())

	require.NoError(t, f.categories.Delete(ctx, category.ID()))
	found, err = f.attachments.GetByID(ctx, invoice.ID())
	require.NoError(t, err)
	assert.Nil(t, found.CategoryID())

	require.NoError(t, f.tags.Delete(ctx, urgent.ID()))
	found, err = f.attachments.GetByID(ctx, invoice.ID())
	require.NoError(t, err)
	assert.Empty(t, found.Tags())
}

func TestAttachmentRepository_List(t *testing.T) {
	f := newFileOrgFixture(t)
	ctx := context.Background()

	mine := f.upload(t, 1, "mine.pdf")
	theirs := f.upload(t, 2, "theirs.pdf")
	contract := f.tag(t, "contract")
	require.NoError(t, f.attachments.ReplaceTags(ctx, theirs.ID(), []uint{contract.ID()}))

	list, total, err := f.attachments.List(ctx, attachment.ListFilter{PageFilter: query.PageFilter{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	list, total, err = f.attachments.List(ctx, attachment.ListFilter{Tag: "Contract"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, theirs.ID(), list[0].ID())
	assert.Equal(t, []string{"contract"}, list[0].Tags())

	list, total, err = f.attachments.List(ctx, attachment.ListFilter{VisibleToUserID: uintPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, mine.ID(), list[0].ID())

	count, err := f.attachments.CountByTicket(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, f.attachments.Delete(ctx, theirs.ID()))
	byTicket, err := f.attachments.ListByTicket(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, byTicket)
}

func TestCategoryAndTagRepository(t *testing.T) {
	f := newFileOrgFixture(t)
	ctx := context.Background()

	logs, err := fileorg.NewCategory("Logs", "Server logs", "", 1)
	require.NoError(t, err)
	require.NoError(t, f.categories.Create(ctx, logs))

	exists, err := f.categories.ExistsByName(ctx, "LOGS", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = f.categories.ExistsByName(ctx, "logs", logs.ID())
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, logs.Update("Logfiles", "Server logs", "#ABCDEF"))
	require.NoError(t, f.categories.Update(ctx, logs))
	found, err := f.categories.GetByID(ctx, logs.ID())
	require.NoError(t, err)
	assert.Equal(t, "Logfiles", found.Name())
	assert.Equal(t, "#ABCDEF", found.Color())

	f.tag(t, "beta")
	f.tag(t, "alpha")
	tags, err := f.tags.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "alpha", tags[0].Name())

	byNames, err := f.tags.GetByNames(ctx, []string{"beta", "gamma"})
	require.NoError(t, err)
	require.Len(t, byNames, 1)
	assert.Equal(t, "beta", byNames[0].Name())
}
