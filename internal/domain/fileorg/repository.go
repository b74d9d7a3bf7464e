package fileorg

import "context"

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	// Delete also clears category_id on attachments that used it.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	List(ctx context.Context) ([]*Category, error)
}

type TagRepository interface {
	Create(ctx context.Context, t *Tag) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Tag, error)
	GetByNames(ctx context.Context, names []string) ([]*Tag, error)
	List(ctx context.Context) ([]*Tag, error)
}
