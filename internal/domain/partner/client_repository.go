package partner

import "context"

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindAll returns every client ordered by name
	FindAll(ctx context.Context) ([]Client, error)

	// FindByID finds a client by its ID, shared.ErrNotFound when absent
	FindByID(ctx context.Context, id int64) (*Client, error)

	// ExistsByID reports whether a client with the ID exists
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Create inserts a client and sets its ID; a duplicate code yields shared.ErrConflict
	Create(ctx context.Context, client *Client) error
}
