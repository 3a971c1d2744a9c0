// AngelaMos | 2026
// entity.go

package collection

import "time"

type Collection struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	OwnerID   string    `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

type Content struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	Body         string    `db:"body"`
	CollectionID string    `db:"collection_id"`
	CreatedAt    time.Time `db:"created_at"`
}
