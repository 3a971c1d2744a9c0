// AngelaMos | 2026
// entity.go

package history

import "time"

// Entry is an append-only record of one completed generation. Entries
// are never updated or deleted through the API.
type Entry struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	Prompt           string    `db:"prompt"`
	GeneratedContent string    `db:"generated_content"`
	CreatedAt        time.Time `db:"created_at"`
}
