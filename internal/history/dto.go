// AngelaMos | 2026
// dto.go

package history

import "time"

type EntryResponse struct {
	ID               string    `json:"id"`
	Prompt           string    `json:"prompt"`
	GeneratedContent string    `json:"generated_content"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToEntryResponse(e *Entry) EntryResponse {
	return EntryResponse{
		ID:               e.ID,
		Prompt:           e.Prompt,
		GeneratedContent: e.GeneratedContent,
		CreatedAt:        e.CreatedAt,
	}
}

func ToEntryResponseList(entries []Entry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, ToEntryResponse(&e))
	}
	return responses
}
