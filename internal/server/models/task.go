package models

// Task is a to-do item owned by exactly one account.
type Task struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	OwnerID     string `json:"_owner"`
}

// TaskPatch carries the fields an update may change. Completed is true only
// when the caller explicitly asked for it; anything else clears completion.
type TaskPatch struct {
	Text      *string
	Completed bool
}
