package models

// Todo is a single task. A "list" in the UI is the set of rows sharing a
// title; creating a list inserts one row per task.
type Todo struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	HouseholdID string `gorm:"not null" json:"-"`
	PartnerName string `json:"partner_name"`
	Title       string `json:"title"`
	Task        string `json:"task"`
	Completed   bool   `gorm:"default:false" json:"completed"`
	CreatedAt   string `json:"created_at"`
}

// TodoResponse is the response format for todos
type TodoResponse struct {
	ID          uint   `json:"id"`
	PartnerName string `json:"partner_name"`
	Title       string `json:"title"`
	Task        string `json:"task"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
}

func (t *Todo) ToResponse() TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		PartnerName: t.PartnerName,
		Title:       t.Title,
		Task:        t.Task,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}

// TodoListInput creates a titled list of tasks in one call
type TodoListInput struct {
	PartnerName string   `json:"partner_name"`
	Title       string   `json:"title"`
	Tasks       []string `json:"tasks"`
}

// TodoUpdateInput toggles completion on a single task
type TodoUpdateInput struct {
	Completed bool `json:"completed"`
}
