package domain

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	Text      string    `db:"task" json:"task"`
	Completed bool      `db:"completed" json:"completed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewTask is the caller-provided portion of a task being created.
type NewTask struct {
	Text      string
	Completed bool
}

// TaskWithOwner carries owner identity for grouped listings.
type TaskWithOwner struct {
	Task
	OwnerName  string `db:"owner_name"`
	OwnerEmail string `db:"owner_email"`
}

// TaskOwner is the owner summary exposed in grouped task listings.
type TaskOwner struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// OwnerTasks groups a user's tasks under their identity.
type OwnerTasks struct {
	User  TaskOwner `json:"user"`
	Tasks []Task    `json:"tasks"`
}
