package status

import "github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"

type Request struct {
	UserID string
}

type Response struct {
	Snapshot  companion.Snapshot `json:"snapshot"`
	Created   bool               `json:"created"`
	Recovered bool               `json:"recovered"`
}

type RenameRequest struct {
	UserID string
	Name   string
}
