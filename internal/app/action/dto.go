package action

import "github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"

type Request struct {
	UserID string
	Action string
}

type Response struct {
	Snapshot  companion.Snapshot           `json:"snapshot"`
	Result    companion.ActionEffectResult `json:"result"`
	Created   bool                         `json:"created"`
	Recovered bool                         `json:"recovered"`
}
