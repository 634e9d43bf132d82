package inventory

import "github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"

type UseRequest struct {
	UserID   string
	Item     string
	Quantity int
}

type Response struct {
	Snapshot companion.Snapshot           `json:"snapshot"`
	Result   companion.ActionEffectResult `json:"result"`
}
