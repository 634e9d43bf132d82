package shop

import "github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"

type BuyRequest struct {
	UserID   string
	Item     string
	Quantity int
}

type GrantRequest struct {
	UserID string
	Amount int
	Source string
}

type Response struct {
	Snapshot companion.Snapshot `json:"snapshot"`
	Spent    int                `json:"spent,omitempty"`
	Granted  int                `json:"granted,omitempty"`
}

type CatalogResponse struct {
	Items companion.Catalog `json:"items"`
}
