package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/action"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/history"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/interaction"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/inventory"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/ports"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/shop"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/app/status"
	"github.com/soul-sys1/Lamp-Dragon-sub000/internal/domain/companion"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// userIDHeader carries the caller identity resolved by the chat command layer.
const userIDHeader = "X-User-ID"

type Handler struct {
	ActionUC    action.UseCase
	StatusUC    status.UseCase
	RenameUC    status.RenameUseCase
	InventoryUC inventory.UseCase
	ShopUC      shop.UseCase
	HistoryUC   history.UseCase
	KPI         kpiSnapshotProvider
	CORSOrigins []string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.CORSOrigins))

	pet := s.Group("/api/companion")
	pet.POST("/action", h.action)
	pet.POST("/status", h.status)
	pet.GET("/status", h.status)
	pet.POST("/rename", h.rename)
	pet.POST("/items/use", h.useItem)
	pet.GET("/history", h.history)

	shopGroup := s.Group("/api/shop")
	shopGroup.GET("/catalog", h.catalog)
	shopGroup.POST("/buy", h.buy)
	shopGroup.POST("/grant", h.grant)

	s.GET("/ops/kpi", h.kpi)
}

type actionRequest struct {
	Action string `json:"action"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type itemRequest struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity,omitempty"`
}

type grantRequest struct {
	Amount int    `json:"amount"`
	Source string `json:"source"`
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.ActionUC.Execute(c, action.Request{UserID: userID, Action: body.Action})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.StatusUC.Execute(c, status.Request{UserID: userID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) rename(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body renameRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RenameUC.Execute(c, status.RenameRequest{UserID: userID, Name: body.Name})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) useItem(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body itemRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.InventoryUC.Use(c, inventory.UseRequest{UserID: userID, Item: body.Item, Quantity: body.Quantity})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.HistoryUC.Execute(c, history.Request{
		UserID:       userID,
		Limit:        limit,
		OccurredFrom: unixOrZero(occurredFrom),
		OccurredTo:   unixOrZero(occurredTo),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalog(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ShopUC.ListCatalog(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) buy(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body itemRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ShopUC.Buy(c, shop.BuyRequest{UserID: userID, Item: body.Item, Quantity: body.Quantity})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) grant(c context.Context, ctx *app.RequestContext) {
	userID, err := requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body grantRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ShopUC.Grant(c, shop.GrantRequest{UserID: userID, Amount: body.Amount, Source: body.Source})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func unixOrZero(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

var ErrMissingUserIDHeader = errors.New("missing x-user-id header")

func requireUser(ctx *app.RequestContext) (string, error) {
	userID := strings.TrimSpace(string(ctx.GetHeader(userIDHeader)))
	if userID == "" {
		return "", ErrMissingUserIDHeader
	}
	return userID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingUserIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_user_id", err.Error())
	case errors.Is(err, companion.ErrInvalidName):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_name", err.Error())
	case errors.Is(err, shop.ErrInsufficientGold):
		writeRejected(ctx, "insufficient_gold", err.Error())
	case errors.Is(err, inventory.ErrItemUnavailable):
		writeRejected(ctx, "item_unavailable", err.Error())
	case errors.Is(err, interaction.ErrRejected):
		writeRejected(ctx, "rejected", err.Error())
	case errors.Is(err, companion.ErrUnknownItem):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_item", err.Error())
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, inventory.ErrInvalidRequest),
		errors.Is(err, shop.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest),
		errors.Is(err, interaction.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	case errors.Is(err, interaction.ErrPersistence):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "try_again", interaction.ErrPersistence.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeRejected(ctx *app.RequestContext, code, message string) {
	ctx.JSON(consts.StatusConflict, map[string]any{
		"result_code": "REJECTED",
		"error": map[string]any{
			"code":      code,
			"message":   message,
			"retryable": false,
		},
	})
}
