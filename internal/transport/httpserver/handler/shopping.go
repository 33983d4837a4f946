package handler

import (
	"errors"
	"net/http"
	"time"

	shoppingdomain "roomie-app-go/internal/domain/shopping"
	"roomie-app-go/internal/transport/httpserver/middleware"
)

type createItemRequest struct {
	Name     string  `json:"name"`
	Quantity *string `json:"quantity"`
}

type updateItemRequest struct {
	Name      *string `json:"name"`
	Quantity  *string `json:"quantity"`
	Purchased *bool   `json:"purchased"`
}

type itemResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Quantity  *string   `json:"quantity,omitempty"`
	Purchased bool      `json:"purchased"`
	CreatedBy uint      `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func toItemResponse(i *shoppingdomain.Item) itemResponse {
	return itemResponse{
		ID:        i.ID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		Purchased: i.Purchased,
		CreatedBy: i.CreatedBy,
		CreatedAt: i.CreatedAt,
	}
}

func (h *Handlers) writeItemError(w http.ResponseWriter, err error, op string, args ...any) {
	if errors.Is(err, shoppingdomain.ErrItemNotFound) {
		h.log.BusinessError(op+": item not found", err, args...)
		writeError(w, http.StatusNotFound, "item_not_found", "item not found")
		return
	}
	if writeRoomError(w, err) {
		h.log.BusinessError(op+": access rejected", err, args...)
		return
	}
	h.log.InternalError(op+": failed", err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func (h *Handlers) ListShoppingItems(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	roomID, err := parseUintParam(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	items, err := h.Shopping.ListItems(r.Context(), user.ID, roomID)
	if err != nil {
		h.writeItemError(w, err, "shopping.list", "user_id", user.ID, "room_id", roomID)
		return
	}

	result := make([]itemResponse, 0, len(items))
	for i := range items {
		result = append(result, toItemResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) CreateShoppingItem(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	roomID, err := parseUintParam(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	item, err := h.Shopping.CreateItem(r.Context(), user.ID, roomID, shoppingdomain.CreateItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.writeItemError(w, err, "shopping.create", "user_id", user.ID, "room_id", roomID)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

func (h *Handlers) UpdateShoppingItem(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	roomID, err := parseUintParam(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	itemID, err := parseUintParam(r, "item_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	item, err := h.Shopping.UpdateItem(r.Context(), user.ID, roomID, itemID, shoppingdomain.UpdateItemInput{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Purchased: req.Purchased,
	})
	if err != nil {
		h.writeItemError(w, err, "shopping.update", "user_id", user.ID, "room_id", roomID, "item_id", itemID)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handlers) DeleteShoppingItem(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	roomID, err := parseUintParam(r, "room_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	itemID, err := parseUintParam(r, "item_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Shopping.DeleteItem(r.Context(), user.ID, roomID, itemID); err != nil {
		h.writeItemError(w, err, "shopping.delete", "user_id", user.ID, "room_id", roomID, "item_id", itemID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
