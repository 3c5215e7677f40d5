package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

// decodeCart reads a cart payload that is either {"items": [...]} or a
// bare array. Any other shape yields a reply without items.
func decodeCart(raw json.RawMessage) (entity.CartReply, error) {
	if api.IsArray(raw) {
		var items []entity.CartItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return entity.CartReply{}, fmt.Errorf("decode cart list: %w", err)
		}
		return entity.CartReply{Items: items, HasItems: true}, nil
	}

	var payload struct {
		Items []entity.CartItem `json:"items"`
	}
	if len(raw) == 0 || string(raw) == "null" {
		return entity.CartReply{}, nil
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		// a scalar or unexpected object still means the call succeeded
		return entity.CartReply{}, nil
	}
	if payload.Items == nil {
		return entity.CartReply{}, nil
	}
	return entity.CartReply{Items: payload.Items, HasItems: true}, nil
}

// decodeList reads a list payload that is either a bare array or wrapped in
// {"data": [...]} by a paginator.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}
	if api.IsArray(raw) {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}
	var wrapped struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode paged list: %w", err)
	}
	if wrapped.Data == nil {
		return []T{}, nil
	}
	return wrapped.Data, nil
}

// decodeOrder reads the data of a successful order creation. The order
// exists once the API said success, so a payload that is not an object, or
// an object of unexpected shape, yields an empty result instead of an error.
func decodeOrder(raw json.RawMessage) entity.OrderResult {
	if !isObject(raw) {
		return entity.OrderResult{}
	}
	var payload struct {
		OrderID    entity.FlexibleID `json:"order_id"`
		InvoiceURL json.RawMessage   `json:"invoice_url"`
		Message    json.RawMessage   `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return entity.OrderResult{}
	}
	id, _ := strconv.ParseInt(string(payload.OrderID), 10, 64)
	return entity.OrderResult{
		OrderID:    id,
		InvoiceURL: jsonString(payload.InvoiceURL),
		Message:    jsonString(payload.Message),
	}
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// jsonString returns raw as a string, or "" when it is not a JSON string.
func jsonString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
