package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

// Envelope is the JSON shape of an action: {"type": ..., "payload": {...}}.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wirePayload struct {
	ID       json.RawMessage `json:"id"`
	Name     string          `json:"name"`
	Price    *float64        `json:"price"`
	Quantity *int            `json:"quantity"`
}

// DecodeAction parses one JSON action.
func DecodeAction(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	return env.Action()
}

// Action converts the envelope into a typed action. Unrecognized tags yield
// Unknown; recognized tags with missing required fields yield an error
// wrapping ErrInvalidAction.
func (e Envelope) Action() (Action, error) {
	switch e.Type {
	case TypeClearCart:
		return ClearCart{}, nil
	case TypeAddItem, TypeRemoveItem, TypeUpdateQuantity:
	default:
		return Unknown{Tag: e.Type}, nil
	}

	var p wirePayload
	if len(bytes.TrimSpace(e.Payload)) > 0 {
		if err := json.Unmarshal(e.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %s payload: %v", ErrInvalidAction, e.Type, err)
		}
	}
	id, err := decodeID(p.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAction, e.Type, err)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: %s payload missing id", ErrInvalidAction, e.Type)
	}

	switch e.Type {
	case TypeAddItem:
		if p.Price == nil {
			return nil, fmt.Errorf("%w: %s payload missing price", ErrInvalidAction, e.Type)
		}
		return AddItem{Item: Item{ID: id, Name: p.Name, Price: *p.Price}}, nil
	case TypeRemoveItem:
		return RemoveItem{ID: id}, nil
	default:
		if p.Quantity == nil {
			return nil, fmt.Errorf("%w: %s payload missing quantity", ErrInvalidAction, e.Type)
		}
		return UpdateQuantity{ID: id, Quantity: *p.Quantity}, nil
	}
}

// EncodeAction renders action in the envelope shape accepted by
// DecodeAction.
func EncodeAction(action Action) ([]byte, error) {
	env := Envelope{Type: action.Type()}
	var payload any
	switch a := action.(type) {
	case AddItem:
		payload = map[string]any{"id": a.Item.ID, "name": a.Item.Name, "price": a.Item.Price}
	case RemoveItem:
		payload = map[string]any{"id": a.ID}
	case UpdateQuantity:
		payload = map[string]any{"id": a.ID, "quantity": a.Quantity}
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", env.Type, err)
		}
		env.Payload = raw
	}
	return json.Marshal(env)
}

// decodeID accepts ids written as JSON strings or numbers. A number must be
// a whole number; it is rendered in plain decimal form, so 1, 1.0 and 1e0
// name the same item.
func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("id must be a string or number")
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	r, ok := new(big.Rat).SetString(n.String())
	if !ok || !r.IsInt() {
		return "", fmt.Errorf("id %s is not a whole number", n)
	}
	return r.Num().String(), nil
}
