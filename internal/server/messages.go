package server

import (
	"encoding/json"
	"fmt"
)

// MessageType identifies a protocol frame
type MessageType string

const (
	// Requests
	MessageTypeSimulate MessageType = "simulate"
	MessageTypeCurve    MessageType = "curve"

	// Responses
	MessageTypeProgress    MessageType = "progress"
	MessageTypeResult      MessageType = "result"
	MessageTypeCurveResult MessageType = "curve_result"
	MessageTypeError       MessageType = "error"
)

// Message is the JSON envelope for every frame on the wire
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage wraps a payload in an envelope
func NewMessage(t MessageType, data any) (Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Message{}, fmt.Errorf("encoding %s message: %w", t, err)
	}
	return Message{Type: t, Data: raw}, nil
}

// PlayerSpec describes one player in a simulate request. Hole holds 0-2
// concatenated card tokens ("AsKd"); empty means fully unknown.
type PlayerSpec struct {
	Name   string `json:"name"`
	Hole   string `json:"hole,omitempty"`
	Active bool   `json:"active"`
	Hero   bool   `json:"hero,omitempty"`
}

// SimulateRequest asks for a Monte Carlo equity run
type SimulateRequest struct {
	Players []PlayerSpec `json:"players"`
	Board   string       `json:"board,omitempty"`
	Dead    string       `json:"dead,omitempty"`
	Trials  int          `json:"trials,omitempty"`
	Seed    *int64       `json:"seed,omitempty"`
}

// PlayerResult is one player's share of a simulation outcome
type PlayerResult struct {
	Name      string  `json:"name"`
	Wins      int     `json:"wins"`
	Ties      int     `json:"ties"`
	WinPct    float64 `json:"win_pct"`
	TiePct    float64 `json:"tie_pct"`
	MarginPct float64 `json:"margin_pct"` // 95% confidence margin on win_pct
}

// SimulateResponse reports the completed run. Trials is zero when the
// remaining deck could not cover the required deals.
type SimulateResponse struct {
	Trials  int            `json:"trials"`
	Players []PlayerResult `json:"players"`
}

// ProgressData streams completion state mid-run
type ProgressData struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// CurveRequest asks for a hero equity sweep over opponent counts
type CurveRequest struct {
	Hero      string `json:"hero"` // exactly 2 card tokens
	Opponents int    `json:"opponents,omitempty"`
	Trials    int    `json:"trials,omitempty"`
	Seed      *int64 `json:"seed,omitempty"`
}

// CurvePointData is one sweep point
type CurvePointData struct {
	Opponents int     `json:"opponents"`
	EquityPct float64 `json:"equity_pct"`
}

// CurveResponse reports the completed sweep
type CurveResponse struct {
	Points []CurvePointData `json:"points"`
}

// ErrorData reports a request failure
type ErrorData struct {
	Message string `json:"message"`
}
