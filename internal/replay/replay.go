// Package replay drives a cart store from a stream of JSON actions, one
// unit of work per line.
//
// A line holding an object is a single action. A line holding an array is a
// batch: its actions are applied together and subscribers hear about the
// result once. Blank lines and lines starting with # are skipped.
//
//	{"type":"ADD_ITEM","payload":{"id":1,"name":"React Course","price":49.99}}
//	[{"type":"ADD_ITEM","payload":{"id":2,"name":"Node.js Course","price":39.99}},{"type":"UPDATE_QUANTITY","payload":{"id":2,"quantity":3}}]
package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/five82/trolley/internal/cart"
)

// Result summarizes a replay.
type Result struct {
	Lines   int
	Actions int
	Batches int
}

// Run applies every line of r to store. It stops at the first line that
// fails to decode or that the reducer rejects; the store keeps the snapshot
// left by the previous line.
func Run(r io.Reader, store *cart.Store) (Result, error) {
	var res Result
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		actions, err := decodeLine(line)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", lineNo, err)
		}
		err = store.Batch(func(dispatch func(cart.Action)) {
			for _, a := range actions {
				dispatch(a)
			}
		})
		if err != nil {
			return res, fmt.Errorf("line %d: %w", lineNo, err)
		}
		res.Lines++
		res.Actions += len(actions)
		if len(actions) > 0 {
			res.Batches++
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read actions: %w", err)
	}
	return res, nil
}

// WriteSnapshot writes s as indented JSON.
func WriteSnapshot(w io.Writer, s cart.Snapshot) error {
	if s.Items == nil {
		s.Items = []cart.Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func decodeLine(line []byte) ([]cart.Action, error) {
	if line[0] != '[' {
		a, err := cart.DecodeAction(line)
		if err != nil {
			return nil, err
		}
		return []cart.Action{a}, nil
	}

	var envs []cart.Envelope
	if err := json.Unmarshal(line, &envs); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	actions := make([]cart.Action, 0, len(envs))
	for i, env := range envs {
		a, err := env.Action()
		if err != nil {
			return nil, fmt.Errorf("batch entry %d: %w", i+1, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}
