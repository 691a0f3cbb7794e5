package kv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
)

// decodeArray decodes a stored JSON array. Syntax errors are reported as
// domain.ErrUndecodable; well-formed JSON of the wrong shape (an object, null,
// an array of numbers) is reported as domain.ErrMalformedState. Object
// elements are decoded one by one and an element that still fails to decode
// is dropped, so one bad line does not discard the rest.
func decodeArray[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []T{}, nil
	}

	if trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("decode stored array: %w", domain.ErrUndecodable)
		}
		return nil, fmt.Errorf("stored value is not an array: %w", domain.ErrMalformedState)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("decode stored array: %w: %w", domain.ErrUndecodable, err)
		}
		return nil, fmt.Errorf("stored array has unexpected elements: %w: %w", domain.ErrMalformedState, err)
	}

	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		if len(elem) == 0 || elem[0] != '{' {
			return nil, fmt.Errorf("stored array element %d is not an object: %w", i, domain.ErrMalformedState)
		}
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func encodeArray[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode array: %w", err)
	}
	return data, nil
}
