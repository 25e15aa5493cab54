package utils

import (
	"bytes"
	"encoding/json"
)

// OrderedKVMap is a JSON object that keeps keys in insertion order.
type OrderedKVMap[T any] struct {
	keys   []string
	values map[string]T
}

func NewOrderedKVMap[T any](size int) *OrderedKVMap[T] {
	return &OrderedKVMap[T]{
		keys:   make([]string, 0, size),
		values: make(map[string]T, size),
	}
}

// Set stores value under key. A repeated key keeps its first position.
func (om *OrderedKVMap[T]) Set(key string, value T) {
	if _, ok := om.values[key]; !ok {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
}

func (om *OrderedKVMap[T]) Get(key string) (T, bool) {
	v, ok := om.values[key]
	return v, ok
}

func (om *OrderedKVMap[T]) Keys() []string {
	return om.keys
}

func (om *OrderedKVMap[T]) Len() int {
	return len(om.keys)
}

func (om *OrderedKVMap[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range om.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valueBytes, err := json.Marshal(om.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
