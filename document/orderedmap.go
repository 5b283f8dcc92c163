// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package document

// orderedMap is a string-to-string map that remembers the order in which
// keys were first inserted. Overwriting an existing key keeps its original
// position; removing and re-adding a key moves it to the end. There is no
// library in the reference corpus for an insertion-ordered string map, so
// this is the one part of Document built directly on the standard library.
type orderedMap struct {
	order []string
	data  map[string]string
}

func newOrderedMap() *orderedMap {
	return &orderedMap{data: make(map[string]string)}
}

func (m *orderedMap) get(key string) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *orderedMap) set(key, value string) {
	if _, ok := m.data[key]; !ok {
		m.order = append(m.order, key)
	}
	m.data[key] = value
}

func (m *orderedMap) delete(key string) (string, bool) {
	v, ok := m.data[key]
	if !ok {
		return "", false
	}
	delete(m.data, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return v, true
}

func (m *orderedMap) keys() []string {
	return append([]string(nil), m.order...)
}

func (m *orderedMap) len() int { return len(m.order) }

func (m *orderedMap) clear() {
	m.order = nil
	m.data = make(map[string]string)
}

func (m *orderedMap) clone() *orderedMap {
	c := newOrderedMap()
	c.order = append([]string(nil), m.order...)
	for k, v := range m.data {
		c.data[k] = v
	}
	return c
}
