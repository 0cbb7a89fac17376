/*
 * Copyright 2023 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package webarc

import (
	"bytes"
	"encoding/json"
)

const (
	// Metadata keys set by this package
	ResourceName        = "resourceName"
	MetadataContentType = "Content-Type"
	HttpStatusCode      = "HTTP-Status-Code"
	HttpContentType     = "HTTP-Content-Type"
	WarcContentType     = "WARC-Content-Type"
)

// VersionKey returns the key holding the container version for the given format, e.g. WARC-Version.
func VersionKey(f Format) string {
	return f.String() + "-Version"
}

// Metadata is the flat key-value description of a record or a container.
//
// Keys are case sensitive. Setting an existing key replaces its value but keeps its position, so iteration order
// is the order in which keys were first set.
type Metadata struct {
	keys   []string
	values map[string]string
}

// NewMetadata returns an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]string)}
}

func (m *Metadata) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Metadata) Get(key string) string {
	return m.values[key]
}

func (m *Metadata) Lookup(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Metadata) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Names returns the keys in insertion order.
func (m *Metadata) Names() []string {
	return append([]string(nil), m.keys...)
}

func (m *Metadata) Len() int {
	return len(m.keys)
}

// Map returns a copy of the metadata as a plain map.
func (m *Metadata) Map() map[string]string {
	r := make(map[string]string, len(m.values))
	for k, v := range m.values {
		r[k] = v
	}
	return r
}

// MarshalJSON encodes the metadata as a JSON object with keys in insertion order.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *Metadata) String() string {
	b, _ := m.MarshalJSON()
	return string(b)
}
