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
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NameValue is a single header field.
type NameValue struct {
	Name  string
	Value string
}

func (n *NameValue) String() string {
	return n.Name + ": " + n.Value
}

// Fields is an ordered list of header fields. It is used both for archive record headers and for http headers.
//
// Lookups are case insensitive, but names are kept as they were found.
type Fields []*NameValue

// Get gets the first value associated with the given name. It is case insensitive.
// If the name doesn't exist, Get returns "".
func (f *Fields) Get(name string) string {
	for _, nv := range *f {
		if strings.EqualFold(nv.Name, name) {
			return nv.Value
		}
	}
	return ""
}

// GetInt64 parses the value of name as a decimal integer.
func (f *Fields) GetInt64(name string) (int64, error) {
	v := f.Get(name)
	if v == "" {
		return 0, fmt.Errorf("missing field %s", name)
	}
	return strconv.ParseInt(v, 10, 64)
}

// Add appends a field, keeping earlier fields with the same name.
func (f *Fields) Add(name string, value string) {
	*f = append(*f, &NameValue{Name: name, Value: value})
}

// Set replaces the value of the first field with the given name and removes the rest.
// The field is appended if it doesn't exist. Position and spelling of the first occurrence are kept.
func (f *Fields) Set(name string, value string) {
	isSet := false
	result := (*f)[:0]
	for _, nv := range *f {
		if strings.EqualFold(nv.Name, name) {
			if isSet {
				continue
			}
			nv.Value = value
			isSet = true
		}
		result = append(result, nv)
	}
	*f = result
	if !isSet {
		*f = append(*f, &NameValue{Name: name, Value: value})
	}
}

func (f *Fields) Write(w io.Writer) (bytesWritten int64, err error) {
	var n int
	for _, field := range *f {
		n, err = fmt.Fprintf(w, "%s: %s\r\n", field.Name, field.Value)
		bytesWritten += int64(n)
		if err != nil {
			return
		}
	}
	return
}

func (f *Fields) String() string {
	sb := &strings.Builder{}
	if _, err := f.Write(sb); err != nil {
		panic(err)
	}
	return sb.String()
}
