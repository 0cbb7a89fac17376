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
	"errors"
	"strconv"
	"strings"
)

// Validation contains recoverable errors found while parsing a record.
//
// A non-empty Validation can be returned as an error. errors.Is reports true if any of the collected errors matches.
type Validation []error

func (v *Validation) String() string {
	if len(*v) == 0 {
		return ""
	}

	sb := strings.Builder{}
	sb.WriteString("webarc: Validation errors:\n")
	for i, e := range *v {
		sb.WriteString("  ")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(": ")
		sb.WriteString(e.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (v *Validation) Error() string {
	switch len(*v) {
	case 0:
		return ""
	case 1:
		return (*v)[0].Error()
	}

	sb := strings.Builder{}
	sb.WriteString("[")
	for i, e := range *v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Error())
	}
	sb.WriteString("]")
	return sb.String()
}

func (v *Validation) Is(target error) bool {
	for _, e := range *v {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}

func (v *Validation) AddError(err error) {
	*v = append(*v, err)
}

// Valid returns true if no errors were collected.
func (v *Validation) Valid() bool {
	return len(*v) == 0
}

// asError returns nil for an empty Validation to avoid the typed nil trap.
func (v *Validation) asError() error {
	if v == nil || len(*v) == 0 {
		return nil
	}
	return v
}

type position struct {
	lineNumber int
}

func (p *position) incrLineNumber() *position {
	p.lineNumber++
	return p
}
