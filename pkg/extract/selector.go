/*
 * Copyright 2021 National Library of Norway.
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
package extract

import (
	"strconv"
	"strings"

	"github.com/nlnwa/webarc"
)

// Selector decides which records to extract based on their metadata.
//
// Media types are matched by prefix against HTTP-Content-Type, falling back to WARC-Content-Type and then
// Content-Type.
// A zero Selector matches every record.
type Selector struct {
	// Include lists media type prefixes to extract. If empty, every media type not excluded is extracted.
	Include []string
	// Exclude lists media type prefixes to skip. Exclude wins over Include.
	Exclude []string
	// StatusCodes lists the http status codes to extract. If empty, the status code is not checked.
	StatusCodes []int
}

// Match returns true if the record described by md should be extracted.
func (s *Selector) Match(md *webarc.Metadata) bool {
	if s == nil {
		return true
	}
	mediaType := mediaTypeOf(md)
	for _, p := range s.Exclude {
		if hasPrefixFold(mediaType, p) {
			return false
		}
	}
	if len(s.Include) > 0 {
		included := false
		for _, p := range s.Include {
			if hasPrefixFold(mediaType, p) {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	if len(s.StatusCodes) > 0 {
		code, err := strconv.Atoi(md.Get(webarc.HttpStatusCode))
		if err != nil {
			return false
		}
		for _, c := range s.StatusCodes {
			if c == code {
				return true
			}
		}
		return false
	}
	return true
}

func mediaTypeOf(md *webarc.Metadata) string {
	for _, key := range []string{webarc.HttpContentType, webarc.WarcContentType} {
		if v, ok := md.Lookup(key); ok {
			return strings.TrimSpace(v)
		}
	}
	return strings.TrimSpace(md.Get(webarc.MetadataContentType))
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
