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
	"testing"

	"github.com/nlnwa/webarc"
	"github.com/stretchr/testify/assert"
)

func metadata(kv ...string) *webarc.Metadata {
	md := webarc.NewMetadata()
	for i := 0; i+1 < len(kv); i += 2 {
		md.Set(kv[i], kv[i+1])
	}
	return md
}

func TestSelector_Match(t *testing.T) {
	html := metadata(webarc.HttpStatusCode, "200", webarc.HttpContentType, "Text/HTML; charset=utf-8")
	missing := metadata(webarc.HttpStatusCode, "404", webarc.HttpContentType, "text/html")
	pdf := metadata(webarc.MetadataContentType, "application/pdf")
	resource := metadata(webarc.WarcContentType, "text/plain")

	tests := []struct {
		name     string
		selector *Selector
		md       *webarc.Metadata
		want     bool
	}{
		{"nil selector", nil, pdf, true},
		{"zero selector", &Selector{}, html, true},
		{"include matches case insensitive", &Selector{Include: []string{"text/html"}}, html, true},
		{"include does not match", &Selector{Include: []string{"image/"}}, html, false},
		{"exclude wins", &Selector{Include: []string{"text/"}, Exclude: []string{"text/html"}}, html, false},
		{"falls back to Content-Type", &Selector{Include: []string{"application/pdf"}}, pdf, true},
		{"falls back to WARC-Content-Type", &Selector{Include: []string{"text/plain"}}, resource, true},
		{"status code allowed", &Selector{StatusCodes: []int{200, 301}}, html, true},
		{"status code not allowed", &Selector{StatusCodes: []int{200}}, missing, false},
		{"status code missing", &Selector{StatusCodes: []int{200}}, pdf, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.selector.Match(tt.md))
		})
	}
}
