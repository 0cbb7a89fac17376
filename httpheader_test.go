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
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHttpHeader(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		wantStatusLine string
		wantStatusCode int
		wantHeader     Fields
		wantPayload    string
		wantErrs       []error
	}{
		{
			"valid",
			"HTTP/1.1 200 OK\r\nContent-Type: text/html\r\nContent-Length: 7\r\n\r\npayload",
			"HTTP/1.1 200 OK",
			200,
			Fields{{"Content-Type", "text/html"}, {"Content-Length", "7"}},
			"payload",
			nil,
		},
		{
			"lf line endings",
			"HTTP/1.0 404 Not Found\nContent-Type: text/plain\n\nnot found",
			"HTTP/1.0 404 Not Found",
			404,
			Fields{{"Content-Type", "text/plain"}},
			"not found",
			nil,
		},
		{
			"repeated headers are kept in order",
			"HTTP/1.1 302 Found\r\nSet-Cookie: a=1\r\nLocation: /b\r\nSet-Cookie: b=2\r\n\r\n",
			"HTTP/1.1 302 Found",
			302,
			Fields{{"Set-Cookie", "a=1"}, {"Location", "/b"}, {"Set-Cookie", "b=2"}},
			"",
			nil,
		},
		{
			"whitespace around names and values",
			"HTTP/1.1 200 OK\r\n  Content-Type :   text/html  \r\n\r\n<p>",
			"HTTP/1.1 200 OK",
			200,
			Fields{{"Content-Type", "text/html"}},
			"<p>",
			nil,
		},
		{
			"continuation line",
			"HTTP/1.1 200 OK\r\nX-Long: first\r\n\tsecond\r\n\r\nbody",
			"HTTP/1.1 200 OK",
			200,
			Fields{{"X-Long", "first second"}},
			"body",
			nil,
		},
		{
			"value containing colon",
			"HTTP/1.1 200 OK\r\nLocation: http://example.com:8080/\r\n\r\n",
			"HTTP/1.1 200 OK",
			200,
			Fields{{"Location", "http://example.com:8080/"}},
			"",
			nil,
		},
		{
			"status line not starting with HTTP",
			"ICY 200 OK\r\nContent-Type: audio/mpeg\r\n\r\nmp3",
			"",
			0,
			nil,
			"ICY 200 OK\r\nContent-Type: audio/mpeg\r\n\r\nmp3",
			[]error{ErrMalformedStatusLine},
		},
		{
			"body without http header is left unread",
			"<html>\n<body>hello</body>\n</html>",
			"",
			0,
			nil,
			"<html>\n<body>hello</body>\n</html>",
			[]error{ErrMalformedStatusLine},
		},
		{
			"leading blank line before status line",
			"\r\nHTTP/1.1 204 No Content\r\n\r\n",
			"",
			0,
			nil,
			"\r\nHTTP/1.1 204 No Content\r\n\r\n",
			[]error{ErrMalformedStatusLine},
		},
		{
			"status code not a number",
			"HTTP/1.1 OK\r\nContent-Type: text/html\r\n\r\nbody",
			"HTTP/1.1 OK",
			0,
			Fields{{"Content-Type", "text/html"}},
			"body",
			[]error{ErrMalformedStatusLine},
		},
		{
			"header line without colon is skipped",
			"HTTP/1.1 200 OK\r\nbogus line\r\nContent-Type: text/html\r\n\r\nbody",
			"HTTP/1.1 200 OK",
			200,
			Fields{{"Content-Type", "text/html"}},
			"body",
			[]error{ErrMalformedHeaderBlock},
		},
		{
			"header line without name is skipped",
			"HTTP/1.1 200 OK\r\n: no name\r\n\r\nbody",
			"HTTP/1.1 200 OK",
			200,
			nil,
			"body",
			[]error{ErrMalformedHeaderBlock},
		},
		{
			"missing end of headers",
			"HTTP/1.1 200 OK\r\nContent-Type: text/html",
			"HTTP/1.1 200 OK",
			200,
			Fields{{"Content-Type", "text/html"}},
			"",
			[]error{ErrMalformedHeaderBlock},
		},
		{
			"empty input",
			"",
			"",
			0,
			nil,
			"",
			[]error{ErrMalformedStatusLine},
		},
		{
			"latin-1 header value",
			"HTTP/1.1 200 OK\r\nX-Name: bl\xe5b\xe6r\r\n\r\n",
			"HTTP/1.1 200 OK",
			200,
			Fields{{"X-Name", "blåbær"}},
			"",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			r := bufio.NewReader(strings.NewReader(tt.input))

			tx, err := ParseHttpHeader(r)

			assert.NotNil(tx)
			assert.Equal(tt.wantStatusLine, tx.StatusLine)
			assert.Equal(tt.wantStatusCode, tx.StatusCode)
			assert.Equal(tt.wantHeader, tx.Header)
			if len(tt.wantErrs) == 0 {
				assert.NoError(err)
			}
			for _, want := range tt.wantErrs {
				assert.ErrorIs(err, want)
			}

			payload, err := io.ReadAll(r)
			assert.NoError(err)
			assert.Equal(tt.wantPayload, string(payload))
		})
	}
}

func TestParseHttpHeaderLeavesPayloadUnbuffered(t *testing.T) {
	payload := strings.Repeat("x", 10000)
	r := bufio.NewReaderSize(strings.NewReader("HTTP/1.1 200 OK\r\n\r\n"+payload), 16)

	tx, err := ParseHttpHeader(r)
	assert.NoError(t, err)
	assert.Equal(t, 200, tx.StatusCode)

	b, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, payload, string(b))
}
