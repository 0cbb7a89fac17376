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
	"context"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func testWarcRecord(recordType, uri, contentType, content string) string {
	sb := strings.Builder{}
	sb.WriteString("WARC/1.0\r\n")
	sb.WriteString("WARC-Type: " + recordType + "\r\n")
	if uri != "" {
		sb.WriteString("WARC-Target-URI: " + uri + "\r\n")
	}
	sb.WriteString("WARC-Date: 2017-03-06T04:03:53Z\r\n")
	sb.WriteString("WARC-Record-ID: <urn:uuid:e9a0cecc-0221-11e7-adb1-0242ac120008>\r\n")
	if contentType != "" {
		sb.WriteString("Content-Type: " + contentType + "\r\n")
	}
	sb.WriteString("Content-Length: " + strconv.Itoa(len(content)) + "\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(content)
	sb.WriteString("\r\n\r\n")
	return sb.String()
}

func testHttpResponse(status, contentType, payload string) string {
	return "HTTP/1.1 " + status + "\r\n" +
		"Content-Type: " + contentType + "\r\n" +
		"Server: Apache/2.0.54 (Ubuntu)\r\n" +
		"\r\n" +
		payload
}

func testWarcResponse(uri, contentType, payload string) string {
	return testWarcRecord(TypeResponse, uri, "application/http; msgtype=response", testHttpResponse("200 OK", contentType, payload))
}

// testWarcFile returns a warcinfo, a request and six responses.
func testWarcFile() []string {
	return []string{
		testWarcRecord(TypeWarcinfo, "", "application/warc-fields", "software: test\r\nformat: WARC File Format 1.0\r\n"),
		testWarcRecord(TypeRequest, "http://example.com/", "application/http; msgtype=request",
			"GET / HTTP/1.1\r\nHost: example.com\r\n\r\n"),
		testWarcResponse("http://example.com/", "text/html", "<html><body>root</body></html>"),
		testWarcResponse("http://example.com/style.css", "text/css", "body { color: red }"),
		testWarcResponse("http://example.com/script.js", "application/javascript", "alert('hi')"),
		testWarcResponse("http://example.com/image.png", "image/png", "\x89PNG\r\n\x1a\n"),
		testWarcResponse("http://example.com/doc.pdf", "application/pdf", "%PDF-1.4"),
		testWarcResponse("http://example.com/page.html", "text/html; charset=utf-8", "<html>page</html>"),
	}
}

func testArcFile(records ...string) string {
	desc := "1 1 InternetArchive\nURL IP-address Archive-date Content-type Archive-length\n" +
		"<arcmetadata><arc:software>test</arc:software></arcmetadata>\n"
	sb := strings.Builder{}
	sb.WriteString("filedesc://test.arc 0.0.0.0 20060622190110 text/plain " + strconv.Itoa(len(desc)) + "\n")
	sb.WriteString(desc)
	sb.WriteString("\n")
	for _, r := range records {
		sb.WriteString(r)
	}
	return sb.String()
}

func testArcRecord(url, contentType, content string) string {
	return url + " 127.0.0.1 20060622190110 " + contentType + " " + strconv.Itoa(len(content)) + "\n" + content + "\n"
}

func gzipMembers(t *testing.T, members ...string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	for _, m := range members {
		gz := gzip.NewWriter(buf)
		_, err := gz.Write([]byte(m))
		require.NoError(t, err)
		require.NoError(t, gz.Close())
	}
	return buf.Bytes()
}

type testExtractor struct {
	filter   func(md *Metadata) bool
	err      error
	metadata []*Metadata
	payloads []string
}

func (e *testExtractor) ShouldHandle(md *Metadata) bool {
	return e.filter == nil || e.filter(md)
}

func (e *testExtractor) Handle(_ context.Context, payload io.Reader, md *Metadata) error {
	b, err := io.ReadAll(payload)
	if err != nil {
		return err
	}
	e.metadata = append(e.metadata, md)
	e.payloads = append(e.payloads, string(b))
	return e.err
}
