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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFields(t *testing.T) {
	fields := &Fields{
		{WarcType, "response"},
		{WarcTargetURI, "http://example.com/"},
		{"content-type", "application/http; msgtype=response"},
		{ContentLength, "100"},
		{"X-Empty", ""},
	}

	tests := []struct {
		name string
		kind RecordKind
		want map[string]string
	}{
		{"warc", WARCRecord, map[string]string{
			WarcType:        "response",
			WarcTargetURI:   "http://example.com/",
			WarcContentType: "application/http; msgtype=response",
			ContentLength:   "100",
			"X-Empty":       "",
		}},
		{"arc", ARCRecord, map[string]string{
			WarcType:        "response",
			WarcTargetURI:   "http://example.com/",
			HttpContentType: "application/http; msgtype=response",
			ContentLength:   "100",
			"X-Empty":       "",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := NewMetadata()
			err := NormalizeFields(tt.kind, fields, md)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, md.Map())
			assert.False(t, md.Has("content-type"))
			assert.True(t, md.Has("X-Empty"))
		})
	}
}

func TestNormalizeFieldsKeepsResourceName(t *testing.T) {
	md := NewMetadata()
	md.Set(ResourceName, "http://example.com/")

	err := NormalizeFields(WARCRecord, &Fields{{ResourceName, "other"}, {WarcType, "response"}}, md)

	assert.ErrorIs(t, err, ErrReservedKey)
	assert.Equal(t, "http://example.com/", md.Get(ResourceName))
	assert.Equal(t, "response", md.Get(WarcType))
}

func TestNormalize(t *testing.T) {
	arc := &record{
		kind:          ARCRecord,
		url:           "http://example.com/",
		fields:        &Fields{{ArcSubjectURI, "http://example.com/"}, {ArcContentType, "text/html"}},
		statusCode:    200,
		hasStatusCode: true,
	}
	md := NewMetadata()
	assert.NoError(t, Normalize(arc, md))
	assert.Equal(t, []string{HttpStatusCode, ArcSubjectURI, HttpContentType}, md.Names())
	assert.Equal(t, "200", md.Get(HttpStatusCode))
	assert.Equal(t, "text/html", md.Get(HttpContentType))

	warc := &record{
		kind:       WARCRecord,
		recordType: TypeResponse,
		fields:     &Fields{{WarcType, TypeResponse}, {"Content-Type", "application/http; msgtype=response"}},
	}
	md = NewMetadata()
	assert.NoError(t, Normalize(warc, md))
	assert.False(t, md.Has(HttpStatusCode))
	assert.Equal(t, "application/http; msgtype=response", md.Get(WarcContentType))
}

func TestMergeHttpTransaction(t *testing.T) {
	md := NewMetadata()
	md.Set(ResourceName, "http://example.com/")
	md.Set(WarcContentType, "application/http; msgtype=response")

	tx := &HttpTransaction{
		StatusLine: "HTTP/1.1 200 OK",
		StatusCode: 200,
		Header: Fields{
			{"Content-Type", "text/html"},
			{"Set-Cookie", "a=1"},
			{"Set-Cookie", "b=2"},
			{"X-Empty", ""},
		},
	}
	assert.NoError(t, MergeHttpTransaction(tx, md))

	assert.Equal(t, "200", md.Get(HttpStatusCode))
	assert.Equal(t, "text/html", md.Get(HttpContentType))
	assert.Equal(t, "application/http; msgtype=response", md.Get(WarcContentType))
	assert.Equal(t, "b=2", md.Get("Set-Cookie"))
	assert.False(t, md.Has("Content-Type"))
	assert.True(t, md.Has("X-Empty"))
	assert.Equal(t, "", md.Get("X-Empty"))
}

func TestMergeHttpTransactionZeroStatus(t *testing.T) {
	md := NewMetadata()
	assert.NoError(t, MergeHttpTransaction(&HttpTransaction{StatusLine: "garbage"}, md))
	assert.Equal(t, "0", md.Get(HttpStatusCode))

	assert.NoError(t, MergeHttpTransaction(nil, md))
	assert.Equal(t, 1, md.Len())
}
