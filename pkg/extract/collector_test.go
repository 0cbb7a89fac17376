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
	"context"
	"strings"
	"testing"

	"github.com/nlnwa/webarc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := &Collector{Selector: &Selector{Include: []string{"text/"}}}

	_, err := webarc.NewWalker().Walk(context.Background(), strings.NewReader(testWarc()), webarc.WARC, "test.warc", c)
	require.NoError(t, err)

	records := c.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "http://example.com/", records[0].Metadata.Get(webarc.ResourceName))
	assert.Equal(t, int64(len("<html>root</html>")), records[0].Size)
	assert.True(t, strings.HasPrefix(records[0].Digest, "sha1:"))
	assert.Len(t, records[0].Digest, len("sha1:")+32)
	assert.Equal(t, int64(len("body {}")), records[1].Size)
	assert.NotEqual(t, records[0].Digest, records[1].Digest)

	c.Reset()
	assert.Empty(t, c.Records())
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name       string
		digest     string
		wantDigest string
	}{
		{"no declared digest", "", "sha1:T4NG5T3U5H43DLSS5DVVQHKCBZR6QRJ2"},
		{"declared digest", "sha1:T4NG5T3U5H43DLSS5DVVQHKCBZR6QRJ2", "sha1:T4NG5T3U5H43DLSS5DVVQHKCBZR6QRJ2"},
		{"declared digest not checked", "sha1:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "sha1:T4NG5T3U5H43DLSS5DVVQHKCBZR6QRJ2"},
		{"base16 digest", "sha1:9f1a6ecf74e9f9b1ae52e8eb581d420e63e8453a", "sha1:9f1a6ecf74e9f9b1ae52e8eb581d420e63e8453a"},
		{"md5 digest", "md5:b53227da4280f0e18270f21dd77c91d0", "md5:b53227da4280f0e18270f21dd77c91d0"},
		{"unsupported algorithm", "crc32:1234", "sha1:T4NG5T3U5H43DLSS5DVVQHKCBZR6QRJ2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := webarc.NewMetadata()
			if tt.digest != "" {
				md.Set(payloadDigestKey, tt.digest)
			}
			r, err := Summarize(strings.NewReader("Some content"), md)
			require.NoError(t, err)
			assert.Equal(t, int64(12), r.Size)
			assert.Equal(t, tt.wantDigest, r.Digest)
		})
	}
}
