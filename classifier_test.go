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

func TestClassify(t *testing.T) {
	tests := []struct {
		kind          RecordKind
		declaredType  string
		contentLength int64
		want          Verdict
	}{
		{WARCRecord, TypeResponse, 100, HttpTransactionBody},
		{WARCRecord, TypeResponse, 0, Skip},
		{WARCRecord, TypeResponse, -1, Skip},
		{WARCRecord, TypeRequest, 100, Skip},
		{WARCRecord, TypeWarcinfo, 100, Skip},
		{WARCRecord, TypeMetadata, 100, Skip},
		{WARCRecord, TypeResource, 100, Skip},
		{WARCRecord, TypeRevisit, 100, Skip},
		{WARCRecord, TypeConversion, 100, Skip},
		{WARCRecord, TypeContinuation, 100, Skip},
		{WARCRecord, "Response", 100, Skip},
		{WARCRecord, "", 100, Skip},
		{ARCRecord, "", 100, RawPassthrough},
		{ARCRecord, TypeResponse, 100, RawPassthrough},
		{ARCRecord, "", 0, Skip},
		{0, TypeResponse, 100, Skip},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.declaredType, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.kind, tt.declaredType, tt.contentLength))
		})
	}
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "skip", Skip.String())
	assert.Equal(t, "http", HttpTransactionBody.String())
	assert.Equal(t, "raw", RawPassthrough.String())
	assert.Equal(t, "unknown", Verdict(42).String())
}
