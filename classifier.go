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

// Verdict tells the Walker what to do with a record's body.
type Verdict uint8

const (
	// Skip discards the body without reading it.
	Skip Verdict = iota
	// HttpTransactionBody strips an embedded http status line and headers before the payload is extracted.
	HttpTransactionBody
	// RawPassthrough extracts the body as is.
	RawPassthrough
)

func (v Verdict) String() string {
	switch v {
	case Skip:
		return "skip"
	case HttpTransactionBody:
		return "http"
	case RawPassthrough:
		return "raw"
	default:
		return "unknown"
	}
}

const (
	// WARC record types
	TypeWarcinfo     = "warcinfo"
	TypeResponse     = "response"
	TypeResource     = "resource"
	TypeRequest      = "request"
	TypeMetadata     = "metadata"
	TypeRevisit      = "revisit"
	TypeConversion   = "conversion"
	TypeContinuation = "continuation"
)

// Classify decides how a record should be processed.
//
// Records without content are skipped. ARC records have had their http headers removed by the container reader and
// are passed through. For WARC, only response records are extracted and their body is an http transaction.
func Classify(kind RecordKind, declaredType string, contentLength int64) Verdict {
	if contentLength <= 0 {
		return Skip
	}
	switch kind {
	case ARCRecord:
		return RawPassthrough
	case WARCRecord:
		if declaredType == TypeResponse {
			return HttpTransactionBody
		}
	}
	return Skip
}
