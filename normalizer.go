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
	"strconv"
	"strings"
)

// contentTypeKey returns the key a record's own Content-Type field is stored under.
func contentTypeKey(kind RecordKind) string {
	if kind == ARCRecord {
		return HttpContentType
	}
	return WarcContentType
}

// NormalizeFields copies header fields into md.
//
// Every field is copied under its own name except Content-Type (compared case-insensitively), which is stored under
// HTTP-Content-Type for ARC and WARC-Content-Type for WARC. Fields present with an empty value are copied as such.
// A field named like the resource name key is not copied and is reported in the returned *Validation.
func NormalizeFields(kind RecordKind, fields *Fields, md *Metadata) error {
	validation := &Validation{}
	if fields == nil {
		return nil
	}
	for _, nv := range *fields {
		key := nv.Name
		if strings.EqualFold(key, MetadataContentType) {
			key = contentTypeKey(kind)
		}
		setMetadata(md, key, nv.Value, validation)
	}
	return validation.asError()
}

// Normalize builds the metadata of one record: the header fields, and for ARC records the status code found by the
// container reader.
func Normalize(rec RawRecord, md *Metadata) error {
	if code, ok := rec.StatusCode(); ok && rec.Kind() == ARCRecord {
		md.Set(HttpStatusCode, strconv.Itoa(code))
	}
	return NormalizeFields(rec.Kind(), rec.Fields(), md)
}

// MergeHttpTransaction adds the status code and headers of tx to md.
//
// The status code is stored under HTTP-Status-Code and the Content-Type header under HTTP-Content-Type. Other
// headers are stored under their own name. A header repeated in tx, or already present in md, is overwritten by the
// last value.
func MergeHttpTransaction(tx *HttpTransaction, md *Metadata) error {
	validation := &Validation{}
	if tx == nil {
		return nil
	}
	md.Set(HttpStatusCode, strconv.Itoa(tx.StatusCode))
	for _, nv := range tx.Header {
		key := nv.Name
		if strings.EqualFold(key, MetadataContentType) {
			key = HttpContentType
		}
		setMetadata(md, key, nv.Value, validation)
	}
	return validation.asError()
}

func setMetadata(md *Metadata, key, value string, validation *Validation) {
	if key == ResourceName {
		validation.AddError(fmt.Errorf("%w: refusing to overwrite %s with '%s'", ErrReservedKey, ResourceName, value))
		return
	}
	md.Set(key, value)
}
