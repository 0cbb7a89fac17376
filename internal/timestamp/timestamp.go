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
// Package timestamp converts between the date formats used by ARC and WARC records.
package timestamp

import (
	"fmt"
	"time"
)

const (
	layout14      = "20060102150405"
	layoutW3cIso  = "2006-01-02T15:04:05Z07:00"
	layoutW3cNano = time.RFC3339Nano
)

// To14 converts a W3C ISO-8601 date, as used in WARC-Date, to the 14 digit form used by ARC.
func To14(s string) (string, error) {
	t, err := time.Parse(layoutW3cNano, s)
	if err != nil {
		return "", err
	}
	return UTC14(t), nil
}

// From14ToTime parses a 14 digit ARC date.
func From14ToTime(s string) (time.Time, error) {
	return time.Parse(layout14, s)
}

// Any14 accepts either a 14 digit ARC date or a W3C ISO-8601 date and returns the 14 digit form.
func Any14(s string) (string, error) {
	if len(s) == len(layout14) {
		if _, err := From14ToTime(s); err == nil {
			return s, nil
		}
	}
	ts, err := To14(s)
	if err != nil {
		return "", fmt.Errorf("not a valid date: '%s'", s)
	}
	return ts, nil
}

func UTC(t time.Time) time.Time {
	return t.In(time.UTC)
}

func UTC14(t time.Time) string {
	return t.In(time.UTC).Format(layout14)
}

func UTCW3cIso8601(t time.Time) string {
	return t.In(time.UTC).Format(layoutW3cIso)
}
