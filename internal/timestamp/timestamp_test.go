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
package timestamp_test

import (
	"testing"
	"time"

	"github.com/nlnwa/webarc/internal/timestamp"
	"github.com/stretchr/testify/assert"
)

var (
	testTime   = time.Date(2006, 6, 22, 19, 1, 10, 0, time.UTC)
	testIso    = "2006-06-22T19:01:10Z"
	testArc14  = "20060622190110"
	notAnyDate = "ThisIsNotADate20200303"
)

func TestTo14(t *testing.T) {
	got, err := timestamp.To14(testIso)
	assert.NoError(t, err)
	assert.Equal(t, testArc14, got)

	got, err = timestamp.To14("2006-06-22T21:01:10.123+02:00")
	assert.NoError(t, err)
	assert.Equal(t, testArc14, got)

	_, err = timestamp.To14(notAnyDate)
	assert.Error(t, err)
}

func TestFrom14ToTime(t *testing.T) {
	got, err := timestamp.From14ToTime(testArc14)
	assert.NoError(t, err)
	assert.Equal(t, testTime, got)

	_, err = timestamp.From14ToTime(notAnyDate)
	assert.Error(t, err)
}

func TestAny14(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{testArc14, testArc14, false},
		{testIso, testArc14, false},
		{"", "", true},
		{"20061322190110", "", true},
		{notAnyDate, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := timestamp.Any14(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUTC(t *testing.T) {
	local := testTime.In(time.FixedZone("CEST", 2*60*60))
	assert.Equal(t, testTime, timestamp.UTC(local))
	assert.Equal(t, testArc14, timestamp.UTC14(local))
	assert.Equal(t, testIso, timestamp.UTCW3cIso8601(local))
}
