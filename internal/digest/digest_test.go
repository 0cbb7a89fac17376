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
package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name            string
		digestString    string
		defaultEncoding Encoding
		wantDigest      string
		wantErr         bool
	}{
		{"md5", "md5", Base16, "md5:b53227da4280f0e18270f21dd77c91d0", false},
		{"md5 with base32 digest", "md5:WUZCPWSCQDYODATQ6IO5O7ER2A======", Base16, "md5:WUZCPWSCQDYODATQ6IO5O7ER2A======", false},
		{"md5 with base64 default", "md5:12345", Base64, "md5:tTIn2kKA8OGCcPId13yR0A==", false},
		{"sha1", "sha1", Base32, "sha1:T4NG5T3U5H43DLSS5DVVQHKCBZR6QRJ2", false},
		{"empty algorithm", "", Base32, "sha1:T4NG5T3U5H43DLSS5DVVQHKCBZR6QRJ2", false},
		{"SHA-1 with base16 default", "SHA-1:12345", Base16, "sha1:9f1a6ecf74e9f9b1ae52e8eb581d420e63e8453a", false},
		{"sha1 with base64 digest", "sha1:nxpuz3Tp+bGuUujrWB1CDmPoRTo=", Base32, "sha1:nxpuz3Tp+bGuUujrWB1CDmPoRTo=", false},
		{"sha256", "sha-256", Base16, "sha256:9c6609fc5111405ea3f5bb3d1f6b5a5efd19a0cec53d85893fd96d265439cd5b", false},
		{"sha256 with base32 default", "sha256", Base32, "sha256:TRTAT7CRCFAF5I7VXM6R6222L36RTIGOYU6YLCJ73FWSMVBZZVNQ====", false},
		{"unknown algorithm", "mysecret:12345", Base16, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.digestString, tt.defaultEncoding)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			_, err = d.Write([]byte("Some content"))
			assert.NoError(t, err)
			assert.Equal(t, tt.wantDigest, d.Format())
		})
	}
}
