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
// Package digest computes digests written as '<algorithm>:<encoded value>', like the WARC-Payload-Digest header.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

type Encoding uint8

const (
	Unknown Encoding = 0
	Base16  Encoding = 1
	Base32  Encoding = 2
	Base64  Encoding = 3
)

func (e Encoding) encode(sum []byte) string {
	switch e {
	case Base16:
		return hex.EncodeToString(sum)
	case Base64:
		return base64.StdEncoding.EncodeToString(sum)
	default:
		return base32.StdEncoding.EncodeToString(sum)
	}
}

func detectEncoding(algorithm, value string, defaultEncoding Encoding) Encoding {
	var size int
	switch algorithm {
	case "md5":
		if len(value) == 32 {
			// base16 and base32 have the same length for md5, but base32 is padded
			if strings.HasSuffix(value, "=") {
				return Base32
			}
			return Base16
		}
		size = md5.Size
	case "sha1":
		size = sha1.Size
	case "sha256":
		size = sha256.Size
	case "sha512":
		size = sha512.Size
	}
	switch len(value) {
	case size * 2:
		return Base16
	case base32.StdEncoding.EncodedLen(size):
		return Base32
	case base64.StdEncoding.EncodedLen(size):
		return Base64
	}
	return defaultEncoding
}

// Digest is a running hash which formats its sum the way a declared digest was written.
type Digest struct {
	hash.Hash
	name     string
	encoding Encoding
}

// New creates a Digest from a string like 'sha1:T4NG5T3U5H43DLSS5DVVQHKCBZR6QRJ2'. The value part is optional. If
// present, its encoding is detected from its length and used for Format. Otherwise defaultEncoding is used.
// An empty algorithm means sha1.
func New(digestString string, defaultEncoding Encoding) (*Digest, error) {
	algorithm, value, _ := strings.Cut(strings.TrimSpace(digestString), ":")
	algorithm = strings.ReplaceAll(strings.ToLower(algorithm), "-", "")
	if algorithm == "" {
		algorithm = "sha1"
	}

	var h hash.Hash
	switch algorithm {
	case "md5":
		h = md5.New()
	case "sha1":
		h = sha1.New()
	case "sha256":
		h = sha256.New()
	case "sha512":
		h = sha512.New()
	default:
		return nil, fmt.Errorf("unsupported digest algorithm '%s'", algorithm)
	}
	return &Digest{Hash: h, name: algorithm, encoding: detectEncoding(algorithm, value, defaultEncoding)}, nil
}

// Format returns the digest of the data written so far, e.g. 'sha1:T4NG5T3U5H43DLSS5DVVQHKCBZR6QRJ2'.
func (d *Digest) Format() string {
	return d.name + ":" + d.encoding.encode(d.Sum(nil))
}
