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
package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nlnwa/webarc"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropString(t *testing.T) {
	assert.Equal(t, "short", CropString("short", 10))
	assert.Equal(t, "http:/...", CropString("http://example.com/", 9))
}

func TestPolicyValue(t *testing.T) {
	p := NewPolicyValue("warn")
	assert.Equal(t, "warn", p.String())
	assert.NoError(t, p.Set("fail"))
	assert.Equal(t, "fail", p.String())
	assert.Error(t, p.Set("explode"))
	assert.Equal(t, "fail", p.String())
}

func TestWalkerOptions(t *testing.T) {
	defer viper.Reset()

	viper.Set("syntax-errors", "fail")
	viper.Set("handler-errors", "ignore")
	viper.Set("buffer-size", "1MB")
	opts, err := WalkerOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 4)

	viper.Set("handler-errors", "sometimes")
	_, err = WalkerOptions()
	assert.Error(t, err)
}

func TestOpenArchive(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "test.arc.gz")
	require.NoError(t, os.WriteFile(name, nil, 0o644))

	f, format, err := OpenArchive(name)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, webarc.ARC, format)

	_, _, err = OpenArchive(filepath.Join(dir, "test.txt"))
	assert.ErrorIs(t, err, webarc.ErrUnsupportedFormat)

	_, _, err = OpenArchive(filepath.Join(dir, "missing.warc"))
	assert.Error(t, err)
}
