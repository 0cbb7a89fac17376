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

	"github.com/nlnwa/webarc"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// CropString returns s cropped to at most n characters, marking cropped strings with '...'.
func CropString(s string, n int) string {
	if len(s) > n && n > 3 {
		s = s[:n-3] + "..."
	}
	return s
}

func Contains(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

// PolicyValue is a flag value accepting the name of an error policy.
type PolicyValue struct {
	name string
}

func NewPolicyValue(name string) *PolicyValue {
	return &PolicyValue{name: name}
}

func (p *PolicyValue) String() string {
	return p.name
}

func (p *PolicyValue) Set(name string) error {
	if _, err := webarc.ParseErrorPolicy(name); err != nil {
		return err
	}
	p.name = name
	return nil
}

func (p *PolicyValue) Type() string {
	return "policy"
}

// WalkerOptions returns the options for walking archives as configured by the persistent flags, config file and
// environment.
func WalkerOptions() ([]webarc.Option, error) {
	syntaxPolicy, err := webarc.ParseErrorPolicy(viper.GetString("syntax-errors"))
	if err != nil {
		return nil, err
	}
	handlerPolicy, err := webarc.ParseErrorPolicy(viper.GetString("handler-errors"))
	if err != nil {
		return nil, err
	}

	opts := []webarc.Option{
		webarc.WithLogger(log.StandardLogger()),
		webarc.WithSyntaxErrorPolicy(syntaxPolicy),
		webarc.WithHandlerErrorPolicy(handlerPolicy),
	}
	if size := viper.GetSizeInBytes("buffer-size"); size > 0 {
		opts = append(opts, webarc.WithBufferSize(int(size)))
	}
	return opts, nil
}

// OpenArchive opens a file and selects its format from the file name.
func OpenArchive(fileName string) (*os.File, webarc.Format, error) {
	format, err := webarc.FormatFromFileName(fileName)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, 0, err
	}
	return f, format, nil
}
