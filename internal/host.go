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
	"sync"
)

var (
	hostOnce sync.Once
	hostName string
)

// HostName returns the hostname reported by the kernel.
// If resolution fails, 'unknown' is returned.
func HostName() string {
	hostOnce.Do(func() {
		var err error
		if hostName, err = os.Hostname(); err != nil || hostName == "" {
			hostName = "unknown"
		}
	})
	return hostName
}
