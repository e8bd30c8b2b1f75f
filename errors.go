/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package egopt

import (
    `fmt`
)

// ConfigError occures when a configuration value cannot be used.
type ConfigError struct {
    Key   string
    Value string
    Err   error
}

func (self ConfigError) Error() string {
    return fmt.Sprintf("ConfigError(%s=%q): %v", self.Key, self.Value, self.Err)
}

func (self ConfigError) Unwrap() error {
    return self.Err
}
