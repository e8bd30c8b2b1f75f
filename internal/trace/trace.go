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

package trace

import (
	"sync"

	"go.uber.org/zap"
)

var (
	nop  = zap.NewNop()
	once sync.Once
	dev  *zap.Logger
)

func build() {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true

	/* fall back to the no-op logger if stderr is unusable */
	if l, err := cfg.Build(); err != nil {
		println("egopt: cannot build trace logger:", err.Error())
		dev = nop
	} else {
		dev = l
	}
}

// Logger returns the shared development logger if enabled is set, or a
// logger that discards everything.
func Logger(enabled bool) *zap.Logger {
	if !enabled {
		return nop
	}
	once.Do(build)
	return dev
}
