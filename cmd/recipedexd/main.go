// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/NVIDIA/recipedex/pkg/api"
	"github.com/NVIDIA/recipedex/pkg/logging"
)

const name = "recipedexd"

var (
	// overridden during build with ldflags
	version = "dev"
)

func main() {
	logging.SetDefaultStructuredLogger(name, version)

	if err := api.Serve(context.Background(), api.ConfigFromEnv(version)); err != nil {
		slog.Error("exiting", "error", err)
		os.Exit(1)
	}
}
