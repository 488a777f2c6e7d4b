// Copyright 2026 The Lattice Authors.
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

package plan

import (
	"path/filepath"
	"strings"

	"github.com/lattice-lang/latticec/internal/options"
)

var extensionToFileType = map[string]FileType{
	".lat":       FileTypeSource,
	".latmodule": FileTypeModule,
	".h":         FileTypeHeaderBridge,
	".hpp":       FileTypeHeaderBridge,
}

// CollectInputs maps each input token in parsed, in argv order, to an
// InputFile. Unknown extensions default to FileTypeObject; the stdin
// sentinel is always typed as the primary source language.
func CollectInputs(parsed *options.ParsedOptions) []InputFile {
	var inputs []InputFile
	for _, token := range parsed.AllInputs() {
		if token == options.StdinSentinel {
			inputs = append(inputs, InputFile{Path: token, IsStdin: true, FileType: FileTypeSource})
			continue
		}
		inputs = append(inputs, InputFile{Path: token, FileType: classifyExtension(token)})
	}
	return inputs
}

func classifyExtension(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	if ft, ok := extensionToFileType[ext]; ok {
		return ft
	}
	return FileTypeObject
}
