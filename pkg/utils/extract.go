/*
Copyright © 2022 - 2025 SUSE LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package utils

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/modelrun/modelfetch/pkg/constants"
	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
)

// ExtractZip unpacks the given zip archive into destDir and returns the
// number of extracted files. Entries resolving outside destDir are rejected.
func ExtractZip(fs v1.FS, archive string, destDir string) (int, error) {
	data, err := fs.ReadFile(archive)
	if err != nil {
		return 0, err
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}

	extracted := 0
	for _, file := range reader.File {
		if !filepath.IsLocal(filepath.FromSlash(file.Name)) {
			return extracted, fmt.Errorf("illegal path in archive: %s", file.Name)
		}
		target := filepath.Join(destDir, filepath.FromSlash(file.Name))

		if file.FileInfo().IsDir() {
			err = MkdirAll(fs, target, constants.DirPerm)
			if err != nil {
				return extracted, err
			}
			continue
		}

		err = MkdirAll(fs, filepath.Dir(target), constants.DirPerm)
		if err != nil {
			return extracted, err
		}

		src, err := file.Open()
		if err != nil {
			return extracted, err
		}
		content, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			return extracted, err
		}

		mode := file.Mode().Perm()
		if mode == 0 {
			mode = constants.FilePerm
		}
		err = fs.WriteFile(target, content, mode)
		if err != nil {
			return extracted, err
		}
		extracted++
	}

	return extracted, nil
}
