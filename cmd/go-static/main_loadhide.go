// Copyright (c) 2012-2024 Eli Janssen
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/cactus/go-static/pkg/fileserver"
)

func loadHideFile(fname string) ([]string, error) {
	// #nosec
	file, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open hide-file: %w", err)
	}
	// #nosec
	defer file.Close()

	patterns, err := fileserver.ReadHideRules(file)
	if err != nil {
		return nil, fmt.Errorf("error loading hide-file %s: %w", fname, err)
	}
	return patterns, nil
}
