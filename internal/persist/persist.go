// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

import (
	"encoding/gob"
	"os"

	"github.com/pkg/errors"

	"github.com/coexpnetviz/engine/internal/domain"
)

// Save writes store's entire ingested state to path as an opaque binary
// blob (spec §6). A prior file at path is truncated and overwritten.
func Save(path string, store *domain.Store) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, path)
	}
	defer f.Close()

	snap := store.Snapshot()
	if err := gob.NewEncoder(f).Encode(&snap); err != nil {
		return errors.Wrap(err, path)
	}
	return f.Close()
}

// Load reads the blob at path, previously written by Save, and rebuilds
// the domain.Store it describes.
func Load(path string) (*domain.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	defer f.Close()

	var snap domain.Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return domain.Restore(snap)
}
