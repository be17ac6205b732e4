/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

// Package journal keeps track of the entities created on the appliance through the
// page objects, so they could be cleaned up later
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mills.io/bitcask/v2"

	"github.com/adobe/miq-pages/lib/log"
)

const collectionEntries = "entry"

// ErrEntryNotFound is returned when nothing is recorded for the entity
var ErrEntryNotFound = errors.New("journal entry not found")

// Entry is the record of the created entity
type Entry struct {
	UID       uuid.UUID `json:"uid"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Parent    string    `json:"parent,omitempty"` // Provider, catalog or definition name
	Appliance string    `json:"appliance,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Journal is the bitcask-backed list of entries. The nil Journal is valid and
// records nothing.
type Journal struct {
	be *bitcask.Bitcask

	// Merge needs exclusive access, all the other operations are using RLock
	beMu sync.RWMutex
}

// Open creates or opens the journal in the directory
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("Journal: Can't create directory %s: %w", path, err)
	}

	be, err := bitcask.Open(filepath.Join(path, "bitcask.db"))
	if err != nil {
		return nil, fmt.Errorf("Journal: Unable to open: %w", err)
	}
	return &Journal{be: be}, nil
}

// Record stores the entry and returns its UID
func (j *Journal) Record(e Entry) (uuid.UUID, error) {
	if j == nil {
		return uuid.Nil, nil
	}
	if e.Kind == "" || e.Name == "" {
		return uuid.Nil, fmt.Errorf("Journal: Kind and Name can't be empty")
	}
	e.UID = uuid.New()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	j.beMu.RLock()
	defer j.beMu.RUnlock()

	if err := j.be.Collection(collectionEntries).Add(e.UID.String(), &e); err != nil {
		return uuid.Nil, fmt.Errorf("Journal: Unable to record %s %q: %w", e.Kind, e.Name, err)
	}
	log.WithFunc("journal", "Record").Debug("Recorded", "uid", e.UID, "kind", e.Kind, "name", e.Name)
	return e.UID, nil
}

// List returns all the entries, oldest first
func (j *Journal) List() ([]Entry, error) {
	if j == nil {
		return nil, nil
	}
	j.beMu.RLock()
	var entries []Entry
	err := j.be.Collection(collectionEntries).List(&entries)
	j.beMu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("Journal: Unable to list entries: %w", err)
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].CreatedAt.Before(entries[b].CreatedAt)
	})
	return entries, nil
}

// Get returns entry by UID
func (j *Journal) Get(uid uuid.UUID) (Entry, error) {
	var e Entry
	if j == nil {
		return e, ErrEntryNotFound
	}
	j.beMu.RLock()
	defer j.beMu.RUnlock()
	if err := j.be.Collection(collectionEntries).Get(uid.String(), &e); err != nil {
		if errors.Is(err, bitcask.ErrObjectNotFound) || errors.Is(err, bitcask.ErrKeyNotFound) {
			return e, fmt.Errorf("Journal: %s: %w", uid, ErrEntryNotFound)
		}
		return e, err
	}
	return e, nil
}

// Find returns the entries of the entity kind and name
func (j *Journal) Find(kind, name string) ([]Entry, error) {
	entries, err := j.List()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range entries {
		if e.Kind == kind && e.Name == name {
			out = append(out, e)
		}
	}
	return out, nil
}

// Forget removes all the entries of the entity kind and name
func (j *Journal) Forget(kind, name string) error {
	if j == nil {
		return nil
	}
	found, err := j.Find(kind, name)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return fmt.Errorf("Journal: %s %q: %w", kind, name, ErrEntryNotFound)
	}

	j.beMu.RLock()
	defer j.beMu.RUnlock()
	for _, e := range found {
		if err := j.be.Collection(collectionEntries).Delete(e.UID.String()); err != nil {
			return fmt.Errorf("Journal: Unable to forget %s: %w", e.UID, err)
		}
	}
	log.WithFunc("journal", "Forget").Debug("Forgotten", "kind", kind, "name", name, "count", len(found))
	return nil
}

// Compact reclaims the space of removed entries
func (j *Journal) Compact() error {
	if j == nil {
		return nil
	}
	logger := log.WithFunc("journal", "Compact")

	j.beMu.Lock()
	defer j.beMu.Unlock()

	s, _ := j.be.Stats()
	logger.Debug("Before compaction", "datafiles", s.Datafiles, "keys", s.Keys, "size", s.Size, "reclaimable", s.Reclaimable)
	if err := j.be.Merge(); err != nil {
		return fmt.Errorf("Journal: Merge operation failed: %w", err)
	}
	s, _ = j.be.Stats()
	logger.Debug("After compaction", "datafiles", s.Datafiles, "keys", s.Keys, "size", s.Size, "reclaimable", s.Reclaimable)
	return nil
}

// Close compacts and closes the journal
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	if err := j.Compact(); err != nil {
		log.WithFunc("journal", "Close").Warn("Unable to compact", "err", err)
	}

	j.beMu.Lock()
	defer j.beMu.Unlock()
	if err := j.be.Close(); err != nil {
		return fmt.Errorf("Journal: Unable to close backend: %w", err)
	}
	return nil
}
