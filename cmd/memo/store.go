// Copyright 2021 Cmdtree Authors
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
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/cmdtree/cmdtree/libraries/utils/filesys"
)

// Note is one stored memo entry.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// noteStore persists notes as a single JSON file through a Filesys.
type noteStore struct {
	fs   filesys.Filesys
	path string
}

func newNoteStore(fs filesys.Filesys, path string) *noteStore {
	return &noteStore{fs: fs, path: path}
}

func (s *noteStore) load() ([]Note, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "unable to read note store '%s'", s.path)
	}

	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, errors.Wrapf(err, "note store '%s' is corrupt", s.path)
	}

	return notes, nil
}

func (s *noteStore) save(notes []Note) error {
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return err
	}

	return errors.Wrapf(s.fs.WriteFile(s.path, data, 0644), "unable to write note store '%s'", s.path)
}

// Add appends a new note and returns it.
func (s *noteStore) Add(text string, tags []string) (Note, error) {
	notes, err := s.load()
	if err != nil {
		return Note{}, err
	}

	note := Note{
		ID:        uuid.New().String(),
		Text:      text,
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	}

	notes = append(notes, note)
	return note, s.save(notes)
}

// List returns notes filtered by tag (all notes when tag is empty), newest
// last, capped at limit when limit > 0.
func (s *noteStore) List(tag string, limit int) ([]Note, error) {
	notes, err := s.load()
	if err != nil {
		return nil, err
	}

	if tag != "" {
		filtered := notes[:0]
		for _, note := range notes {
			if note.HasTag(tag) {
				filtered = append(filtered, note)
			}
		}
		notes = filtered
	}

	if limit > 0 && len(notes) > limit {
		notes = notes[len(notes)-limit:]
	}

	return notes, nil
}

// Remove deletes the note with the given id.
func (s *noteStore) Remove(id string) error {
	notes, err := s.load()
	if err != nil {
		return err
	}

	for i, note := range notes {
		if note.ID == id {
			return s.save(append(notes[:i], notes[i+1:]...))
		}
	}

	return errors.Errorf("no note with id '%s'", id)
}

// Tag adds or removes tags on the note with the given id.
func (s *noteStore) Tag(id string, tags []string, remove bool) error {
	notes, err := s.load()
	if err != nil {
		return err
	}

	for i := range notes {
		if notes[i].ID != id {
			continue
		}

		if remove {
			for _, tag := range tags {
				notes[i].removeTag(tag)
			}
		} else {
			for _, tag := range tags {
				if !notes[i].HasTag(tag) {
					notes[i].Tags = append(notes[i].Tags, tag)
				}
			}
		}

		return s.save(notes)
	}

	return errors.Errorf("no note with id '%s'", id)
}

// HasTag reports whether the note carries the given tag.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (n *Note) removeTag(tag string) {
	for i, t := range n.Tags {
		if t == tag {
			n.Tags = append(n.Tags[:i], n.Tags[i+1:]...)
			return
		}
	}
}
