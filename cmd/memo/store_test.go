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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdtree/cmdtree/libraries/utils/filesys"
)

func newTestStore(t *testing.T) *noteStore {
	t.Helper()
	return newNoteStore(filesys.EmptyInMemFS("/work"), "/work/notes.json")
}

func TestStoreAddAndList(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Add("first note", []string{"work"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := store.Add("second note", nil)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	notes, err := store.List("", 0)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "first note", notes[0].Text)
	assert.Equal(t, "second note", notes[1].Text)

	tagged, err := store.List("work", 0)
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, first.ID, tagged[0].ID)
}

func TestStoreListLimitKeepsNewest(t *testing.T) {
	store := newTestStore(t)

	for _, text := range []string{"a", "b", "c"} {
		_, err := store.Add(text, nil)
		require.NoError(t, err)
	}

	notes, err := store.List("", 2)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "b", notes[0].Text)
	assert.Equal(t, "c", notes[1].Text)
}

func TestStoreRemove(t *testing.T) {
	store := newTestStore(t)

	note, err := store.Add("doomed", nil)
	require.NoError(t, err)

	require.NoError(t, store.Remove(note.ID))

	notes, err := store.List("", 0)
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.Error(t, store.Remove(note.ID))
}

func TestStoreTagging(t *testing.T) {
	store := newTestStore(t)

	note, err := store.Add("taggable", nil)
	require.NoError(t, err)

	require.NoError(t, store.Tag(note.ID, []string{"a", "b"}, false))
	// re-adding an existing tag is a no-op
	require.NoError(t, store.Tag(note.ID, []string{"a"}, false))

	notes, err := store.List("", 0)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, []string{"a", "b"}, notes[0].Tags)

	require.NoError(t, store.Tag(note.ID, []string{"a"}, true))
	notes, err = store.List("", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, notes[0].Tags)
}

func TestCommandTreeEndToEnd(t *testing.T) {
	app := &memoApp{
		cfg:   defaultConfig(),
		store: newTestStore(t),
	}

	root := app.buildCommandTree()
	res, err := root.Execute([]string{"add", "-t", "work", "hello", "world"})
	require.NoError(t, err)
	assert.Equal(t, 0, res)

	notes, err := app.store.List("work", 0)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "hello world", notes[0].Text)
}
