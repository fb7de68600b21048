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

// Command memo is a small note-keeping CLI built on the cmdtree library. It
// exists to exercise the full surface: nested subcommands, inherited options,
// validators, response files, and generated help.
package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/cmdtree/cmdtree/libraries/cmdtree"
	"github.com/cmdtree/cmdtree/libraries/errhand"
	"github.com/cmdtree/cmdtree/libraries/utils/filesys"
)

const version = "0.3.0"

type memoApp struct {
	store   *noteStore
	cfg     config
	verbose *cmdtree.Option
	logger  *zap.Logger
}

// log builds the logger on first use, after the verbose flag has been parsed.
func (app *memoApp) log() *zap.Logger {
	if app.logger == nil {
		if app.verbose.Seen() {
			logger, err := zap.NewDevelopment()
			if err != nil {
				logger = zap.NewNop()
			}
			app.logger = logger
		} else {
			app.logger = zap.NewNop()
		}
	}
	return app.logger
}

func (app *memoApp) buildCommandTree() *cmdtree.Command {
	root := cmdtree.NewCommand("memo", "Keep short notes from the command line.")
	root.HandleResponseFiles = true
	root.SetHelpOption("-h|--help")
	root.SetVersionOption("--version", func() string { return "v" + version })
	app.verbose = root.SupportsFlag("-v|--verbose", "Enable debug logging.").SetInherited()

	add := root.AddCommand("add", "Add a note.")
	addTags := add.SupportsStringList("-t|--tag <TAG>", "Tag the new note. May be repeated.")
	addWords := add.AddVariadicArgument("text", "The note text.")
	add.OnExecute(func() int {
		text := strings.Join(addWords.Values(), " ")
		if text == "" {
			cmdtree.PrintErrln(color.RedString("nothing to add"))
			return 1
		}

		note, err := app.store.Add(text, addTags.Values())
		if err != nil {
			return app.fail(err)
		}

		app.log().Debug("added note", zap.String("id", note.ID))
		cmdtree.Println(shortID(note.ID))
		return 0
	})

	list := root.AddCommand("list", "List notes, newest last.")
	listTag := list.SupportsString("-t|--tag <TAG>", "Only show notes carrying this tag.")
	listLimit := list.SupportsString("-n|--limit <N>", "Show at most N notes.").Validate(cmdtree.IsUintStr)
	list.OnExecute(func() int {
		limit := app.cfg.DefaultLimit
		if listLimit.Seen() {
			limit, _ = strconv.Atoi(listLimit.Value())
		}

		notes, err := app.store.List(listTag.Value(), limit)
		if err != nil {
			return app.fail(err)
		}

		app.log().Debug("listing notes", zap.Int("count", len(notes)))
		for _, note := range notes {
			line := color.GreenString(shortID(note.ID)) + "  " + note.Text
			if len(note.Tags) > 0 {
				line += "  " + color.CyanString("["+strings.Join(note.Tags, ", ")+"]")
			}
			line += "  " + humanize.Time(note.CreatedAt)
			cmdtree.Println(line)
		}
		return 0
	})

	rm := root.AddCommand("rm", "Remove a note by id.")
	rmID := rm.AddArgument("id", "The note id.")
	rm.OnExecute(func() int {
		if err := app.store.Remove(rmID.Value()); err != nil {
			return app.fail(err)
		}
		return 0
	})

	tag := root.AddCommand("tag", "Manage note tags.")

	tagAdd := tag.AddCommand("add", "Add tags to a note.")
	tagAddID := tagAdd.AddArgument("id", "The note id.")
	tagAddNames := tagAdd.AddVariadicArgument("tags", "Tags to add.")
	tagAdd.OnExecute(func() int {
		if err := app.store.Tag(tagAddID.Value(), tagAddNames.Values(), false); err != nil {
			return app.fail(err)
		}
		return 0
	})

	tagRm := tag.AddCommand("rm", "Remove tags from a note.")
	tagRmID := tagRm.AddArgument("id", "The note id.")
	tagRmNames := tagRm.AddVariadicArgument("tags", "Tags to remove.")
	tagRm.OnExecute(func() int {
		if err := app.store.Tag(tagRmID.Value(), tagRmNames.Values(), true); err != nil {
			return app.fail(err)
		}
		return 0
	})

	return root
}

func (app *memoApp) fail(err error) int {
	errhand.PrintError(cmdtree.CliErr, err)
	return 1
}

// shortID abbreviates a note id the way git abbreviates hashes.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func main() {
	cfg, err := loadConfig(filesys.LocalFS)
	if err != nil {
		errhand.PrintError(cmdtree.CliErr, err)
		os.Exit(1)
	}

	app := &memoApp{
		cfg:   cfg,
		store: newNoteStore(filesys.LocalFS, cfg.StorePath),
	}

	res, err := app.buildCommandTree().Execute(os.Args[1:])
	if err != nil {
		verr := errhand.BuildIf(err, "memo: invalid invocation").
			AddDetails("run 'memo --help' for usage").
			Build()
		errhand.PrintError(cmdtree.CliErr, verr)
		os.Exit(1)
	}

	os.Exit(res)
}
