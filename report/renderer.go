// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report

import (
	"github.com/siderolabs/go-extlayout/journal"
	"github.com/siderolabs/go-extlayout/layout"
)

// Renderer consumes the sections of a report in order.
//
// Write errors are sticky and returned by Finish.
type Renderer interface {
	// Header renders the superblock summary.
	Header(geometry *layout.Geometry)
	// Notice renders a banner or a trailing message which is not part of the report data.
	Notice(text string)
	// Journal renders the journal superblock summary.
	Journal(summary *journal.Summary)
	// BadBlocks renders the bad blocks list, dump selects the one-per-line form.
	BadBlocks(blocks []uint32, dump bool)
	// BeginGroups starts the group section.
	BeginGroups(compact bool)
	// Group renders a single group.
	Group(group *Group)
	// CompactGroup renders a single group in groups-only mode.
	CompactGroup(group *CompactGroup)
	// Finish flushes the report.
	Finish() error
}
