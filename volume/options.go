// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package volume

import "go.uber.org/zap"

// Options is the options for opening a volume.
type Options struct {
	// Logger to use for logging.
	Logger *zap.Logger

	// Superblock is the block number of a backup superblock to open the volume with.
	//
	// Zero selects the primary superblock.
	Superblock uint64
	// BlockSize of the filesystem, required to locate a backup superblock.
	//
	// If zero with a backup superblock, every valid block size is tried.
	BlockSize uint32

	// Force opening a volume with unsupported features.
	Force bool
	// SkipLocking blockdevices in shared mode.
	SkipLocking bool
}

// Option is an option for opening a volume.
type Option func(*Options)

// WithLogger sets the logger for the volume.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithSuperblock opens the volume with the superblock copy at the block.
func WithSuperblock(blk uint64) Option {
	return func(o *Options) {
		o.Superblock = blk
	}
}

// WithBlockSize sets the block size used to locate the superblock.
func WithBlockSize(size uint32) Option {
	return func(o *Options) {
		o.BlockSize = size
	}
}

// WithForce opens the volume even if it has unsupported features.
func WithForce(force bool) Option {
	return func(o *Options) {
		o.Force = force
	}
}

// WithSkipLocking skips locking blockdevices in shared mode.
func WithSkipLocking(skip bool) Option {
	return func(o *Options) {
		o.SkipLocking = skip
	}
}

func applyOptions(opts ...Option) Options {
	o := Options{
		Logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
