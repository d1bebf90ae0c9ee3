// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package block_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/freddierice/go-losetup/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/siderolabs/go-extlayout/block"
)

const (
	MiB = 1024 * 1024
)

func TestDeviceFromFile(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "image.raw"))
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, f.Close())
	})

	_, err = f.WriteAt([]byte("\x53\xef"), 1024+0x38)
	require.NoError(t, err)

	dev := block.NewFromFile(f)

	buf := make([]byte, 2)
	_, err = dev.ReadAt(buf, 1024+0x38)
	require.NoError(t, err)

	assert.Equal(t, []byte{0x53, 0xef}, buf)

	// not owned, the file stays open
	require.NoError(t, dev.Close())

	_, err = f.Stat()
	require.NoError(t, err)
}

func TestDevice(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("skipping test; must be root")
	}

	rawImage := filepath.Join(t.TempDir(), "image.raw")

	f, err := os.Create(rawImage)
	require.NoError(t, err)

	require.NoError(t, f.Truncate(int64(64*MiB)))
	require.NoError(t, f.Close())

	loDev, err := losetup.Attach(rawImage, 0, true)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, loDev.Detach())
	})

	devPath := loDev.Path()

	devWhole, err := block.NewFromPath(devPath)
	require.NoError(t, err)

	devWhole2, err := block.NewFromPath(devPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, devWhole.Close())
		assert.NoError(t, devWhole2.Close())
	})

	t.Run("whole disk", func(t *testing.T) {
		wholeDisk, err := devWhole.GetWholeDisk()
		require.NoError(t, err)

		t.Cleanup(func() {
			assert.NoError(t, wholeDisk.Close())
		})

		// a loop device is its own disk, the file is shared
		size, err := wholeDisk.GetSize()
		require.NoError(t, err)

		assert.EqualValues(t, 64*MiB, size)
	})

	t.Run("size", func(t *testing.T) {
		size, err := devWhole.GetSize()
		require.NoError(t, err)

		assert.EqualValues(t, 64*MiB, size)
	})

	t.Run("sector size", func(t *testing.T) {
		assert.EqualValues(t, 512, devWhole.GetSectorSize())

		ioSize, err := devWhole.GetIOSize()
		require.NoError(t, err)
		assert.EqualValues(t, 512, ioSize)
	})

	t.Run("read", func(t *testing.T) {
		buf := make([]byte, 1024)

		n, err := devWhole.ReadAt(buf, 1024)
		require.NoError(t, err)

		assert.Equal(t, 1024, n)
		assert.Equal(t, make([]byte, 1024), buf)
	})

	t.Run("shared locks", func(t *testing.T) {
		require.NoError(t, devWhole.TryLock(false))
		require.NoError(t, devWhole2.TryLock(false))

		require.NoError(t, devWhole.Unlock())
		require.NoError(t, devWhole2.Unlock())
	})

	t.Run("exclusive lock blocks shared", func(t *testing.T) {
		require.NoError(t, devWhole.TryLock(true))

		err := devWhole2.TryLock(false)
		require.Error(t, err)
		require.ErrorIs(t, err, unix.EWOULDBLOCK)

		require.NoError(t, devWhole.Unlock())

		require.NoError(t, devWhole2.TryLock(false))
		require.NoError(t, devWhole2.Unlock())
	})
}
