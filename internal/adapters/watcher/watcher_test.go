package watcher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fsguard/internal/adapters/watcher"
	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/core/ports/mocks"
	"go.trai.ch/fsguard/internal/engine/activity"
	"go.uber.org/mock/gomock"
)

func TestPollingWatcher_TicksOnFingerprintChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fp := mocks.NewMockFingerprinter(ctrl)
		gomock.InOrder(
			fp.EXPECT().Fingerprint("/mnt/dest").Return(uint64(1), nil),
			fp.EXPECT().Fingerprint("/mnt/dest").Return(uint64(1), nil),
			fp.EXPECT().Fingerprint("/mnt/dest").Return(uint64(2), nil),
			fp.EXPECT().Fingerprint("/mnt/dest").Return(uint64(0), errors.New("gone")),
			fp.EXPECT().Fingerprint("/mnt/dest").Return(uint64(0), errors.New("gone")).AnyTimes(),
		)

		ctx, cancel := context.WithCancel(context.Background())
		var ticks activity.Counter
		done := make(chan error, 1)
		go func() {
			done <- watcher.NewPollingWatcher(fp, time.Second).Watch(ctx, "/mnt/dest", &ticks)
		}()

		time.Sleep(5 * time.Second)
		synctest.Wait()
		cancel()

		require.NoError(t, <-done)
		assert.Equal(t, int64(2), ticks.Count())
	})
}

func TestNotifyWatcher_TicksOnChanges(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ticks activity.Counter
	done := make(chan error, 1)
	go func() {
		done <- watcher.NewNotifyWatcher(nil).Watch(ctx, root, &ticks)
	}()

	i := 0
	require.Eventually(t, func() bool {
		i++
		_ = os.WriteFile(filepath.Join(root, "f"+strconv.Itoa(i)), []byte("x"), 0o600)
		return ticks.Count() > 0
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestNotifyWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ticks activity.Counter
	go func() {
		_ = watcher.NewNotifyWatcher(nil).Watch(ctx, root, &ticks)
	}()

	sub := filepath.Join(root, "sub")
	require.Eventually(t, func() bool {
		_ = os.Mkdir(sub, 0o750)
		return ticks.Count() > 0
	}, 5*time.Second, 20*time.Millisecond)

	before := ticks.Count()
	i := 0
	require.Eventually(t, func() bool {
		i++
		_ = os.WriteFile(filepath.Join(sub, "f"+strconv.Itoa(i)), []byte("x"), 0o600)
		return ticks.Count() > before
	}, 5*time.Second, 20*time.Millisecond)
}

func TestFactory(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := watcher.NewFactory(mocks.NewMockFingerprinter(ctrl), nil)

	tests := []struct {
		mode domain.WatchMode
		want any
	}{
		{domain.WatchNotify, &watcher.NotifyWatcher{}},
		{domain.WatchPoll, &watcher.PollingWatcher{}},
		{domain.WatchAuto, &watcher.AutoWatcher{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			w, err := factory(tt.mode, time.Second)
			require.NoError(t, err)
			assert.IsType(t, tt.want, w)
		})
	}

	_, err := factory("psychic", time.Second)
	assert.Error(t, err)
}

func TestAutoWatcher_PollsWhereNotificationsAreSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	fp := mocks.NewMockFingerprinter(ctrl)
	var n atomic.Uint64
	fp.EXPECT().Fingerprint(gomock.Any()).DoAndReturn(func(string) (uint64, error) {
		return n.Add(1), nil
	}).AnyTimes()

	w, err := watcher.NewFactory(fp, nil)(domain.WatchAuto, 10*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var ticks activity.Counter
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, filepath.Join(t.TempDir(), "missing"), &ticks) }()

	require.Eventually(t, func() bool { return ticks.Count() >= 3 }, 5*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}
