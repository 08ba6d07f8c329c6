package tree_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fsguard/internal/core/domain"
	"go.trai.ch/fsguard/internal/engine/activity"
	"go.trai.ch/fsguard/internal/engine/tree"
)

func TestWalker_PreOrderWithLeave(t *testing.T) {
	fsys := newStrictFS()
	fsys.build(t, "/r", "b/", "a/x", "a/y/z")
	info, err := fsys.Stat("/r")
	require.NoError(t, err)

	var events []string
	var ticks activity.Counter
	err = tree.NewWalker(fsys, &ticks).Walk(context.Background(), tree.Node{Path: "/r", Info: info}, tree.Visitor{
		Enter: func(n tree.Node) (tree.Action, error) {
			events = append(events, "enter "+n.Path)
			return tree.Continue, nil
		},
		Leave: func(n tree.Node) error {
			events = append(events, "leave "+n.Path)
			return nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"enter /r",
		"enter /r/a",
		"enter /r/a/x",
		"enter /r/a/y",
		"enter /r/a/y/z",
		"leave /r/a/y",
		"leave /r/a",
		"enter /r/b",
		"leave /r/b",
		"leave /r",
	}, events)
	assert.Equal(t, int64(5), ticks.Count())
}

func TestWalker_StopEndsEverything(t *testing.T) {
	fsys := newStrictFS()
	fsys.build(t, "/r", "a/x", "b/y")
	info, err := fsys.Stat("/r")
	require.NoError(t, err)

	var entered []string
	err = tree.NewWalker(fsys, nil).Walk(context.Background(), tree.Node{Path: "/r", Info: info}, tree.Visitor{
		Enter: func(n tree.Node) (tree.Action, error) {
			entered = append(entered, n.Path)
			if n.Path == "/r/a/x" {
				return tree.Stop, nil
			}
			return tree.Continue, nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"/r", "/r/a", "/r/a/x"}, entered)
}

func TestWalker_CancelledAtFirstChild(t *testing.T) {
	fsys := newStrictFS()
	fsys.build(t, "/r", "a")
	info, err := fsys.Stat("/r")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ticks activity.Counter
	err = tree.NewWalker(fsys, &ticks).Walk(ctx, tree.Node{Path: "/r", Info: info}, tree.Visitor{
		Enter: func(tree.Node) (tree.Action, error) { return tree.Continue, nil },
	})

	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.Zero(t, ticks.Count())
}

func TestWalker_DeepTreeUsesNoRecursion(t *testing.T) {
	fsys := newStrictFS()
	path := ""
	for range 2000 {
		path += "d/"
	}
	fsys.build(t, "/r", path)
	info, err := fsys.Stat("/r")
	require.NoError(t, err)

	depth := 0
	err = tree.NewWalker(fsys, nil).Walk(context.Background(), tree.Node{Path: "/r", Info: info}, tree.Visitor{
		Enter: func(n tree.Node) (tree.Action, error) {
			depth = max(depth, n.Depth)
			return tree.Continue, nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2000, depth)
}
