package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/recipe/internal/adapters/watcher"
)

func TestDebouncer_CoalescesAndSorts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var batches [][]string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, paths)
		})

		d.Add("/work/recipe.yaml")
		d.Add("/work/.env")
		time.Sleep(50 * time.Millisecond)
		d.Add("/work/recipe.yaml")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, batches, 1)
		assert.Equal(t, []string{"/work/.env", "/work/recipe.yaml"}, batches[0])
	})
}

func TestDebouncer_SeparateWindows(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var count int

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			mu.Lock()
			defer mu.Unlock()
			count++
		})

		d.Add("a")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		d.Add("b")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 2, count)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var got []string
		d := watcher.NewDebouncer(time.Hour, func(paths []string) {
			got = paths
		})

		d.Add("profile")
		d.Flush()

		assert.Equal(t, []string{"profile"}, got)
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		called := false
		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			called = true
		})

		d.Add("recipe.yaml")
		d.Stop()
		d.Add("recipe.yaml")

		time.Sleep(200 * time.Millisecond)
		synctest.Wait()
		assert.False(t, called)
	})
}
