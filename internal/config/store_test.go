package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_ReplaceNotifiesInOrder(t *testing.T) {
	s := NewStore(Defaults())

	var got []string
	s.Subscribe(func(o Options) { got = append(got, "a:"+o.Prefix) })
	cancel := s.Subscribe(func(o Options) { got = append(got, "b:"+o.Prefix) })

	next := Defaults()
	next.Prefix = "x"
	s.Replace(next)
	assert.Equal(t, []string{"a:x", "b:x"}, got)
	assert.Equal(t, "x", s.Current().Prefix)

	cancel()
	cancel()
	assert.Equal(t, 1, s.Subscribers())

	next.Prefix = "y"
	s.Replace(next)
	assert.Equal(t, []string{"a:x", "b:x", "a:y"}, got)
}

func TestStore_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	a := Options{Prefix: "a", StringPrefix: "a", StringSuffix: "a"}
	b := Options{Prefix: "b", StringPrefix: "b", StringSuffix: "b"}
	s := NewStore(a)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				o := s.Current()
				if o.Prefix != o.StringPrefix || o.Prefix != o.StringSuffix {
					t.Errorf("torn snapshot: %+v", o)
					return
				}
			}
		}()
	}
	for i := 0; i < 1000; i++ {
		if i%2 == 0 {
			s.Replace(b)
		} else {
			s.Replace(a)
		}
	}
	close(stop)
	wg.Wait()
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`prefix = "one "`), 0o600))

	initial, err := Load(path)
	require.NoError(t, err)
	s := NewStore(initial)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, s, zap.NewNop(), nil) }()

	// Rewrite until the watcher is registered and picks it up.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(`prefix = "two "`), 0o600)
		return s.Current().Prefix == "two "
	}, 5*time.Second, 50*time.Millisecond)

	// A broken file keeps the previous snapshot.
	require.NoError(t, os.WriteFile(path, []byte(`theme = "neon"`), 0o600))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "two ", s.Current().Prefix)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_AppliesResolveHook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`prefix = "one "`), 0o600))

	resolve := func(o Options) Options {
		if o.Theme == "" {
			o.Theme = "Literate"
		}
		return o
	}
	initial, err := Load(path)
	require.NoError(t, err)
	s := NewStore(resolve(initial))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = Watch(ctx, path, s, zap.NewNop(), resolve) }()

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(`prefix = "two "`), 0o600)
		return s.Current().Prefix == "two "
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, "Literate", s.Current().Theme)
}

func TestStore_ConcurrentReplaceEndsOnCurrent(t *testing.T) {
	s := NewStore(Defaults())

	var last atomic.Pointer[Options]
	cancel := s.Subscribe(func(o Options) { last.Store(&o) })
	defer cancel()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				o := Defaults()
				o.Prefix = fmt.Sprintf("%d-%d ", g, i)
				s.Replace(o)
			}
		}(g)
	}
	wg.Wait()

	require.NotNil(t, last.Load())
	assert.Equal(t, s.Current(), *last.Load())
}
