/*
Copyright The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cache

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pollUntil polls a condition until it's true or timeout
func pollUntil(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(message)
}

func TestCacheSetAndGet(t *testing.T) {
	c := New[string, []string](5 * time.Minute)
	defer c.Stop()

	_, ok := c.Get("zones/us-west1")
	assert.False(t, ok)

	c.Set("zones/us-west1", []string{"us-west1-a", "us-west1-b"})
	value, ok := c.Get("zones/us-west1")
	assert.True(t, ok)
	assert.Equal(t, []string{"us-west1-a", "us-west1-b"}, value)
}

func TestCacheSetWithTTLExpires(t *testing.T) {
	c := New[string, int](5 * time.Minute)
	defer c.Stop()

	c.SetWithTTL("short", 1, 10*time.Millisecond)
	c.Set("long", 2)

	pollUntil(t, func() bool {
		_, ok := c.Get("short")
		return !ok
	}, time.Second, "short lived entry did not expire")

	value, ok := c.Get("long")
	assert.True(t, ok)
	assert.Equal(t, 2, value)
	// the expired entry is dropped on access
	assert.Equal(t, 1, c.Size())
}

func TestCacheBackgroundSweep(t *testing.T) {
	c := New[string, int](20 * time.Millisecond)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	pollUntil(t, func() bool { return c.Size() == 0 }, time.Second, "expired entries were not swept")
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New[string, int](time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	assert.Equal(t, 1, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCacheDeleteFunc(t *testing.T) {
	c := New[Key, string](time.Minute)
	defer c.Stop()

	c.Set(Key{Operation: "list_zones", Hash: 1}, "a")
	c.Set(Key{Operation: "list_zones", Hash: 2}, "b")
	c.Set(Key{Operation: "list_regions", Hash: 1}, "c")

	removed := c.DeleteFunc(func(k Key) bool { return k.Operation == "list_zones" })
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Size())
	_, ok := c.Get(Key{Operation: "list_regions", Hash: 1})
	assert.True(t, ok)
}

func TestCacheGetOrSet(t *testing.T) {
	c := New[string, string](time.Minute)
	defer c.Stop()

	calls := 0
	fetch := func() (string, error) {
		calls++
		return "value", nil
	}

	value, hit, err := c.GetOrSet("key", fetch)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "value", value)

	value, hit, err = c.GetOrSet("key", fetch)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "value", value)
	assert.Equal(t, 1, calls)
}

func TestCacheGetOrSetDoesNotCacheErrors(t *testing.T) {
	c := New[string, string](time.Minute)
	defer c.Stop()

	_, _, err := c.GetOrSet("key", func() (string, error) {
		return "", errors.New("backend unavailable")
	})
	assert.EqualError(t, err, "backend unavailable")
	assert.Equal(t, 0, c.Size())
}

func TestCacheStopIsIdempotent(t *testing.T) {
	c := New[string, int](time.Minute)
	c.Stop()
	c.Stop()
}

func TestCacheConcurrency(t *testing.T) {
	c := New[string, string](time.Minute)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%5)
			for j := 0; j < 50; j++ {
				c.Set(key, strings.Repeat("x", j))
				c.Get(key)
				if j%10 == 0 {
					c.SetWithTTL(key, "expired", -time.Second)
					c.Get(key)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Size(), 5)
}
