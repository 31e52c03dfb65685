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

package fake

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicPtr(t *testing.T) {
	ptr := &AtomicPtr[int]{}
	assert.Nil(t, ptr.Get())

	value := 42
	ptr.Store(&value)
	require.NotNil(t, ptr.Get())
	assert.Equal(t, 42, *ptr.Get())

	ptr.Store(nil)
	assert.Nil(t, ptr.Get())
}

func TestAtomicPtrSlice(t *testing.T) {
	slice := &AtomicPtrSlice[string]{}
	assert.Equal(t, 0, slice.Len())
	assert.NotNil(t, slice.Clone())
	assert.Empty(t, slice.Clone())

	slice.Add("us-west1")
	slice.Add("us-east1", "eu-central1")
	assert.Equal(t, 3, slice.Len())
	assert.Equal(t, []string{"us-west1", "us-east1", "eu-central1"}, slice.Clone())

	clone := slice.Clone()
	clone[0] = "changed"
	assert.Equal(t, "us-west1", slice.Clone()[0])

	input := []string{"a", "b"}
	slice.Store(input)
	input[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, slice.Clone())

	slice.Reset()
	assert.Equal(t, 0, slice.Len())
}

func TestAtomicPtrSliceRange(t *testing.T) {
	slice := &AtomicPtrSlice[int]{}
	slice.Add(1, 2, 3, 4)

	var seen []int
	slice.Range(func(v int) bool {
		seen = append(seen, v)
		return v < 2
	})
	assert.Equal(t, []int{1, 2}, seen)
}

func TestAtomicPtrSliceConcurrentAdd(t *testing.T) {
	slice := &AtomicPtrSlice[int]{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			slice.Add(v)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, slice.Len())
}

func TestAtomicError(t *testing.T) {
	atomicErr := &AtomicError{}
	assert.NoError(t, atomicErr.Get())

	atomicErr.Store(errors.New("quota exceeded"))
	assert.EqualError(t, atomicErr.Get(), "quota exceeded")
	// Get consumes the stored error
	assert.NoError(t, atomicErr.Get())
}

func TestMockedFunction(t *testing.T) {
	mocked := &MockedFunction[ProjectInput, string]{}
	assert.Equal(t, 0, mocked.Calls())

	mocked.CalledWithInput.Add(ProjectInput{Project: "p1"}, ProjectInput{Project: "p2"})
	output := "result"
	mocked.Output.Store(&output)
	mocked.Error.Store(errors.New("boom"))
	assert.Equal(t, 2, mocked.Calls())

	mocked.Reset()
	assert.Equal(t, 0, mocked.Calls())
	assert.Nil(t, mocked.Output.Get())
	assert.NoError(t, mocked.Error.Get())
}
