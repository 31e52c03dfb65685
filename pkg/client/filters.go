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

package client

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/samber/lo"
)

const (
	// DeprecatedState is the deprecation state of resources that are no longer offered
	DeprecatedState = "DEPRECATED"

	// localDiskTypePrefix marks local/scratch disk types that cannot back a boot disk
	localDiskTypePrefix = "local-"
)

type named interface {
	GetName() string
}

type deprecatable interface {
	named
	GetDeprecated() *computepb.DeprecationStatus
}

// isDeprecated reports whether a resource carries the DEPRECATED state
func isDeprecated[T deprecatable](item T) bool {
	return item.GetDeprecated().GetState() == DeprecatedState
}

// withoutDeprecated returns a new slice with deprecated entries removed
func withoutDeprecated[T deprecatable](items []T) []T {
	return lo.Reject(items, func(item T, _ int) bool {
		return isDeprecated(item)
	})
}

// sortedByName returns a copy of items sorted ascending by name
func sortedByName[T named](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	slices.SortStableFunc(out, func(a, b T) int {
		return strings.Compare(a.GetName(), b.GetName())
	})
	return out
}

// normalize drops deprecated entries and sorts the remainder by name
func normalize[T deprecatable](items []T) []T {
	return sortedByName(withoutDeprecated(items))
}

// isBootDiskType reports whether a disk type can back a boot disk
func isBootDiskType(diskType *computepb.DiskType) bool {
	return !strings.HasPrefix(diskType.GetName(), localDiskTypePrefix)
}

// lastSegment returns the resource name of a self-link, or the value itself
// when it is already a bare name.
func lastSegment(link string) string {
	if link == "" {
		return ""
	}
	return path.Base(strings.TrimSuffix(link, "/"))
}

// resourcePath reduces a self-link to its "projects/..." path so full URLs
// and relative links compare equal
func resourcePath(link string) string {
	link = strings.TrimSuffix(link, "/")
	if i := strings.Index(link, "projects/"); i >= 0 {
		return link[i:]
	}
	return link
}

func isLink(ref string) bool {
	return strings.Contains(strings.TrimSuffix(ref, "/"), "/")
}

// sameResource compares two references that may each be a bare name or a
// self-link. Two self-links must name the same resource in the same project.
// An empty reference matches nothing.
func sameResource(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if isLink(a) && isLink(b) {
		return resourcePath(a) == resourcePath(b)
	}
	return lastSegment(a) == lastSegment(b)
}

func sortedStrings(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}

// labelFilter builds an API list filter matching every label. Keys are
// emitted in sorted order so that equal label sets produce equal filters.
func labelFilter(labels map[string]string) string {
	keys := sortedStrings(lo.Keys(labels))
	clauses := lo.Map(keys, func(key string, _ int) string {
		return fmt.Sprintf("labels.%s = %q", key, labels[key])
	})
	return strings.Join(clauses, " AND ")
}
