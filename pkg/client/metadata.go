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
	"context"
	"fmt"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"
)

// NoOverwriteKey is the metadata key whose existing value is never replaced by a merge
const NoOverwriteKey = "no-overwrite"

type mergeOptions struct {
	preserved map[string]struct{}
}

// MergeOption customizes MergeMetadataItems
type MergeOption func(*mergeOptions)

// WithPreservedKeys marks additional keys whose existing values survive a merge
func WithPreservedKeys(keys ...string) MergeOption {
	return func(o *mergeOptions) {
		for _, key := range keys {
			o.preserved[key] = struct{}{}
		}
	}
}

// MergeMetadataItems updates existingItems with the values of newItems that
// share a key. Preserved keys keep their existing value and keys that only
// appear in newItems are not added, so the result always has the length and
// order of existingItems. When newItems repeats a key the last value wins.
// Neither input is modified.
func MergeMetadataItems(newItems, existingItems []*computepb.Items, opts ...MergeOption) []*computepb.Items {
	o := &mergeOptions{preserved: map[string]struct{}{NoOverwriteKey: {}}}
	for _, opt := range opts {
		opt(o)
	}

	updates := make(map[string]string, len(newItems))
	for _, item := range newItems {
		if item == nil {
			continue
		}
		updates[item.GetKey()] = item.GetValue()
	}

	merged := make([]*computepb.Items, 0, len(existingItems))
	for _, item := range existingItems {
		if item == nil {
			merged = append(merged, nil)
			continue
		}
		out := proto.Clone(item).(*computepb.Items)
		if _, preserved := o.preserved[item.GetKey()]; !preserved {
			if value, ok := updates[item.GetKey()]; ok {
				out.Value = proto.String(value)
			}
		}
		merged = append(merged, out)
	}
	return merged
}

// appendMetadataItems merges items into existing and appends the keys that
// existing does not carry yet, in the order they appear in items.
func appendMetadataItems(items, existing []*computepb.Items) []*computepb.Items {
	merged := MergeMetadataItems(items, existing)
	known := lo.SliceToMap(existing, func(item *computepb.Items) (string, struct{}) {
		return item.GetKey(), struct{}{}
	})
	for _, item := range items {
		if item == nil {
			continue
		}
		if _, ok := known[item.GetKey()]; ok {
			continue
		}
		known[item.GetKey()] = struct{}{}
		merged = append(merged, latestItem(items, item.GetKey()))
	}
	return merged
}

// latestItem returns a copy of the last item carrying key
func latestItem(items []*computepb.Items, key string) *computepb.Items {
	var last *computepb.Items
	for _, item := range items {
		if item != nil && item.GetKey() == key {
			last = item
		}
	}
	return proto.Clone(last).(*computepb.Items)
}

// AppendMetadata merges items into the metadata of an instance and writes
// it back using the fingerprint read from the instance, so a concurrent
// metadata change makes the update fail instead of being overwritten.
func (c *Client) AppendMetadata(ctx context.Context, project, zone, instanceName string, items []*computepb.Items) (*computepb.Operation, error) {
	instance, err := c.compute.GetInstance(ctx, project, zone, instanceName)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, fmt.Errorf("instance %s not found in zone %s", instanceName, zone)
	}

	current := instance.GetMetadata()
	metadata := &computepb.Metadata{
		Items: appendMetadataItems(items, current.GetItems()),
	}
	if current != nil {
		metadata.Fingerprint = current.Fingerprint
	}

	c.logger.Info("updating instance metadata", "project", project, "zone", zone, "instance", instanceName, "items", len(metadata.Items))
	return c.compute.SetMetadata(ctx, project, zone, instanceName, metadata)
}
