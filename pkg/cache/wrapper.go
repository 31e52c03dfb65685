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
	"context"
	"time"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"

	"github.com/pfeifferj/gcp-compute-client/pkg/client"
	"github.com/pfeifferj/gcp-compute-client/pkg/logging"
	"github.com/pfeifferj/gcp-compute-client/pkg/metrics"
)

const (
	opListRegions           = "list_regions"
	opListZones             = "list_zones"
	opGetZone               = "get_zone"
	opListMachineTypes      = "list_machine_types"
	opListDiskTypes         = "list_disk_types"
	opListAcceleratorTypes  = "list_accelerator_types"
	opListImages            = "list_images"
	opGetImage              = "get_image"
	opListNetworks          = "list_networks"
	opListSubnetworks       = "list_subnetworks"
	opListInstanceTemplates = "list_instance_templates"
	opGetInstanceTemplate   = "get_instance_template"
)

// Key identifies a cached response by operation and a hash of its arguments
type Key struct {
	Operation string
	Hash      uint64
}

// CachingWrapper is a client.ComputeWrapper that caches catalog lookups of
// the wrapped implementation: regions, zones, machine, disk and accelerator
// types, images, networks and instance templates. Instances, operations and
// guest attributes always go to the wrapped implementation. Callers receive
// deep copies, so cached responses cannot be modified through them.
type CachingWrapper struct {
	client.ComputeWrapper

	cache  *Cache[Key, any]
	logger *logging.Logger
}

var _ client.ComputeWrapper = &CachingWrapper{}

// NewCachingWrapper caches the responses of inner for ttl. Stop must be
// called to release the cache's background sweep.
func NewCachingWrapper(inner client.ComputeWrapper, ttl time.Duration) *CachingWrapper {
	return &CachingWrapper{
		ComputeWrapper: inner,
		cache:          New[Key, any](ttl),
		logger:         logging.CacheLogger(),
	}
}

// Stop stops the cache's background sweep
func (w *CachingWrapper) Stop() {
	w.cache.Stop()
}

// Invalidate drops every cached response
func (w *CachingWrapper) Invalidate() {
	w.cache.Clear()
	metrics.SetCacheEntries(0)
}

func (w *CachingWrapper) invalidate(operations ...string) {
	removed := w.cache.DeleteFunc(func(key Key) bool {
		return lo.Contains(operations, key.Operation)
	})
	metrics.SetCacheEntries(w.cache.Size())
	w.logger.Debug("invalidated cached responses", "operations", operations, "removed", removed)
}

// lookup serves operation from the cache or calls fetch. Arguments that
// cannot be hashed bypass the cache.
func lookup[V any](w *CachingWrapper, operation string, args any, clone func(V) V, fetch func() (V, error)) (V, error) {
	hash, err := hashstructure.Hash(args, hashstructure.FormatV2, nil)
	if err != nil {
		w.logger.Warn("bypassing cache", "operation", operation, "error", err.Error())
		return fetch()
	}

	value, hit, err := w.cache.GetOrSet(Key{Operation: operation, Hash: hash}, func() (any, error) {
		return fetch()
	})
	metrics.RecordCacheLookup(operation, hit)
	if err != nil {
		var zero V
		return zero, err
	}
	if !hit {
		metrics.SetCacheEntries(w.cache.Size())
		w.logger.Debug("cached response", "operation", operation)
	}
	return clone(value.(V)), nil
}

func cloneAll[T proto.Message](items []T) []T {
	if items == nil {
		return nil
	}
	return lo.Map(items, func(item T, _ int) T {
		return proto.Clone(item).(T)
	})
}

func cloneOne[T proto.Message](item T) T {
	return proto.Clone(item).(T)
}

type projectArgs struct {
	Project string
}

type zonalArgs struct {
	Project string
	Zone    string
}

type regionalArgs struct {
	Project string
	Region  string
}

type namedArgs struct {
	Project string
	Name    string
}

func (w *CachingWrapper) ListRegions(ctx context.Context, project string) ([]*computepb.Region, error) {
	return lookup(w, opListRegions, projectArgs{project}, cloneAll[*computepb.Region], func() ([]*computepb.Region, error) {
		return w.ComputeWrapper.ListRegions(ctx, project)
	})
}

func (w *CachingWrapper) ListZones(ctx context.Context, project string) ([]*computepb.Zone, error) {
	return lookup(w, opListZones, projectArgs{project}, cloneAll[*computepb.Zone], func() ([]*computepb.Zone, error) {
		return w.ComputeWrapper.ListZones(ctx, project)
	})
}

func (w *CachingWrapper) GetZone(ctx context.Context, project, zone string) (*computepb.Zone, error) {
	return lookup(w, opGetZone, zonalArgs{project, zone}, cloneOne[*computepb.Zone], func() (*computepb.Zone, error) {
		return w.ComputeWrapper.GetZone(ctx, project, zone)
	})
}

func (w *CachingWrapper) ListMachineTypes(ctx context.Context, project, zone string) ([]*computepb.MachineType, error) {
	return lookup(w, opListMachineTypes, zonalArgs{project, zone}, cloneAll[*computepb.MachineType], func() ([]*computepb.MachineType, error) {
		return w.ComputeWrapper.ListMachineTypes(ctx, project, zone)
	})
}

func (w *CachingWrapper) ListDiskTypes(ctx context.Context, project, zone string) ([]*computepb.DiskType, error) {
	return lookup(w, opListDiskTypes, zonalArgs{project, zone}, cloneAll[*computepb.DiskType], func() ([]*computepb.DiskType, error) {
		return w.ComputeWrapper.ListDiskTypes(ctx, project, zone)
	})
}

func (w *CachingWrapper) ListAcceleratorTypes(ctx context.Context, project, zone string) ([]*computepb.AcceleratorType, error) {
	return lookup(w, opListAcceleratorTypes, zonalArgs{project, zone}, cloneAll[*computepb.AcceleratorType], func() ([]*computepb.AcceleratorType, error) {
		return w.ComputeWrapper.ListAcceleratorTypes(ctx, project, zone)
	})
}

func (w *CachingWrapper) ListImages(ctx context.Context, project string) ([]*computepb.Image, error) {
	return lookup(w, opListImages, projectArgs{project}, cloneAll[*computepb.Image], func() ([]*computepb.Image, error) {
		return w.ComputeWrapper.ListImages(ctx, project)
	})
}

func (w *CachingWrapper) GetImage(ctx context.Context, project, name string) (*computepb.Image, error) {
	return lookup(w, opGetImage, namedArgs{project, name}, cloneOne[*computepb.Image], func() (*computepb.Image, error) {
		return w.ComputeWrapper.GetImage(ctx, project, name)
	})
}

func (w *CachingWrapper) ListNetworks(ctx context.Context, project string) ([]*computepb.Network, error) {
	return lookup(w, opListNetworks, projectArgs{project}, cloneAll[*computepb.Network], func() ([]*computepb.Network, error) {
		return w.ComputeWrapper.ListNetworks(ctx, project)
	})
}

func (w *CachingWrapper) ListSubnetworks(ctx context.Context, project, region string) ([]*computepb.Subnetwork, error) {
	return lookup(w, opListSubnetworks, regionalArgs{project, region}, cloneAll[*computepb.Subnetwork], func() ([]*computepb.Subnetwork, error) {
		return w.ComputeWrapper.ListSubnetworks(ctx, project, region)
	})
}

func (w *CachingWrapper) ListInstanceTemplates(ctx context.Context, project string) ([]*computepb.InstanceTemplate, error) {
	return lookup(w, opListInstanceTemplates, projectArgs{project}, cloneAll[*computepb.InstanceTemplate], func() ([]*computepb.InstanceTemplate, error) {
		return w.ComputeWrapper.ListInstanceTemplates(ctx, project)
	})
}

func (w *CachingWrapper) GetInstanceTemplate(ctx context.Context, project, name string) (*computepb.InstanceTemplate, error) {
	return lookup(w, opGetInstanceTemplate, namedArgs{project, name}, cloneOne[*computepb.InstanceTemplate], func() (*computepb.InstanceTemplate, error) {
		return w.ComputeWrapper.GetInstanceTemplate(ctx, project, name)
	})
}

// InsertInstanceTemplate creates a template and drops cached template responses
func (w *CachingWrapper) InsertInstanceTemplate(ctx context.Context, project string, template *computepb.InstanceTemplate) (*computepb.Operation, error) {
	op, err := w.ComputeWrapper.InsertInstanceTemplate(ctx, project, template)
	if err == nil {
		w.invalidate(opListInstanceTemplates, opGetInstanceTemplate)
	}
	return op, err
}

// DeleteInstanceTemplate deletes a template and drops cached template responses
func (w *CachingWrapper) DeleteInstanceTemplate(ctx context.Context, project, name string) (*computepb.Operation, error) {
	op, err := w.ComputeWrapper.DeleteInstanceTemplate(ctx, project, name)
	if err == nil {
		w.invalidate(opListInstanceTemplates, opGetInstanceTemplate)
	}
	return op, err
}
