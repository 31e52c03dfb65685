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

//go:generate go run go.uber.org/mock/mockgen@latest -source=./wrapper.go -destination=./mock/wrapper_generated.go -package=mock

package client

import (
	"context"

	"cloud.google.com/go/compute/apiv1/computepb"
)

// GuestAttribute is a single namespaced key/value pair published by the guest
// environment of a running instance.
type GuestAttribute struct {
	Namespace string
	Key       string
	Value     string
}

// GuestAttributeQueryValue holds the entries matched by a guest attribute query.
type GuestAttributeQueryValue struct {
	Items []GuestAttribute
}

// GuestAttributeQueryResult is the response of a guest attribute query.
type GuestAttributeQueryResult struct {
	QueryPath  string
	QueryValue *GuestAttributeQueryValue
}

// ComputeWrapper performs the remote Compute Engine calls on behalf of Client.
// Implementations return the raw resources as the API hands them out; any
// filtering, sorting or merging happens in Client.
type ComputeWrapper interface {
	// ListRegions returns every region visible to the project
	ListRegions(ctx context.Context, project string) ([]*computepb.Region, error)

	// ListZones returns every zone of the project regardless of region
	ListZones(ctx context.Context, project string) ([]*computepb.Zone, error)

	// GetZone returns a single zone
	GetZone(ctx context.Context, project, zone string) (*computepb.Zone, error)

	// ListMachineTypes returns the machine types offered in a zone
	ListMachineTypes(ctx context.Context, project, zone string) ([]*computepb.MachineType, error)

	// ListDiskTypes returns the disk types offered in a zone
	ListDiskTypes(ctx context.Context, project, zone string) ([]*computepb.DiskType, error)

	// ListAcceleratorTypes returns the accelerator types offered in a zone
	ListAcceleratorTypes(ctx context.Context, project, zone string) ([]*computepb.AcceleratorType, error)

	// ListImages returns the images owned by the project
	ListImages(ctx context.Context, project string) ([]*computepb.Image, error)

	// GetImage returns a single image
	GetImage(ctx context.Context, project, name string) (*computepb.Image, error)

	// ListNetworks returns the VPC networks of the project
	ListNetworks(ctx context.Context, project string) ([]*computepb.Network, error)

	// ListSubnetworks returns the subnetworks of a region
	ListSubnetworks(ctx context.Context, project, region string) ([]*computepb.Subnetwork, error)

	// GetInstance returns a single instance
	GetInstance(ctx context.Context, project, zone, name string) (*computepb.Instance, error)

	// AggregatedListInstances returns the instances of all zones matching filter
	AggregatedListInstances(ctx context.Context, project, filter string) ([]*computepb.Instance, error)

	// InsertInstance creates an instance, optionally from a source template
	InsertInstance(ctx context.Context, project, zone string, instance *computepb.Instance, template string) (*computepb.Operation, error)

	// DeleteInstance deletes an instance
	DeleteInstance(ctx context.Context, project, zone, name string) (*computepb.Operation, error)

	// SetMetadata replaces the metadata of an instance
	SetMetadata(ctx context.Context, project, zone, name string, metadata *computepb.Metadata) (*computepb.Operation, error)

	// ListInstanceTemplates returns the instance templates of the project
	ListInstanceTemplates(ctx context.Context, project string) ([]*computepb.InstanceTemplate, error)

	// GetInstanceTemplate returns a single instance template
	GetInstanceTemplate(ctx context.Context, project, name string) (*computepb.InstanceTemplate, error)

	// InsertInstanceTemplate creates an instance template
	InsertInstanceTemplate(ctx context.Context, project string, template *computepb.InstanceTemplate) (*computepb.Operation, error)

	// DeleteInstanceTemplate deletes an instance template
	DeleteInstanceTemplate(ctx context.Context, project, name string) (*computepb.Operation, error)

	// GetOperation returns the current state of a zonal (zone != "") or global operation
	GetOperation(ctx context.Context, project, zone, name string) (*computepb.Operation, error)

	// WaitOperation blocks server side until the operation is done or the
	// server wait deadline passes, and returns its state
	WaitOperation(ctx context.Context, project, zone, name string) (*computepb.Operation, error)

	// GetGuestAttributes queries the guest attributes of an instance
	GetGuestAttributes(ctx context.Context, project, zoneLink, instanceID, queryPath string) (*GuestAttributeQueryResult, error)
}
