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
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/samber/lo"
	"google.golang.org/protobuf/proto"

	"github.com/pfeifferj/gcp-compute-client/pkg/client"
)

// ComputeBehavior controls the fake Compute API behavior for testing
type ComputeBehavior struct {
	ListRegionsBehavior          MockedFunction[ProjectInput, []*computepb.Region]
	ListZonesBehavior            MockedFunction[ProjectInput, []*computepb.Zone]
	GetZoneBehavior              MockedFunction[ResourceInput, computepb.Zone]
	ListMachineTypesBehavior     MockedFunction[ZonalInput, []*computepb.MachineType]
	ListDiskTypesBehavior        MockedFunction[ZonalInput, []*computepb.DiskType]
	ListAcceleratorTypesBehavior MockedFunction[ZonalInput, []*computepb.AcceleratorType]
	ListImagesBehavior           MockedFunction[ProjectInput, []*computepb.Image]
	GetImageBehavior             MockedFunction[ResourceInput, computepb.Image]
	ListNetworksBehavior         MockedFunction[ProjectInput, []*computepb.Network]
	ListSubnetworksBehavior      MockedFunction[RegionalInput, []*computepb.Subnetwork]

	GetInstanceBehavior             MockedFunction[ResourceInput, computepb.Instance]
	AggregatedListInstancesBehavior MockedFunction[FilterInput, []*computepb.Instance]
	InsertInstanceBehavior          MockedFunction[InsertInstanceInput, computepb.Operation]
	DeleteInstanceBehavior          MockedFunction[ResourceInput, computepb.Operation]
	SetMetadataBehavior             MockedFunction[SetMetadataInput, computepb.Operation]

	ListInstanceTemplatesBehavior  MockedFunction[ProjectInput, []*computepb.InstanceTemplate]
	GetInstanceTemplateBehavior    MockedFunction[ResourceInput, computepb.InstanceTemplate]
	InsertInstanceTemplateBehavior MockedFunction[InsertInstanceTemplateInput, computepb.Operation]
	DeleteInstanceTemplateBehavior MockedFunction[ResourceInput, computepb.Operation]

	GetOperationBehavior       MockedFunction[ResourceInput, computepb.Operation]
	WaitOperationBehavior      MockedFunction[ResourceInput, computepb.Operation]
	GetGuestAttributesBehavior MockedFunction[GuestAttributesInput, client.GuestAttributeQueryResult]

	Regions           AtomicPtrSlice[*computepb.Region]
	Zones             AtomicPtrSlice[*computepb.Zone]
	MachineTypes      AtomicPtrSlice[*computepb.MachineType]
	DiskTypes         AtomicPtrSlice[*computepb.DiskType]
	AcceleratorTypes  AtomicPtrSlice[*computepb.AcceleratorType]
	Images            AtomicPtrSlice[*computepb.Image]
	Networks          AtomicPtrSlice[*computepb.Network]
	Subnetworks       AtomicPtrSlice[*computepb.Subnetwork]
	Instances         AtomicPtrSlice[*computepb.Instance]
	InstanceTemplates AtomicPtrSlice[*computepb.InstanceTemplate]
	NextError         AtomicError
}

// Input types for Compute operations
type ProjectInput struct {
	Project string
}

type ZonalInput struct {
	Project string
	Zone    string
}

type RegionalInput struct {
	Project string
	Region  string
}

// ResourceInput identifies a single resource. Zone is empty for global resources.
type ResourceInput struct {
	Project string
	Zone    string
	Name    string
}

type FilterInput struct {
	Project string
	Filter  string
}

type InsertInstanceInput struct {
	Project  string
	Zone     string
	Instance *computepb.Instance
	Template string
}

type SetMetadataInput struct {
	Project  string
	Zone     string
	Name     string
	Metadata *computepb.Metadata
}

type InsertInstanceTemplateInput struct {
	Project  string
	Template *computepb.InstanceTemplate
}

type GuestAttributesInput struct {
	Project    string
	Zone       string
	InstanceID string
	QueryPath  string
}

// ComputeAPI implements client.ComputeWrapper in memory for testing. Zonal
// resources are matched on their Zone field, which may be a name or a
// self-link. Mutating calls return RUNNING operations that complete on the
// first GetOperation or WaitOperation.
type ComputeAPI struct {
	*ComputeBehavior
	mu sync.RWMutex

	// GuestAttributes holds the attributes published by each instance, keyed by instance name
	GuestAttributes map[string][]client.GuestAttribute

	operations   map[string]*computepb.Operation
	operationSeq int
}

var _ client.ComputeWrapper = &ComputeAPI{}

// NewComputeAPI creates a new fake Compute API
func NewComputeAPI() *ComputeAPI {
	return &ComputeAPI{
		ComputeBehavior: &ComputeBehavior{},
		GuestAttributes: map[string][]client.GuestAttribute{},
		operations:      map[string]*computepb.Operation{},
	}
}

// Reset clears stored resources, recorded calls and pending operations
func (f *ComputeAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ComputeBehavior = &ComputeBehavior{}
	f.GuestAttributes = map[string][]client.GuestAttribute{}
	f.operations = map[string]*computepb.Operation{}
	f.operationSeq = 0
}

func matches(link, name string) bool {
	return link == "" || path.Base(link) == path.Base(name)
}

func list[I any, T any](f *ComputeAPI, behavior *MockedFunction[I, []T], input I, store *AtomicPtrSlice[T], keep func(T) bool) ([]T, error) {
	if err := f.NextError.Get(); err != nil {
		return nil, err
	}
	behavior.CalledWithInput.Add(input)
	if err := behavior.Error.Get(); err != nil {
		return nil, err
	}
	if output := behavior.Output.Get(); output != nil {
		return *output, nil
	}
	return lo.Filter(store.Clone(), func(item T, _ int) bool {
		return keep == nil || keep(item)
	}), nil
}

func get[I any, T any](f *ComputeAPI, behavior *MockedFunction[I, T], input I, kind, name string, store *AtomicPtrSlice[*T], match func(*T) bool) (*T, error) {
	if err := f.NextError.Get(); err != nil {
		return nil, err
	}
	behavior.CalledWithInput.Add(input)
	if err := behavior.Error.Get(); err != nil {
		return nil, err
	}
	if output := behavior.Output.Get(); output != nil {
		return output, nil
	}
	found, ok := lo.Find(store.Clone(), match)
	if !ok {
		return nil, fmt.Errorf("%s %s not found", kind, name)
	}
	return found, nil
}

// ListRegions lists regions
func (f *ComputeAPI) ListRegions(_ context.Context, project string) ([]*computepb.Region, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return list(f, &f.ListRegionsBehavior, ProjectInput{Project: project}, &f.Regions, nil)
}

// ListZones lists zones of all regions
func (f *ComputeAPI) ListZones(_ context.Context, project string) ([]*computepb.Zone, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return list(f, &f.ListZonesBehavior, ProjectInput{Project: project}, &f.Zones, nil)
}

// GetZone gets a zone
func (f *ComputeAPI) GetZone(_ context.Context, project, zone string) (*computepb.Zone, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return get(f, &f.GetZoneBehavior, ResourceInput{Project: project, Name: zone}, "zone", zone, &f.Zones, func(z *computepb.Zone) bool {
		return z.GetName() == zone
	})
}

// ListMachineTypes lists machine types of a zone
func (f *ComputeAPI) ListMachineTypes(_ context.Context, project, zone string) ([]*computepb.MachineType, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return list(f, &f.ListMachineTypesBehavior, ZonalInput{Project: project, Zone: zone}, &f.MachineTypes, func(m *computepb.MachineType) bool {
		return matches(m.GetZone(), zone)
	})
}

// ListDiskTypes lists disk types of a zone
func (f *ComputeAPI) ListDiskTypes(_ context.Context, project, zone string) ([]*computepb.DiskType, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return list(f, &f.ListDiskTypesBehavior, ZonalInput{Project: project, Zone: zone}, &f.DiskTypes, func(d *computepb.DiskType) bool {
		return matches(d.GetZone(), zone)
	})
}

// ListAcceleratorTypes lists accelerator types of a zone
func (f *ComputeAPI) ListAcceleratorTypes(_ context.Context, project, zone string) ([]*computepb.AcceleratorType, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return list(f, &f.ListAcceleratorTypesBehavior, ZonalInput{Project: project, Zone: zone}, &f.AcceleratorTypes, func(a *computepb.AcceleratorType) bool {
		return matches(a.GetZone(), zone)
	})
}

// ListImages lists images
func (f *ComputeAPI) ListImages(_ context.Context, project string) ([]*computepb.Image, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return list(f, &f.ListImagesBehavior, ProjectInput{Project: project}, &f.Images, nil)
}

// GetImage gets an image
func (f *ComputeAPI) GetImage(_ context.Context, project, name string) (*computepb.Image, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return get(f, &f.GetImageBehavior, ResourceInput{Project: project, Name: name}, "image", name, &f.Images, func(i *computepb.Image) bool {
		return i.GetName() == name
	})
}

// ListNetworks lists networks
func (f *ComputeAPI) ListNetworks(_ context.Context, project string) ([]*computepb.Network, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return list(f, &f.ListNetworksBehavior, ProjectInput{Project: project}, &f.Networks, nil)
}

// ListSubnetworks lists subnetworks of a region
func (f *ComputeAPI) ListSubnetworks(_ context.Context, project, region string) ([]*computepb.Subnetwork, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return list(f, &f.ListSubnetworksBehavior, RegionalInput{Project: project, Region: region}, &f.Subnetworks, func(s *computepb.Subnetwork) bool {
		return matches(s.GetRegion(), region)
	})
}

// GetInstance gets an instance
func (f *ComputeAPI) GetInstance(_ context.Context, project, zone, name string) (*computepb.Instance, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return get(f, &f.GetInstanceBehavior, ResourceInput{Project: project, Zone: zone, Name: name}, "instance", name, &f.Instances, func(i *computepb.Instance) bool {
		return i.GetName() == name && matches(i.GetZone(), zone)
	})
}

// AggregatedListInstances lists instances of all zones. Filters of the form
// `labels.key = "value"` joined by AND are honoured.
func (f *ComputeAPI) AggregatedListInstances(_ context.Context, project, filter string) ([]*computepb.Instance, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	labels := parseLabelFilter(filter)
	return list(f, &f.AggregatedListInstancesBehavior, FilterInput{Project: project, Filter: filter}, &f.Instances, func(i *computepb.Instance) bool {
		for key, value := range labels {
			if i.GetLabels()[key] != value {
				return false
			}
		}
		return true
	})
}

func parseLabelFilter(filter string) map[string]string {
	labels := map[string]string{}
	for _, clause := range strings.Split(filter, " AND ") {
		key, value, ok := strings.Cut(clause, " = ")
		if !ok || !strings.HasPrefix(key, "labels.") {
			continue
		}
		labels[strings.TrimPrefix(key, "labels.")] = strings.Trim(value, `"`)
	}
	return labels
}

// newOperation records a RUNNING operation. Callers must hold f.mu.
func (f *ComputeAPI) newOperation(project, zone, kind, target string) *computepb.Operation {
	f.operationSeq++
	op := &computepb.Operation{
		Name:          proto.String(fmt.Sprintf("operation-%d", f.operationSeq)),
		OperationType: proto.String(kind),
		TargetLink:    proto.String(target),
		Status:        computepb.Operation_RUNNING.Enum(),
		Progress:      proto.Int32(0),
	}
	if zone != "" {
		op.Zone = proto.String(fmt.Sprintf("projects/%s/zones/%s", project, zone))
	}
	f.operations[op.GetName()] = op
	return op
}

// InsertInstance creates an instance
func (f *ComputeAPI) InsertInstance(_ context.Context, project, zone string, instance *computepb.Instance, template string) (*computepb.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.NextError.Get(); err != nil {
		return nil, err
	}
	f.InsertInstanceBehavior.CalledWithInput.Add(InsertInstanceInput{Project: project, Zone: zone, Instance: instance, Template: template})
	if err := f.InsertInstanceBehavior.Error.Get(); err != nil {
		return nil, err
	}
	if output := f.InsertInstanceBehavior.Output.Get(); output != nil {
		return output, nil
	}

	stored := proto.Clone(instance).(*computepb.Instance)
	stored.Zone = proto.String(zone)
	stored.Status = proto.String(computepb.Instance_PROVISIONING.String())
	if stored.Metadata == nil {
		stored.Metadata = &computepb.Metadata{}
	}
	stored.Metadata.Fingerprint = proto.String("fingerprint-0")
	f.Instances.Add(stored)

	return f.newOperation(project, zone, "insert", instance.GetName()), nil
}

// DeleteInstance deletes an instance
func (f *ComputeAPI) DeleteInstance(_ context.Context, project, zone, name string) (*computepb.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.NextError.Get(); err != nil {
		return nil, err
	}
	f.DeleteInstanceBehavior.CalledWithInput.Add(ResourceInput{Project: project, Zone: zone, Name: name})
	if err := f.DeleteInstanceBehavior.Error.Get(); err != nil {
		return nil, err
	}
	if output := f.DeleteInstanceBehavior.Output.Get(); output != nil {
		return output, nil
	}

	instances := f.Instances.Clone()
	kept := lo.Reject(instances, func(i *computepb.Instance, _ int) bool {
		return i.GetName() == name && matches(i.GetZone(), zone)
	})
	if len(kept) == len(instances) {
		return nil, fmt.Errorf("instance %s not found", name)
	}
	f.Instances.Store(kept)

	return f.newOperation(project, zone, "delete", name), nil
}

// SetMetadata replaces the metadata of an instance. The fingerprint must
// match the stored one, like the real API requires.
func (f *ComputeAPI) SetMetadata(_ context.Context, project, zone, name string, metadata *computepb.Metadata) (*computepb.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.NextError.Get(); err != nil {
		return nil, err
	}
	f.SetMetadataBehavior.CalledWithInput.Add(SetMetadataInput{Project: project, Zone: zone, Name: name, Metadata: metadata})
	if err := f.SetMetadataBehavior.Error.Get(); err != nil {
		return nil, err
	}
	if output := f.SetMetadataBehavior.Output.Get(); output != nil {
		return output, nil
	}

	instance, ok := lo.Find(f.Instances.Clone(), func(i *computepb.Instance) bool {
		return i.GetName() == name && matches(i.GetZone(), zone)
	})
	if !ok {
		return nil, fmt.Errorf("instance %s not found", name)
	}
	if instance.GetMetadata().GetFingerprint() != metadata.GetFingerprint() {
		return nil, fmt.Errorf("metadata fingerprint mismatch for instance %s", name)
	}

	f.operationSeq++
	instance.Metadata = &computepb.Metadata{
		Fingerprint: proto.String(fmt.Sprintf("fingerprint-%d", f.operationSeq)),
		Items:       metadata.GetItems(),
	}
	return f.newOperation(project, zone, "setMetadata", name), nil
}

// ListInstanceTemplates lists instance templates
func (f *ComputeAPI) ListInstanceTemplates(_ context.Context, project string) ([]*computepb.InstanceTemplate, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return list(f, &f.ListInstanceTemplatesBehavior, ProjectInput{Project: project}, &f.InstanceTemplates, nil)
}

// GetInstanceTemplate gets an instance template
func (f *ComputeAPI) GetInstanceTemplate(_ context.Context, project, name string) (*computepb.InstanceTemplate, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return get(f, &f.GetInstanceTemplateBehavior, ResourceInput{Project: project, Name: name}, "instance template", name, &f.InstanceTemplates, func(t *computepb.InstanceTemplate) bool {
		return t.GetName() == name
	})
}

// InsertInstanceTemplate creates an instance template
func (f *ComputeAPI) InsertInstanceTemplate(_ context.Context, project string, template *computepb.InstanceTemplate) (*computepb.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.NextError.Get(); err != nil {
		return nil, err
	}
	f.InsertInstanceTemplateBehavior.CalledWithInput.Add(InsertInstanceTemplateInput{Project: project, Template: template})
	if err := f.InsertInstanceTemplateBehavior.Error.Get(); err != nil {
		return nil, err
	}
	if output := f.InsertInstanceTemplateBehavior.Output.Get(); output != nil {
		return output, nil
	}

	f.InstanceTemplates.Add(proto.Clone(template).(*computepb.InstanceTemplate))
	return f.newOperation(project, "", "insert", template.GetName()), nil
}

// DeleteInstanceTemplate deletes an instance template
func (f *ComputeAPI) DeleteInstanceTemplate(_ context.Context, project, name string) (*computepb.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.NextError.Get(); err != nil {
		return nil, err
	}
	f.DeleteInstanceTemplateBehavior.CalledWithInput.Add(ResourceInput{Project: project, Name: name})
	if err := f.DeleteInstanceTemplateBehavior.Error.Get(); err != nil {
		return nil, err
	}
	if output := f.DeleteInstanceTemplateBehavior.Output.Get(); output != nil {
		return output, nil
	}

	templates := f.InstanceTemplates.Clone()
	kept := lo.Reject(templates, func(t *computepb.InstanceTemplate, _ int) bool {
		return t.GetName() == name
	})
	if len(kept) == len(templates) {
		return nil, fmt.Errorf("instance template %s not found", name)
	}
	f.InstanceTemplates.Store(kept)
	return f.newOperation(project, "", "delete", name), nil
}

func (f *ComputeAPI) completeOperation(behavior *MockedFunction[ResourceInput, computepb.Operation], project, zone, name string) (*computepb.Operation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.NextError.Get(); err != nil {
		return nil, err
	}
	behavior.CalledWithInput.Add(ResourceInput{Project: project, Zone: zone, Name: name})
	if err := behavior.Error.Get(); err != nil {
		return nil, err
	}
	if output := behavior.Output.Get(); output != nil {
		return output, nil
	}

	op, ok := f.operations[name]
	if !ok {
		return nil, fmt.Errorf("operation %s not found", name)
	}
	op.Status = computepb.Operation_DONE.Enum()
	op.Progress = proto.Int32(100)
	return proto.Clone(op).(*computepb.Operation), nil
}

// GetOperation returns an operation, completing it
func (f *ComputeAPI) GetOperation(_ context.Context, project, zone, name string) (*computepb.Operation, error) {
	return f.completeOperation(&f.GetOperationBehavior, project, zone, name)
}

// WaitOperation returns an operation, completing it
func (f *ComputeAPI) WaitOperation(_ context.Context, project, zone, name string) (*computepb.Operation, error) {
	return f.completeOperation(&f.WaitOperationBehavior, project, zone, name)
}

// GetGuestAttributes returns the attributes of an instance matching
// queryPath. The query path is "namespace/" or "namespace/key", optionally
// URL escaped.
func (f *ComputeAPI) GetGuestAttributes(_ context.Context, project, zone, instanceID, queryPath string) (*client.GuestAttributeQueryResult, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.NextError.Get(); err != nil {
		return nil, err
	}
	f.GetGuestAttributesBehavior.CalledWithInput.Add(GuestAttributesInput{Project: project, Zone: zone, InstanceID: instanceID, QueryPath: queryPath})
	if err := f.GetGuestAttributesBehavior.Error.Get(); err != nil {
		return nil, err
	}
	if output := f.GetGuestAttributesBehavior.Output.Get(); output != nil {
		return output, nil
	}

	attributes, ok := f.GuestAttributes[instanceID]
	if !ok {
		return nil, fmt.Errorf("instance %s not found", instanceID)
	}
	decoded, err := url.PathUnescape(queryPath)
	if err != nil {
		return nil, fmt.Errorf("invalid query path %q: %w", queryPath, err)
	}
	namespace, key, _ := strings.Cut(decoded, "/")
	items := lo.Filter(attributes, func(a client.GuestAttribute, _ int) bool {
		return (namespace == "" || a.Namespace == namespace) && (key == "" || a.Key == key)
	})
	return &client.GuestAttributeQueryResult{
		QueryPath:  queryPath,
		QueryValue: &client.GuestAttributeQueryValue{Items: items},
	}, nil
}
