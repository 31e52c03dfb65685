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

package gce

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	compute "cloud.google.com/go/compute/apiv1"
	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/proto"

	"github.com/pfeifferj/gcp-compute-client/pkg/client"
	"github.com/pfeifferj/gcp-compute-client/pkg/logging"
	"github.com/pfeifferj/gcp-compute-client/pkg/metrics"
)

// Wrapper implements client.ComputeWrapper on top of the Compute Engine
// REST clients. Every call is recorded in the gce_api_* metrics.
type Wrapper struct {
	regions           *compute.RegionsClient
	zones             *compute.ZonesClient
	machineTypes      *compute.MachineTypesClient
	diskTypes         *compute.DiskTypesClient
	acceleratorTypes  *compute.AcceleratorTypesClient
	images            *compute.ImagesClient
	networks          *compute.NetworksClient
	subnetworks       *compute.SubnetworksClient
	instances         *compute.InstancesClient
	instanceTemplates *compute.InstanceTemplatesClient
	zoneOperations    *compute.ZoneOperationsClient
	globalOperations  *compute.GlobalOperationsClient

	closers []io.Closer
	logger  *logging.Logger
}

var _ client.ComputeWrapper = &Wrapper{}

// NewWrapper creates the REST clients used by the wrapper. The options are
// shared by all clients, typically credentials and an endpoint override.
func NewWrapper(ctx context.Context, opts ...option.ClientOption) (*Wrapper, error) {
	w := &Wrapper{logger: logging.WrapperLogger()}

	var err error
	if w.regions, err = dial(ctx, w, "regions", compute.NewRegionsRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	if w.zones, err = dial(ctx, w, "zones", compute.NewZonesRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	if w.machineTypes, err = dial(ctx, w, "machine types", compute.NewMachineTypesRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	if w.diskTypes, err = dial(ctx, w, "disk types", compute.NewDiskTypesRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	if w.acceleratorTypes, err = dial(ctx, w, "accelerator types", compute.NewAcceleratorTypesRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	if w.images, err = dial(ctx, w, "images", compute.NewImagesRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	if w.networks, err = dial(ctx, w, "networks", compute.NewNetworksRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	if w.subnetworks, err = dial(ctx, w, "subnetworks", compute.NewSubnetworksRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	if w.instances, err = dial(ctx, w, "instances", compute.NewInstancesRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	if w.instanceTemplates, err = dial(ctx, w, "instance templates", compute.NewInstanceTemplatesRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	if w.zoneOperations, err = dial(ctx, w, "zone operations", compute.NewZoneOperationsRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	if w.globalOperations, err = dial(ctx, w, "global operations", compute.NewGlobalOperationsRESTClient, opts); err != nil {
		return nil, multierr.Append(err, w.Close())
	}
	return w, nil
}

func dial[T io.Closer](ctx context.Context, w *Wrapper, name string, newClient func(context.Context, ...option.ClientOption) (T, error), opts []option.ClientOption) (T, error) {
	c, err := newClient(ctx, opts...)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("creating %s client: %w", name, err)
	}
	w.closers = append(w.closers, c)
	return c, nil
}

// Close closes every client created by NewWrapper
func (w *Wrapper) Close() error {
	var err error
	for _, c := range w.closers {
		err = multierr.Append(err, c.Close())
	}
	w.closers = nil
	return err
}

// track records the outcome of a request. It is deferred with a pointer to
// the named error result.
func (w *Wrapper) track(operation string, start time.Time, err *error) {
	metrics.RecordAPIRequest(operation, Status(*err), time.Since(start))
	if *err != nil {
		w.logger.Debug("compute request failed", "operation", operation, "error", (*err).Error())
	}
}

type pager[T any] interface {
	Next() (T, error)
}

func collect[T any](it pager[T]) ([]T, error) {
	var items []T
	for {
		item, err := it.Next()
		if err == iterator.Done {
			return items, nil
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (w *Wrapper) ListRegions(ctx context.Context, project string) (regions []*computepb.Region, err error) {
	if w.regions == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("list_regions", time.Now(), &err)

	regions, err = collect[*computepb.Region](w.regions.List(ctx, &computepb.ListRegionsRequest{Project: project}))
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	return regions, nil
}

func (w *Wrapper) ListZones(ctx context.Context, project string) (zones []*computepb.Zone, err error) {
	if w.zones == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("list_zones", time.Now(), &err)

	zones, err = collect[*computepb.Zone](w.zones.List(ctx, &computepb.ListZonesRequest{Project: project}))
	if err != nil {
		return nil, fmt.Errorf("listing zones: %w", err)
	}
	return zones, nil
}

func (w *Wrapper) GetZone(ctx context.Context, project, zone string) (result *computepb.Zone, err error) {
	if w.zones == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("get_zone", time.Now(), &err)

	result, err = w.zones.Get(ctx, &computepb.GetZoneRequest{Project: project, Zone: zone})
	if err != nil {
		return nil, fmt.Errorf("getting zone %s: %w", zone, err)
	}
	return result, nil
}

func (w *Wrapper) ListMachineTypes(ctx context.Context, project, zone string) (machineTypes []*computepb.MachineType, err error) {
	if w.machineTypes == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("list_machine_types", time.Now(), &err)

	machineTypes, err = collect[*computepb.MachineType](w.machineTypes.List(ctx, &computepb.ListMachineTypesRequest{Project: project, Zone: zone}))
	if err != nil {
		return nil, fmt.Errorf("listing machine types in zone %s: %w", zone, err)
	}
	return machineTypes, nil
}

func (w *Wrapper) ListDiskTypes(ctx context.Context, project, zone string) (diskTypes []*computepb.DiskType, err error) {
	if w.diskTypes == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("list_disk_types", time.Now(), &err)

	diskTypes, err = collect[*computepb.DiskType](w.diskTypes.List(ctx, &computepb.ListDiskTypesRequest{Project: project, Zone: zone}))
	if err != nil {
		return nil, fmt.Errorf("listing disk types in zone %s: %w", zone, err)
	}
	return diskTypes, nil
}

func (w *Wrapper) ListAcceleratorTypes(ctx context.Context, project, zone string) (acceleratorTypes []*computepb.AcceleratorType, err error) {
	if w.acceleratorTypes == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("list_accelerator_types", time.Now(), &err)

	acceleratorTypes, err = collect[*computepb.AcceleratorType](w.acceleratorTypes.List(ctx, &computepb.ListAcceleratorTypesRequest{Project: project, Zone: zone}))
	if err != nil {
		return nil, fmt.Errorf("listing accelerator types in zone %s: %w", zone, err)
	}
	return acceleratorTypes, nil
}

func (w *Wrapper) ListImages(ctx context.Context, project string) (images []*computepb.Image, err error) {
	if w.images == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("list_images", time.Now(), &err)

	images, err = collect[*computepb.Image](w.images.List(ctx, &computepb.ListImagesRequest{Project: project}))
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	return images, nil
}

func (w *Wrapper) GetImage(ctx context.Context, project, name string) (image *computepb.Image, err error) {
	if w.images == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("get_image", time.Now(), &err)

	image, err = w.images.Get(ctx, &computepb.GetImageRequest{Project: project, Image: name})
	if err != nil {
		return nil, fmt.Errorf("getting image %s: %w", name, err)
	}
	return image, nil
}

func (w *Wrapper) ListNetworks(ctx context.Context, project string) (networks []*computepb.Network, err error) {
	if w.networks == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("list_networks", time.Now(), &err)

	networks, err = collect[*computepb.Network](w.networks.List(ctx, &computepb.ListNetworksRequest{Project: project}))
	if err != nil {
		return nil, fmt.Errorf("listing networks: %w", err)
	}
	return networks, nil
}

func (w *Wrapper) ListSubnetworks(ctx context.Context, project, region string) (subnetworks []*computepb.Subnetwork, err error) {
	if w.subnetworks == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("list_subnetworks", time.Now(), &err)

	subnetworks, err = collect[*computepb.Subnetwork](w.subnetworks.List(ctx, &computepb.ListSubnetworksRequest{Project: project, Region: region}))
	if err != nil {
		return nil, fmt.Errorf("listing subnetworks in region %s: %w", region, err)
	}
	return subnetworks, nil
}

func (w *Wrapper) GetInstance(ctx context.Context, project, zone, name string) (instance *computepb.Instance, err error) {
	if w.instances == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("get_instance", time.Now(), &err)

	instance, err = w.instances.Get(ctx, &computepb.GetInstanceRequest{Project: project, Zone: zone, Instance: name})
	if err != nil {
		return nil, fmt.Errorf("getting instance %s: %w", name, err)
	}
	return instance, nil
}

// AggregatedListInstances lists the instances of every zone matching filter.
// Zones that could not be listed are reported as warnings and skipped.
func (w *Wrapper) AggregatedListInstances(ctx context.Context, project, filter string) (instances []*computepb.Instance, err error) {
	if w.instances == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("aggregated_list_instances", time.Now(), &err)

	req := &computepb.AggregatedListInstancesRequest{
		Project:              project,
		ReturnPartialSuccess: proto.Bool(true),
	}
	if filter != "" {
		req.Filter = proto.String(filter)
	}

	it := w.instances.AggregatedList(ctx, req)
	for {
		pair, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing instances: %w", err)
		}
		if warning := pair.Value.GetWarning(); warning != nil && len(pair.Value.GetInstances()) == 0 {
			if warning.GetCode() != computepb.Warning_NO_RESULTS_ON_PAGE.String() {
				w.logger.Warn("partial instance listing", "scope", pair.Key, "code", warning.GetCode(), "message", warning.GetMessage())
			}
			continue
		}
		instances = append(instances, pair.Value.GetInstances()...)
	}
	return instances, nil
}

func (w *Wrapper) InsertInstance(ctx context.Context, project, zone string, instance *computepb.Instance, template string) (_ *computepb.Operation, err error) {
	if w.instances == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("insert_instance", time.Now(), &err)

	req := &computepb.InsertInstanceRequest{
		Project:          project,
		Zone:             zone,
		InstanceResource: instance,
	}
	if template != "" {
		req.SourceInstanceTemplate = proto.String(template)
	}
	op, err := w.instances.Insert(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("inserting instance %s: %w", instance.GetName(), err)
	}
	return op.Proto(), nil
}

func (w *Wrapper) DeleteInstance(ctx context.Context, project, zone, name string) (_ *computepb.Operation, err error) {
	if w.instances == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("delete_instance", time.Now(), &err)

	op, err := w.instances.Delete(ctx, &computepb.DeleteInstanceRequest{Project: project, Zone: zone, Instance: name})
	if err != nil {
		return nil, fmt.Errorf("deleting instance %s: %w", name, err)
	}
	return op.Proto(), nil
}

func (w *Wrapper) SetMetadata(ctx context.Context, project, zone, name string, metadata *computepb.Metadata) (_ *computepb.Operation, err error) {
	if w.instances == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("set_metadata", time.Now(), &err)

	op, err := w.instances.SetMetadata(ctx, &computepb.SetMetadataInstanceRequest{
		Project:          project,
		Zone:             zone,
		Instance:         name,
		MetadataResource: metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("setting metadata of instance %s: %w", name, err)
	}
	return op.Proto(), nil
}

func (w *Wrapper) ListInstanceTemplates(ctx context.Context, project string) (templates []*computepb.InstanceTemplate, err error) {
	if w.instanceTemplates == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("list_instance_templates", time.Now(), &err)

	templates, err = collect[*computepb.InstanceTemplate](w.instanceTemplates.List(ctx, &computepb.ListInstanceTemplatesRequest{Project: project}))
	if err != nil {
		return nil, fmt.Errorf("listing instance templates: %w", err)
	}
	return templates, nil
}

func (w *Wrapper) GetInstanceTemplate(ctx context.Context, project, name string) (template *computepb.InstanceTemplate, err error) {
	if w.instanceTemplates == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("get_instance_template", time.Now(), &err)

	template, err = w.instanceTemplates.Get(ctx, &computepb.GetInstanceTemplateRequest{Project: project, InstanceTemplate: name})
	if err != nil {
		return nil, fmt.Errorf("getting instance template %s: %w", name, err)
	}
	return template, nil
}

func (w *Wrapper) InsertInstanceTemplate(ctx context.Context, project string, template *computepb.InstanceTemplate) (_ *computepb.Operation, err error) {
	if w.instanceTemplates == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("insert_instance_template", time.Now(), &err)

	op, err := w.instanceTemplates.Insert(ctx, &computepb.InsertInstanceTemplateRequest{
		Project:                  project,
		InstanceTemplateResource: template,
	})
	if err != nil {
		return nil, fmt.Errorf("inserting instance template %s: %w", template.GetName(), err)
	}
	return op.Proto(), nil
}

func (w *Wrapper) DeleteInstanceTemplate(ctx context.Context, project, name string) (_ *computepb.Operation, err error) {
	if w.instanceTemplates == nil {
		return nil, ErrClientNotInitialized
	}
	defer w.track("delete_instance_template", time.Now(), &err)

	op, err := w.instanceTemplates.Delete(ctx, &computepb.DeleteInstanceTemplateRequest{Project: project, InstanceTemplate: name})
	if err != nil {
		return nil, fmt.Errorf("deleting instance template %s: %w", name, err)
	}
	return op.Proto(), nil
}

// GetOperation returns the current state of an operation. An empty zone
// selects the global operations collection.
func (w *Wrapper) GetOperation(ctx context.Context, project, zone, name string) (op *computepb.Operation, err error) {
	defer w.track("get_operation", time.Now(), &err)

	if zone == "" {
		if w.globalOperations == nil {
			return nil, ErrClientNotInitialized
		}
		op, err = w.globalOperations.Get(ctx, &computepb.GetGlobalOperationRequest{Project: project, Operation: name})
	} else {
		if w.zoneOperations == nil {
			return nil, ErrClientNotInitialized
		}
		op, err = w.zoneOperations.Get(ctx, &computepb.GetZoneOperationRequest{Project: project, Zone: zone, Operation: name})
	}
	if err != nil {
		return nil, fmt.Errorf("getting operation %s: %w", name, err)
	}
	return op, nil
}

// WaitOperation blocks server side until the operation is done or the API
// gives up waiting, then returns its state. An empty zone selects the global
// operations collection.
func (w *Wrapper) WaitOperation(ctx context.Context, project, zone, name string) (op *computepb.Operation, err error) {
	defer w.track("wait_operation", time.Now(), &err)

	if zone == "" {
		if w.globalOperations == nil {
			return nil, ErrClientNotInitialized
		}
		op, err = w.globalOperations.Wait(ctx, &computepb.WaitGlobalOperationRequest{Project: project, Operation: name})
	} else {
		if w.zoneOperations == nil {
			return nil, ErrClientNotInitialized
		}
		op, err = w.zoneOperations.Wait(ctx, &computepb.WaitZoneOperationRequest{Project: project, Zone: zone, Operation: name})
	}
	if err != nil {
		return nil, fmt.Errorf("waiting for operation %s: %w", name, err)
	}
	return op, nil
}

// GetGuestAttributes reads the guest attributes of an instance. zoneLink may
// be a zone name or self-link. queryPath is accepted URL escaped
// ("namespace%2F") as well as plain ("namespace/").
func (w *Wrapper) GetGuestAttributes(ctx context.Context, project, zoneLink, instanceID, queryPath string) (result *client.GuestAttributeQueryResult, err error) {
	if w.instances == nil {
		return nil, ErrClientNotInitialized
	}
	zone := path.Base(zoneLink)
	if zoneLink == "" || zone == "/" {
		return nil, fmt.Errorf("getting guest attributes of instance %s: %w", instanceID, ErrZoneRequired)
	}
	defer w.track("get_guest_attributes", time.Now(), &err)

	if unescaped, unescapeErr := url.PathUnescape(queryPath); unescapeErr == nil {
		queryPath = unescaped
	}
	attributes, err := w.instances.GetGuestAttributes(ctx, &computepb.GetGuestAttributesInstanceRequest{
		Project:   project,
		Zone:      zone,
		Instance:  instanceID,
		QueryPath: proto.String(queryPath),
	})
	if err != nil {
		return nil, fmt.Errorf("getting guest attributes of instance %s: %w", instanceID, err)
	}
	return toQueryResult(attributes), nil
}

func toQueryResult(attributes *computepb.GuestAttributes) *client.GuestAttributeQueryResult {
	result := &client.GuestAttributeQueryResult{QueryPath: attributes.GetQueryPath()}
	if value := attributes.GetQueryValue(); value != nil {
		result.QueryValue = &client.GuestAttributeQueryValue{
			Items: lo.Map(value.GetItems(), func(entry *computepb.GuestAttributesEntry, _ int) client.GuestAttribute {
				return client.GuestAttribute{
					Namespace: entry.GetNamespace(),
					Key:       entry.GetKey(),
					Value:     entry.GetValue(),
				}
			}),
		}
	}
	return result
}
