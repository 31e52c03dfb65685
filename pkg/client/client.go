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

	"github.com/pfeifferj/gcp-compute-client/pkg/logging"
)

// Client exposes normalized views of Compute Engine resources. It keeps no
// state besides the wrapper and is safe for concurrent use whenever the
// wrapper is. Errors returned by the wrapper are passed through unchanged.
type Client struct {
	compute ComputeWrapper
	logger  *logging.Logger
}

// NewClient creates a Client on top of the given wrapper
func NewClient(compute ComputeWrapper) (*Client, error) {
	if compute == nil {
		return nil, fmt.Errorf("compute wrapper cannot be nil")
	}
	return &Client{
		compute: compute,
		logger:  logging.ClientLogger(),
	}, nil
}

// ListRegions returns the non-deprecated regions of the project sorted by name
func (c *Client) ListRegions(ctx context.Context, project string) ([]*computepb.Region, error) {
	regions, err := c.compute.ListRegions(ctx, project)
	if err != nil {
		return nil, err
	}
	result := normalize(regions)
	c.logger.Debug("listed regions", "project", project, "total", len(regions), "returned", len(result))
	return result, nil
}

// ListZones returns the zones of a region sorted by name
func (c *Client) ListZones(ctx context.Context, project, region string) ([]*computepb.Zone, error) {
	zones, err := c.compute.ListZones(ctx, project)
	if err != nil {
		return nil, err
	}
	inRegion := lo.Filter(zones, func(zone *computepb.Zone, _ int) bool {
		return sameResource(zone.GetRegion(), region)
	})
	result := sortedByName(inRegion)
	c.logger.Debug("listed zones", "project", project, "region", region, "returned", len(result))
	return result, nil
}

// ListCPUPlatforms returns the CPU platforms available in a zone sorted by name
func (c *Client) ListCPUPlatforms(ctx context.Context, project, zone string) ([]string, error) {
	z, err := c.compute.GetZone(ctx, project, zone)
	if err != nil {
		return nil, err
	}
	platforms := lo.Uniq(z.GetAvailableCpuPlatforms())
	return sortedStrings(platforms), nil
}

// ListMachineTypes returns the non-deprecated machine types of a zone sorted by name
func (c *Client) ListMachineTypes(ctx context.Context, project, zone string) ([]*computepb.MachineType, error) {
	machineTypes, err := c.compute.ListMachineTypes(ctx, project, zone)
	if err != nil {
		return nil, err
	}
	return normalize(machineTypes), nil
}

// ListBootDiskTypes returns the disk types of a zone that can back a boot
// disk. Deprecated and local SSD types are excluded.
func (c *Client) ListBootDiskTypes(ctx context.Context, project, zone string) ([]*computepb.DiskType, error) {
	diskTypes, err := c.compute.ListDiskTypes(ctx, project, zone)
	if err != nil {
		return nil, err
	}
	bootable := lo.Filter(diskTypes, func(diskType *computepb.DiskType, _ int) bool {
		return isBootDiskType(diskType)
	})
	return normalize(bootable), nil
}

// ListAcceleratorTypes returns the non-deprecated accelerator types of a zone sorted by name
func (c *Client) ListAcceleratorTypes(ctx context.Context, project, zone string) ([]*computepb.AcceleratorType, error) {
	acceleratorTypes, err := c.compute.ListAcceleratorTypes(ctx, project, zone)
	if err != nil {
		return nil, err
	}
	return normalize(acceleratorTypes), nil
}

// ListImages returns the non-deprecated images of the project sorted by name
func (c *Client) ListImages(ctx context.Context, project string) ([]*computepb.Image, error) {
	images, err := c.compute.ListImages(ctx, project)
	if err != nil {
		return nil, err
	}
	return normalize(images), nil
}

// GetImage returns a single image
func (c *Client) GetImage(ctx context.Context, project, name string) (*computepb.Image, error) {
	return c.compute.GetImage(ctx, project, name)
}

// ListNetworks returns the networks of the project sorted by name
func (c *Client) ListNetworks(ctx context.Context, project string) ([]*computepb.Network, error) {
	networks, err := c.compute.ListNetworks(ctx, project)
	if err != nil {
		return nil, err
	}
	return sortedByName(networks), nil
}

// ListSubnetworks returns the subnetworks of a region that belong to network,
// sorted by name. network may be a name or a self-link.
func (c *Client) ListSubnetworks(ctx context.Context, project, network, region string) ([]*computepb.Subnetwork, error) {
	subnetworks, err := c.compute.ListSubnetworks(ctx, project, region)
	if err != nil {
		return nil, err
	}
	attached := lo.Filter(subnetworks, func(subnetwork *computepb.Subnetwork, _ int) bool {
		return sameResource(subnetwork.GetNetwork(), network)
	})
	return sortedByName(attached), nil
}

// ListTemplates returns the instance templates of the project sorted by name
func (c *Client) ListTemplates(ctx context.Context, project string) ([]*computepb.InstanceTemplate, error) {
	templates, err := c.compute.ListInstanceTemplates(ctx, project)
	if err != nil {
		return nil, err
	}
	return sortedByName(templates), nil
}

// GetTemplate returns a single instance template
func (c *Client) GetTemplate(ctx context.Context, project, name string) (*computepb.InstanceTemplate, error) {
	return c.compute.GetInstanceTemplate(ctx, project, name)
}

// InsertTemplate creates an instance template
func (c *Client) InsertTemplate(ctx context.Context, project string, template *computepb.InstanceTemplate) (*computepb.Operation, error) {
	c.logger.Info("inserting instance template", "project", project, "template", template.GetName())
	return c.compute.InsertInstanceTemplate(ctx, project, template)
}

// DeleteTemplate deletes an instance template
func (c *Client) DeleteTemplate(ctx context.Context, project, name string) (*computepb.Operation, error) {
	c.logger.Info("deleting instance template", "project", project, "template", name)
	return c.compute.DeleteInstanceTemplate(ctx, project, name)
}

// GetInstance returns a single instance
func (c *Client) GetInstance(ctx context.Context, project, zone, name string) (*computepb.Instance, error) {
	return c.compute.GetInstance(ctx, project, zone, name)
}

// ListInstancesWithLabel returns the instances of every zone that carry all
// the given labels, sorted by name.
func (c *Client) ListInstancesWithLabel(ctx context.Context, project string, labels map[string]string) ([]*computepb.Instance, error) {
	instances, err := c.compute.AggregatedListInstances(ctx, project, labelFilter(labels))
	if err != nil {
		return nil, err
	}
	return sortedByName(instances), nil
}

// InsertInstance creates an instance in a zone. template is an optional
// instance template self-link the instance is created from.
func (c *Client) InsertInstance(ctx context.Context, project, zone string, instance *computepb.Instance, template string) (*computepb.Operation, error) {
	c.logger.Info("inserting instance", "project", project, "zone", zone, "instance", instance.GetName(), "template", template)
	return c.compute.InsertInstance(ctx, project, zone, instance, template)
}

// TerminateInstance deletes an instance without waiting for the operation
func (c *Client) TerminateInstance(ctx context.Context, project, zone, name string) (*computepb.Operation, error) {
	c.logger.Info("terminating instance", "project", project, "zone", zone, "instance", name)
	return c.compute.DeleteInstance(ctx, project, zone, name)
}

// GetGuestAttributesSync queries the guest attributes of an instance and
// returns the matched entries in the order the API reported them.
func (c *Client) GetGuestAttributesSync(ctx context.Context, project, zone, instanceID, queryPath string) ([]GuestAttribute, error) {
	result, err := c.compute.GetGuestAttributes(ctx, project, zone, instanceID, queryPath)
	if err != nil {
		return nil, err
	}
	if result == nil || result.QueryValue == nil {
		return []GuestAttribute{}, nil
	}
	return result.QueryValue.Items, nil
}
