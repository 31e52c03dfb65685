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

package cmd

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/pfeifferj/gcp-compute-client/pkg/client"
	"github.com/pfeifferj/gcp-compute-client/pkg/gce"
)

func printNames[T interface{ GetName() string }](out io.Writer, items []T) error {
	for _, item := range items {
		if _, err := fmt.Fprintln(out, item.GetName()); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) regionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the available regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				regions, err := c.ListRegions(ctx, a.opts.Project)
				if err != nil {
					return err
				}
				return printNames(a.out, regions)
			})
		},
	}
}

func (a *app) zonesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the zones of the region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			region, err := a.region()
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				zones, err := c.ListZones(ctx, a.opts.Project, region)
				if err != nil {
					return err
				}
				return printNames(a.out, zones)
			})
		},
	}
}

func (a *app) cpuPlatformsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cpu-platforms",
		Short: "List the CPU platforms available in the zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			zone, err := a.zone()
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				platforms, err := c.ListCPUPlatforms(ctx, a.opts.Project, zone)
				if err != nil {
					return err
				}
				for _, platform := range platforms {
					if _, err := fmt.Fprintln(a.out, platform); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *app) machineTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "machine-types",
		Short: "List the machine types of the zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			zone, err := a.zone()
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				machineTypes, err := c.ListMachineTypes(ctx, a.opts.Project, zone)
				if err != nil {
					return err
				}
				return printNames(a.out, machineTypes)
			})
		},
	}
}

func (a *app) diskTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disk-types",
		Short: "List the disk types of the zone usable as boot disks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			zone, err := a.zone()
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				diskTypes, err := c.ListBootDiskTypes(ctx, a.opts.Project, zone)
				if err != nil {
					return err
				}
				return printNames(a.out, diskTypes)
			})
		},
	}
}

func (a *app) acceleratorTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "accelerator-types",
		Short: "List the accelerator types of the zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			zone, err := a.zone()
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				acceleratorTypes, err := c.ListAcceleratorTypes(ctx, a.opts.Project, zone)
				if err != nil {
					return err
				}
				return printNames(a.out, acceleratorTypes)
			})
		},
	}
}

func (a *app) imagesCommand() *cobra.Command {
	var imageProject string
	cmd := &cobra.Command{
		Use:   "images",
		Short: "List the images of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project := imageProject
			if project == "" {
				project = a.opts.Project
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				images, err := c.ListImages(ctx, project)
				if err != nil {
					return err
				}
				return printNames(a.out, images)
			})
		},
	}
	cmd.Flags().StringVar(&imageProject, "image-project", "", "Project owning the images, e.g. debian-cloud (defaults to --project)")
	return cmd
}

func (a *app) networksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List the VPC networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				networks, err := c.ListNetworks(ctx, a.opts.Project)
				if err != nil {
					return err
				}
				return printNames(a.out, networks)
			})
		},
	}
}

func (a *app) subnetworksCommand() *cobra.Command {
	var network string
	cmd := &cobra.Command{
		Use:   "subnetworks",
		Short: "List the subnetworks of a network in the region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			region, err := a.region()
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				subnetworks, err := c.ListSubnetworks(ctx, a.opts.Project, network, region)
				if err != nil {
					return err
				}
				return printNames(a.out, subnetworks)
			})
		},
	}
	cmd.Flags().StringVar(&network, "network", "default", "Network name or self-link")
	return cmd
}

func (a *app) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the instance templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				templates, err := c.ListTemplates(ctx, a.opts.Project)
				if err != nil {
					return err
				}
				return printNames(a.out, templates)
			})
		},
	}
}

func (a *app) templateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template NAME",
		Short: "Print an instance template as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				template, err := c.GetTemplate(ctx, a.opts.Project, args[0])
				if gce.IsNotFound(err) {
					return fmt.Errorf("instance template %s not found in project %s", args[0], a.opts.Project)
				}
				if err != nil {
					return err
				}
				return printJSON(a.out, template)
			})
		},
	}
}

func (a *app) deleteTemplateCommand() *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "delete-template NAME",
		Short: "Delete an instance template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				op, err := c.DeleteTemplate(ctx, a.opts.Project, args[0])
				if err != nil {
					return err
				}
				return a.finish(ctx, c, op, wait)
			})
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait for the operation to complete")
	return cmd
}

func (a *app) operationCommand() *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "operation NAME",
		Short: "Print the status and progress of an operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zone := ""
			if !global {
				z, err := a.zone()
				if err != nil {
					return err
				}
				zone = z
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				op, err := c.GetOperation(ctx, a.opts.Project, zone, args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.out, "%s %s %d%%\n", op.GetName(), op.GetStatus(), op.GetProgress())
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "Look up a global operation, such as an instance template change")
	return cmd
}

func printJSON(out io.Writer, template *computepb.InstanceTemplate) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(template)
	if err != nil {
		return fmt.Errorf("encoding instance template, %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// finish prints the operation name and optionally waits for it
func (a *app) finish(ctx context.Context, c *client.Client, op *computepb.Operation, wait bool) error {
	if wait {
		done, err := c.WaitForOperationCompletion(ctx, a.opts.Project, op, a.opts.RequestTimeout)
		if err != nil {
			return err
		}
		op = done
	}
	_, err := fmt.Fprintf(a.out, "%s %s\n", op.GetName(), op.GetStatus())
	return err
}
