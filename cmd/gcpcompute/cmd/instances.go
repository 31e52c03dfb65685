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
	"net/url"
	"strings"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/proto"

	"github.com/pfeifferj/gcp-compute-client/pkg/client"
)

func (a *app) instancesCommand() *cobra.Command {
	var labels map[string]string
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "List the instances of every zone carrying the given labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				instances, err := c.ListInstancesWithLabel(ctx, a.opts.Project, labels)
				if err != nil {
					return err
				}
				return printNames(a.out, instances)
			})
		},
	}
	cmd.Flags().StringToStringVar(&labels, "label", nil, "Label selector, e.g. --label role=agent")
	return cmd
}

func (a *app) terminateCommand() *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "terminate INSTANCE",
		Short: "Delete an instance of the zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zone, err := a.zone()
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				op, err := c.TerminateInstance(ctx, a.opts.Project, zone, args[0])
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

func (a *app) addMetadataCommand() *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "add-metadata INSTANCE KEY=VALUE...",
		Short: "Set metadata entries of an instance, keeping the other entries",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			zone, err := a.zone()
			if err != nil {
				return err
			}
			items, err := parseMetadataItems(args[1:])
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				op, err := c.AppendMetadata(ctx, a.opts.Project, zone, args[0], items)
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

func parseMetadataItems(pairs []string) ([]*computepb.Items, error) {
	items := make([]*computepb.Items, 0, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata entry %q, expected KEY=VALUE", pair)
		}
		items = append(items, &computepb.Items{Key: proto.String(key), Value: proto.String(value)})
	}
	return items, nil
}

func (a *app) guestAttributesCommand() *cobra.Command {
	var namespace string
	cmd := &cobra.Command{
		Use:   "guest-attributes INSTANCE",
		Short: "Print the guest attributes an instance published in a namespace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zone, err := a.zone()
			if err != nil {
				return err
			}
			queryPath := url.PathEscape(namespace + "/")
			return a.run(cmd, func(ctx context.Context, c *client.Client) error {
				attributes, err := c.GetGuestAttributesSync(ctx, a.opts.Project, zone, args[0], queryPath)
				if err != nil {
					return err
				}
				lines := lo.Map(attributes, func(attribute client.GuestAttribute, _ int) string {
					return fmt.Sprintf("%s/%s=%s", attribute.Namespace, attribute.Key, attribute.Value)
				})
				if len(lines) == 0 {
					return nil
				}
				_, err = fmt.Fprintln(a.out, strings.Join(lines, "\n"))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&namespace, "namespace", "hostkeys", "Guest attribute namespace")
	return cmd
}
