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
	"strings"
	"time"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/samber/lo"
	"k8s.io/apimachinery/pkg/util/wait"
)

// operationPollInterval is the delay between two WaitOperation calls. The
// server side wait already blocks, so this only spaces out early returns.
var operationPollInterval = 2 * time.Second

// OperationError is returned when an operation finished with errors
type OperationError struct {
	Operation string
	Errors    []*computepb.Errors
}

func (e *OperationError) Error() string {
	messages := lo.Map(e.Errors, func(item *computepb.Errors, _ int) string {
		return fmt.Sprintf("%s: %s", item.GetCode(), item.GetMessage())
	})
	return fmt.Sprintf("operation %s failed: %s", e.Operation, strings.Join(messages, "; "))
}

// isDone reports whether an operation has reached the DONE status
func isDone(op *computepb.Operation) bool {
	return op.GetStatus() == computepb.Operation_DONE
}

// WaitForOperationCompletion blocks until op is done, the timeout expires or
// ctx is cancelled. Zonal operations are polled in their zone, everything
// else as a global operation. The final operation is returned; an operation
// that finished with errors yields an *OperationError.
func (c *Client) WaitForOperationCompletion(ctx context.Context, project string, op *computepb.Operation, timeout time.Duration) (*computepb.Operation, error) {
	if op == nil {
		return nil, fmt.Errorf("operation cannot be nil")
	}
	name := op.GetName()
	zone := lastSegment(op.GetZone())
	logger := c.logger.WithValues("operation", name, "zone", zone)

	current := op
	err := wait.PollUntilContextTimeout(ctx, operationPollInterval, timeout, true, func(ctx context.Context) (bool, error) {
		if isDone(current) {
			return true, nil
		}
		next, err := c.compute.WaitOperation(ctx, project, zone, name)
		if err != nil {
			return false, err
		}
		current = next
		logger.Debug("polled operation", "status", current.GetStatus(), "progress", current.GetProgress())
		return isDone(current), nil
	})
	if err != nil {
		return current, fmt.Errorf("waiting for operation %s: %w", name, err)
	}

	if errs := current.GetError().GetErrors(); len(errs) > 0 {
		return current, &OperationError{Operation: name, Errors: errs}
	}
	return current, nil
}

// GetOperation returns the current state of an operation without waiting.
// An empty zone selects a global operation.
func (c *Client) GetOperation(ctx context.Context, project, zone, name string) (*computepb.Operation, error) {
	return c.compute.GetOperation(ctx, project, zone, name)
}
