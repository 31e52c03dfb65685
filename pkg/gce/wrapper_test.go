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
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/proto"

	"github.com/pfeifferj/gcp-compute-client/pkg/client"
	"github.com/pfeifferj/gcp-compute-client/pkg/metrics"
)

const notFoundBody = `{"error":{"code":404,"message":"The resource 'projects/test-project/global/instanceTemplates/missing' was not found","errors":[{"reason":"notFound","message":"not found"}]}}`

// newTestWrapper serves the Compute REST API from mux
func newTestWrapper(t *testing.T, mux *http.ServeMux) *Wrapper {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	w, err := NewWrapper(context.Background(),
		option.WithEndpoint(server.URL),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, w.Close()) })
	return w
}

func respond(body string) http.HandlerFunc {
	return func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(rw, body)
	}
}

func names[T interface{ GetName() string }](items []T) []string {
	return lo.Map(items, func(item T, _ int) string { return item.GetName() })
}

func TestWrapperNotInitialized(t *testing.T) {
	w := &Wrapper{}
	ctx := context.Background()

	_, err := w.ListRegions(ctx, "p")
	assert.ErrorIs(t, err, ErrClientNotInitialized)
	_, err = w.GetInstanceTemplate(ctx, "p", "t")
	assert.ErrorIs(t, err, ErrClientNotInitialized)
	_, err = w.GetGuestAttributes(ctx, "p", "z", "i", "ns/")
	assert.ErrorIs(t, err, ErrClientNotInitialized)
	assert.NoError(t, w.Close())
}

func TestWrapperListRegions(t *testing.T) {
	metrics.APIRequestsTotal.Reset()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /compute/v1/projects/test-project/regions", respond(`{"items":[
		{"name":"us-west1"},
		{"name":"us-east1","deprecated":{"state":"DEPRECATED"}}
	]}`))
	w := newTestWrapper(t, mux)

	regions, err := w.ListRegions(context.Background(), "test-project")
	require.NoError(t, err)
	assert.Equal(t, []string{"us-west1", "us-east1"}, names(regions))
	assert.Equal(t, "DEPRECATED", regions[1].GetDeprecated().GetState())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("list_regions", "success")))
}

func TestWrapperListsFollowPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /compute/v1/projects/test-project/zones/us-west1-a/machineTypes", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			_, _ = io.WriteString(rw, `{"items":[{"name":"e2-small"}],"nextPageToken":"page-2"}`)
			return
		}
		_, _ = io.WriteString(rw, `{"items":[{"name":"e2-medium"}]}`)
	})
	w := newTestWrapper(t, mux)

	machineTypes, err := w.ListMachineTypes(context.Background(), "test-project", "us-west1-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"e2-small", "e2-medium"}, names(machineTypes))
}

func TestWrapperZonalAndRegionalLists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /compute/v1/projects/test-project/zones", respond(`{"items":[{"name":"us-west1-a","region":"https://www.googleapis.com/compute/v1/projects/test-project/regions/us-west1"}]}`))
	mux.HandleFunc("GET /compute/v1/projects/test-project/zones/us-west1-a", respond(`{"name":"us-west1-a","availableCpuPlatforms":["Intel Skylake","AMD Rome"]}`))
	mux.HandleFunc("GET /compute/v1/projects/test-project/zones/us-west1-a/diskTypes", respond(`{"items":[{"name":"pd-ssd"},{"name":"local-ssd"}]}`))
	mux.HandleFunc("GET /compute/v1/projects/test-project/zones/us-west1-a/acceleratorTypes", respond(`{"items":[{"name":"nvidia-l4"}]}`))
	mux.HandleFunc("GET /compute/v1/projects/test-project/global/images", respond(`{"items":[{"name":"debian-12"}]}`))
	mux.HandleFunc("GET /compute/v1/projects/test-project/global/images/debian-12", respond(`{"name":"debian-12","family":"debian"}`))
	mux.HandleFunc("GET /compute/v1/projects/test-project/global/networks", respond(`{"items":[{"name":"default"}]}`))
	mux.HandleFunc("GET /compute/v1/projects/test-project/regions/us-west1/subnetworks", respond(`{"items":[{"name":"default","network":"projects/test-project/global/networks/default"}]}`))
	w := newTestWrapper(t, mux)
	ctx := context.Background()

	zones, err := w.ListZones(ctx, "test-project")
	require.NoError(t, err)
	assert.Equal(t, []string{"us-west1-a"}, names(zones))

	zone, err := w.GetZone(ctx, "test-project", "us-west1-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"Intel Skylake", "AMD Rome"}, zone.GetAvailableCpuPlatforms())

	diskTypes, err := w.ListDiskTypes(ctx, "test-project", "us-west1-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"pd-ssd", "local-ssd"}, names(diskTypes))

	acceleratorTypes, err := w.ListAcceleratorTypes(ctx, "test-project", "us-west1-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"nvidia-l4"}, names(acceleratorTypes))

	images, err := w.ListImages(ctx, "test-project")
	require.NoError(t, err)
	assert.Equal(t, []string{"debian-12"}, names(images))

	image, err := w.GetImage(ctx, "test-project", "debian-12")
	require.NoError(t, err)
	assert.Equal(t, "debian", image.GetFamily())

	networks, err := w.ListNetworks(ctx, "test-project")
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names(networks))

	subnetworks, err := w.ListSubnetworks(ctx, "test-project", "us-west1")
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names(subnetworks))
}

func TestWrapperInstanceTemplates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /compute/v1/projects/test-project/global/instanceTemplates", respond(`{"items":[{"name":"b"},{"name":"a"}]}`))
	mux.HandleFunc("GET /compute/v1/projects/test-project/global/instanceTemplates/agents", respond(`{"name":"agents","properties":{"machineType":"e2-medium"}}`))
	mux.HandleFunc("GET /compute/v1/projects/test-project/global/instanceTemplates/missing", func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(rw, notFoundBody)
	})
	mux.HandleFunc("POST /compute/v1/projects/test-project/global/instanceTemplates", respond(`{"name":"operation-1","status":"RUNNING"}`))
	mux.HandleFunc("DELETE /compute/v1/projects/test-project/global/instanceTemplates/agents", respond(`{"name":"operation-2","status":"PENDING"}`))
	w := newTestWrapper(t, mux)
	ctx := context.Background()

	templates, err := w.ListInstanceTemplates(ctx, "test-project")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, names(templates))

	template, err := w.GetInstanceTemplate(ctx, "test-project", "agents")
	require.NoError(t, err)
	assert.Equal(t, "e2-medium", template.GetProperties().GetMachineType())

	_, err = w.GetInstanceTemplate(ctx, "test-project", "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "getting instance template missing")

	op, err := w.InsertInstanceTemplate(ctx, "test-project", &computepb.InstanceTemplate{Name: proto.String("agents")})
	require.NoError(t, err)
	assert.Equal(t, "operation-1", op.GetName())

	op, err = w.DeleteInstanceTemplate(ctx, "test-project", "agents")
	require.NoError(t, err)
	assert.Equal(t, computepb.Operation_PENDING, op.GetStatus())
}

func TestWrapperInstances(t *testing.T) {
	var insertedTemplate, filter string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /compute/v1/projects/test-project/zones/us-west1-a/instances/vm", respond(`{"name":"vm","metadata":{"fingerprint":"abc","items":[{"key":"k","value":"v"}]}}`))
	mux.HandleFunc("GET /compute/v1/projects/test-project/aggregated/instances", func(rw http.ResponseWriter, r *http.Request) {
		filter = r.URL.Query().Get("filter")
		respond(`{"items":{
			"zones/us-west1-a":{"instances":[{"name":"vm-1"}]},
			"zones/us-west1-b":{"warning":{"code":"NO_RESULTS_ON_PAGE","message":"none"}},
			"zones/us-west1-c":{"instances":[{"name":"vm-2"}]}
		}}`)(rw, r)
	})
	mux.HandleFunc("POST /compute/v1/projects/test-project/zones/us-west1-a/instances", func(rw http.ResponseWriter, r *http.Request) {
		insertedTemplate = r.URL.Query().Get("sourceInstanceTemplate")
		respond(`{"name":"operation-1","status":"RUNNING","zone":"https://www.googleapis.com/compute/v1/projects/test-project/zones/us-west1-a"}`)(rw, r)
	})
	mux.HandleFunc("DELETE /compute/v1/projects/test-project/zones/us-west1-a/instances/vm", respond(`{"name":"operation-2","status":"RUNNING"}`))
	mux.HandleFunc("POST /compute/v1/projects/test-project/zones/us-west1-a/instances/vm/setMetadata", respond(`{"name":"operation-3","status":"RUNNING"}`))
	w := newTestWrapper(t, mux)
	ctx := context.Background()

	instance, err := w.GetInstance(ctx, "test-project", "us-west1-a", "vm")
	require.NoError(t, err)
	assert.Equal(t, "abc", instance.GetMetadata().GetFingerprint())

	instances, err := w.AggregatedListInstances(ctx, "test-project", `labels.role = "agent"`)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"vm-1", "vm-2"}, names(instances))
	assert.Equal(t, `labels.role = "agent"`, filter)

	op, err := w.InsertInstance(ctx, "test-project", "us-west1-a", &computepb.Instance{Name: proto.String("vm")}, "global/instanceTemplates/agents")
	require.NoError(t, err)
	assert.Equal(t, "operation-1", op.GetName())
	assert.Equal(t, "global/instanceTemplates/agents", insertedTemplate)

	op, err = w.DeleteInstance(ctx, "test-project", "us-west1-a", "vm")
	require.NoError(t, err)
	assert.Equal(t, "operation-2", op.GetName())

	op, err = w.SetMetadata(ctx, "test-project", "us-west1-a", "vm", &computepb.Metadata{Fingerprint: proto.String("abc")})
	require.NoError(t, err)
	assert.Equal(t, "operation-3", op.GetName())
}

func TestWrapperOperations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /compute/v1/projects/test-project/zones/us-west1-a/operations/operation-1", respond(`{"name":"operation-1","status":"RUNNING"}`))
	mux.HandleFunc("POST /compute/v1/projects/test-project/zones/us-west1-a/operations/operation-1/wait", respond(`{"name":"operation-1","status":"DONE"}`))
	mux.HandleFunc("GET /compute/v1/projects/test-project/global/operations/operation-2", respond(`{"name":"operation-2","status":"PENDING"}`))
	mux.HandleFunc("POST /compute/v1/projects/test-project/global/operations/operation-2/wait", respond(`{"name":"operation-2","status":"DONE","error":{"errors":[{"code":"RESOURCE_ALREADY_EXISTS","message":"exists"}]}}`))
	w := newTestWrapper(t, mux)
	ctx := context.Background()

	op, err := w.GetOperation(ctx, "test-project", "us-west1-a", "operation-1")
	require.NoError(t, err)
	assert.Equal(t, computepb.Operation_RUNNING, op.GetStatus())

	op, err = w.WaitOperation(ctx, "test-project", "us-west1-a", "operation-1")
	require.NoError(t, err)
	assert.Equal(t, computepb.Operation_DONE, op.GetStatus())

	op, err = w.GetOperation(ctx, "test-project", "", "operation-2")
	require.NoError(t, err)
	assert.Equal(t, computepb.Operation_PENDING, op.GetStatus())

	op, err = w.WaitOperation(ctx, "test-project", "", "operation-2")
	require.NoError(t, err)
	require.Len(t, op.GetError().GetErrors(), 1)
	assert.Equal(t, "RESOURCE_ALREADY_EXISTS", op.GetError().GetErrors()[0].GetCode())
}

func TestWrapperGetGuestAttributes(t *testing.T) {
	var queryPath string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /compute/v1/projects/test-project/zones/us-west1-a/instances/1234/getGuestAttributes", func(rw http.ResponseWriter, r *http.Request) {
		queryPath = r.URL.Query().Get("queryPath")
		respond(fmt.Sprintf(`{"queryPath":%q,"queryValue":{"items":[
			{"namespace":"hostkeys","key":"ssh-rsa","value":"AAAA"},
			{"namespace":"hostkeys","key":"ssh-ed25519","value":"BBBB"}
		]}}`, queryPath))(rw, r)
	})
	w := newTestWrapper(t, mux)

	result, err := w.GetGuestAttributes(context.Background(), "test-project",
		"https://www.googleapis.com/compute/v1/projects/test-project/zones/us-west1-a", "1234", "hostkeys%2F")
	require.NoError(t, err)
	assert.Equal(t, "hostkeys/", queryPath)
	assert.Equal(t, "hostkeys/", result.QueryPath)
	require.NotNil(t, result.QueryValue)
	assert.Equal(t, []client.GuestAttribute{
		{Namespace: "hostkeys", Key: "ssh-rsa", Value: "AAAA"},
		{Namespace: "hostkeys", Key: "ssh-ed25519", Value: "BBBB"},
	}, result.QueryValue.Items)
}

func TestWrapperGetGuestAttributesRequiresZone(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(rw http.ResponseWriter, _ *http.Request) {
		calls++
		rw.WriteHeader(http.StatusBadRequest)
	})
	w := newTestWrapper(t, mux)

	for _, zoneLink := range []string{"", "/"} {
		_, err := w.GetGuestAttributes(context.Background(), "test-project", zoneLink, "1234", "hostkeys/")
		assert.ErrorIs(t, err, ErrZoneRequired)
	}
	assert.Zero(t, calls)
}

func TestWrapperRecordsErrorStatus(t *testing.T) {
	metrics.APIRequestsTotal.Reset()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /compute/v1/projects/test-project/global/instanceTemplates/missing", func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(rw, notFoundBody)
	})
	w := newTestWrapper(t, mux)

	_, err := w.GetInstanceTemplate(context.Background(), "test-project", "missing")
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("get_instance_template", "not_found")))
}

func TestToQueryResult(t *testing.T) {
	result := toQueryResult(&computepb.GuestAttributes{QueryPath: proto.String("ns/")})
	assert.Equal(t, "ns/", result.QueryPath)
	assert.Nil(t, result.QueryValue)

	result = toQueryResult(nil)
	assert.Empty(t, result.QueryPath)
}

func TestCollectStopsOnError(t *testing.T) {
	it := &sliceIterator{items: []string{"a", "b"}, err: errors.New("page failed")}
	items, err := collect[string](it)
	assert.EqualError(t, err, "page failed")
	assert.Nil(t, items)
}

type sliceIterator struct {
	items []string
	err   error
}

func (s *sliceIterator) Next() (string, error) {
	if len(s.items) == 0 {
		return "", s.err
	}
	item := s.items[0]
	s.items = s.items[1:]
	return item, nil
}
