package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, nil)
	client.SetCredentials("guest", "guest")
	return client, server
}

func TestUnauthenticatedWithoutCredentials(t *testing.T) {
	client := NewClient("http://localhost:15672", nil)

	_, err := client.ListQueues(context.Background(), "/")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	client.SetCredentials("guest", "guest")
	client.ClearCredentials()

	_, err = client.ListVhosts(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUnauthorizedMapsTo401(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.ListQueues(context.Background(), "/")

	var unauthorized *UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestNotFoundPropagated(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetQueue(context.Background(), "/", "missing")
	assert.True(t, IsNotFound(err))

	err = client.DeleteExchange(context.Background(), "/", "missing")
	assert.True(t, IsNotFound(err))
}

func TestRequestErrorCarriesStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.ListExchanges(context.Background(), "/")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.Status)
}

func TestMalformedResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not json"))
	}))

	_, err := client.ListQueues(context.Background(), "/")

	var malformed *MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestBasicAuthAndVhostEscaping(t *testing.T) {
	var gotPath, gotUser, gotPass string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotUser, gotPass, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"q1","vhost":"/"}`))
	}))

	_, err := client.GetQueue(context.Background(), "/", "q1")
	require.NoError(t, err)

	assert.Equal(t, "/api/queues/%2F/q1", gotPath)
	assert.Equal(t, "guest", gotUser)
	assert.Equal(t, "guest", gotPass)
}

func TestCreateBindingPaths(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.EscapedPath())
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.CreateBinding(context.Background(), "/", "src", "dest", BindingOptions{RoutingKey: "rk"})
	require.NoError(t, err)
	err = client.CreateBinding(context.Background(), "/", "src", "other", BindingOptions{DestinationKind: "exchange"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /api/bindings/%2F/e/src/q/dest",
		"POST /api/bindings/%2F/e/src/e/other",
	}, paths)
}

func TestPurgeQueuePathAndNotFound(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.PurgeQueue(context.Background(), "/", "orders.work")
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE /api/queues/%2F/orders.work/contents"}, paths)
}

func TestPurgeMissingQueuePropagatesNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.PurgeQueue(context.Background(), "/", "ghost")
	assert.True(t, IsNotFound(err))
}

func TestVhostListIsCached(t *testing.T) {
	var fetches atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"/"},{"name":"staging"}]`))
	}))

	for i := 0; i < 3; i++ {
		vhosts, err := client.ListVhosts(context.Background())
		require.NoError(t, err)
		assert.Len(t, vhosts, 2)
	}

	assert.Equal(t, int32(1), fetches.Load())
}

func TestVhostCacheInvalidatedByCredentialChange(t *testing.T) {
	var fetches atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"/"}]`))
	}))

	_, err := client.ListVhosts(context.Background())
	require.NoError(t, err)

	client.SetCredentials("other", "other")

	_, err = client.ListVhosts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), fetches.Load())
}

func TestCredentialChangeMidFetchDoesNotPinStaleVhosts(t *testing.T) {
	release := make(chan struct{})
	var slowedFirst atomic.Bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slowedFirst.CompareAndSwap(false, true) {
			<-release
		}
		user, _, _ := r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `[{"name":"vhost-of-%s"}]`, user)
	}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = client.ListVhosts(context.Background())
	}()

	// Replace the credentials while the first fetch is still in flight. Its
	// result must not land in the cache.
	time.Sleep(50 * time.Millisecond)
	client.SetCredentials("next", "next")
	close(release)
	wg.Wait()

	vhosts, err := client.ListVhosts(context.Background())
	require.NoError(t, err)
	require.Len(t, vhosts, 1)
	assert.Equal(t, "vhost-of-next", vhosts[0].Name)
}

func TestConcurrentVhostFetchesCoalesce(t *testing.T) {
	var fetches atomic.Int32
	release := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"/"}]`))
	}))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vhosts, err := client.ListVhosts(context.Background())
			assert.NoError(t, err)
			assert.Len(t, vhosts, 1)
		}()
	}

	// Let all callers pile onto the in-flight fetch before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), fetches.Load())
}

func TestFailedVhostFetchIsNotCached(t *testing.T) {
	var fetches atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fetches.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"/"}]`))
	}))

	_, err := client.ListVhosts(context.Background())
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))

	vhosts, err := client.ListVhosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, vhosts, 1)
	assert.Equal(t, int32(2), fetches.Load())
}

func TestQueueListsAreNeverCached(t *testing.T) {
	var fetches atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	for i := 0; i < 3; i++ {
		_, err := client.ListQueues(context.Background(), "/")
		require.NoError(t, err)
	}

	assert.Equal(t, int32(3), fetches.Load())
}
