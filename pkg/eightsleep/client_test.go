package eightsleep

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hostPort(t *testing.T, server *httptest.Server) (string, uint) {
	t.Helper()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return u.Hostname(), uint(port)
}

func statusStub(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	host, port := hostPort(t, server)
	return server, NewClient(host, port)
}

func TestFetchStoresSnapshot(t *testing.T) {
	assert := assert.New(t)

	server, client := statusStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/api/deviceStatus", r.URL.Path)
		fmt.Fprint(w, `{"left":{"currentTemperatureF":83},"isPriming":false}`)
	})
	defer server.Close()

	require.NoError(t, client.Start())
	defer client.Stop()

	require.NoError(t, client.Fetch(context.Background()))

	snap := client.Latest()
	assert.False(snap.IsEmpty())
	assert.False(snap.FetchedAt.IsZero())
	assert.Equal(float64(83), ResolveNumber(SideLeft, "current_temp_f", snap))
}

func TestHistoryCapAndOrdering(t *testing.T) {
	assert := assert.New(t)

	var counter int
	server, client := statusStub(t, func(w http.ResponseWriter, r *http.Request) {
		counter++
		fmt.Fprintf(w, `{"left":{"secondsRemaining":%d}}`, counter)
	})
	defer server.Close()

	require.NoError(t, client.Start())
	defer client.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, client.Fetch(context.Background()))
		assert.Len(client.History(), i+1)
	}

	// newest first: S3, S2, S1
	history := client.History()
	for i, want := range []float64{3, 2, 1} {
		assert.Equal(want, ResolveNumber(SideLeft, "seconds_remaining", history[i]))
	}

	for i := 0; i < 20; i++ {
		require.NoError(t, client.Fetch(context.Background()))
	}
	assert.Len(client.History(), 10)
	assert.Equal(float64(23), ResolveNumber(SideLeft, "seconds_remaining", client.Latest()))
}

func TestLatestOnFreshClient(t *testing.T) {
	client := NewClient("10.0.0.5", 8080)
	snap := client.Latest()
	assert.True(t, snap.IsEmpty())
	assert.NotNil(t, snap.Data)
	assert.Empty(t, client.History())
}

func TestFetchNon200LeavesHistoryUnchanged(t *testing.T) {
	assert := assert.New(t)

	var fail bool
	server, client := statusStub(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"sensorLabel":"abc"}`)
	})
	defer server.Close()

	require.NoError(t, client.Start())
	defer client.Stop()

	require.NoError(t, client.Fetch(context.Background()))
	before := client.Latest()

	fail = true
	assert.NoError(client.Fetch(context.Background()))
	assert.Len(client.History(), 1)
	assert.Equal(before.Data, client.Latest().Data)
}

func TestFetchBadJSONLeavesHistoryUnchanged(t *testing.T) {
	server, client := statusStub(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json at all`)
	})
	defer server.Close()

	require.NoError(t, client.Start())
	defer client.Stop()

	assert.NoError(t, client.Fetch(context.Background()))
	assert.Empty(t, client.History())
}

func TestFetchConnectionRefusedDoesNotRaise(t *testing.T) {
	// grab a port that is guaranteed to refuse connections
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := uint(l.Addr().(*net.TCPAddr).Port)
	require.NoError(t, l.Close())

	client := NewClient("127.0.0.1", port)
	require.NoError(t, client.Start())
	defer client.Stop()

	assert.NoError(t, client.Fetch(context.Background()))
	assert.Empty(t, client.History())
}

func TestFetchBeforeStartFailsFast(t *testing.T) {
	client := NewClient("10.0.0.5", 8080)
	assert.ErrorIs(t, client.Fetch(context.Background()), ErrNotStarted)
}

func TestStopIsIdempotentAndScoped(t *testing.T) {
	assert := assert.New(t)

	client := NewClient("10.0.0.5", 8080)
	require.NoError(t, client.Start())
	client.Stop()
	client.Stop()
	assert.ErrorIs(client.Fetch(context.Background()), ErrNotStarted)

	// a borrowed HTTP client survives Stop and the client can restart on it
	external := &http.Client{}
	borrowed := NewClient("10.0.0.5", 8080, WithHTTPClient(external))
	require.NoError(t, borrowed.Start())
	borrowed.Stop()
	require.NoError(t, borrowed.Start())
	assert.Equal(external, borrowed.httpClient)
}

func TestStartIsIdempotent(t *testing.T) {
	client := NewClient("10.0.0.5", 8080)
	require.NoError(t, client.Start())
	first := client.httpClient
	require.NoError(t, client.Start())
	assert.Equal(t, first, client.httpClient)
	client.Stop()
}

func TestFullScenario(t *testing.T) {
	assert := assert.New(t)

	server, client := statusStub(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"left":{"currentTemperatureF":83,"targetTemperatureF":90,"secondsRemaining":300,"isAlarmVibrating":true,"isOn":true},"right":{},"waterLevel":"true","isPriming":false,"sensorLabel":"abc"}`)
	})
	defer server.Close()

	require.NoError(t, client.Start())
	defer client.Stop()
	require.NoError(t, client.Fetch(context.Background()))

	snap := client.Latest()
	assert.Equal(float64(83), Resolve(SideLeft, "current_temp_f", snap))
	assert.Equal(true, Resolve(SideLeft, "is_on", snap))
	assert.Equal(false, Resolve(SideHub, "is_priming", snap))
	assert.Equal(true, Resolve(SideHub, "water_level", snap))
	assert.Equal(float64(0), Resolve(SideRight, "current_temp_f", snap))
	assert.Equal("abc", client.Info().SensorLabel)
}
