package sse

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/quotebook/pkg/logging"
)

func TestFrameWriteTo(t *testing.T) {
	var buf bytes.Buffer
	_, err := Frame{Name: "quotes.synced", ID: "run-1", Data: []byte(`{"added":1}`)}.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "event: quotes.synced\nid: run-1\ndata: {\"added\":1}\n\n", buf.String())

	buf.Reset()
	_, err = Frame{Data: []byte(`{}`)}.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "data: {}\n\n", buf.String())
}

func TestBroadcasterFanOut(t *testing.T) {
	b := NewBroadcaster(logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	a, _ := b.attach()
	c, n := b.attach()
	assert.Equal(t, 2, n)

	b.Broadcast(Frame{Name: "quote.added", Data: []byte(`{}`)})
	for _, ch := range []chan Frame{a, c} {
		select {
		case got := <-ch:
			assert.Equal(t, "quote.added", got.Name)
		case <-time.After(time.Second):
			t.Fatal("frame not delivered")
		}
	}

	assert.Equal(t, 1, b.detach(a))
	assert.Equal(t, 1, b.detach(a))

	cancel()
	<-done
	_, open := <-c
	assert.False(t, open)
	assert.Zero(t, b.ClientCount())

	late, _ := b.attach()
	assert.Nil(t, late)
}

func TestBroadcasterServeGreetsThenStreams(t *testing.T) {
	b := NewBroadcaster(logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	greeting := Frame{Name: "status", ID: "run-1", Data: []byte(`{"message":"Quotes synced successfully."}`)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.Serve(w, r, greeting)
	}))
	defer srv.Close()

	reqCtx, reqCancel := context.WithCancel(context.Background())
	defer reqCancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 16)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	next := func() string {
		select {
		case l := <-lines:
			return l
		case <-time.After(2 * time.Second):
			t.Fatal("no SSE line")
			return ""
		}
	}

	assert.Equal(t, "event: status", next())
	assert.Equal(t, "id: run-1", next())
	assert.Equal(t, `data: {"message":"Quotes synced successfully."}`, next())
	assert.Equal(t, "", next())

	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	b.Broadcast(Frame{Name: "quote.added", ID: "7", Data: []byte(`{"quote":{"text":"A","category":"B"}}`)})

	assert.Equal(t, "event: quote.added", next())
	assert.Equal(t, "id: 7", next())
	assert.Equal(t, `data: {"quote":{"text":"A","category":"B"}}`, next())
}

func TestBroadcasterHeartbeat(t *testing.T) {
	b := NewBroadcaster(logging.NewNopLogger())
	b.heartbeat = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	reqCtx, reqCancel := context.WithCancel(context.Background())
	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		b.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(reqCtx))
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	reqCancel()
	<-done
	assert.Contains(t, rec.Body.String(), ": keepalive\n\n")
}
