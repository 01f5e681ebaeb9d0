package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopExplainHooks{}
	e.OnLoadComplete(ctx, 6, time.Millisecond, nil)
	e.OnExplainStart(ctx, "json")
	e.OnExplainComplete(ctx, "json", 6, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "explain")
	c.OnCacheMiss(ctx, "explain")
	c.OnCacheSet(ctx, "explain", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/explain")
	h.OnResponse(ctx, "POST", "/v1/explain", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Explain().(NoopExplainHooks); !ok {
		t.Error("Explain() should return NoopExplainHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customExplain := &testExplainHooks{}
	SetExplainHooks(customExplain)
	if Explain() != customExplain {
		t.Error("SetExplainHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Explain().(NoopExplainHooks); !ok {
		t.Error("Reset() should restore NoopExplainHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testExplainHooks{}
	SetExplainHooks(custom)
	SetExplainHooks(nil)

	if Explain() != custom {
		t.Error("SetExplainHooks(nil) should be ignored")
	}
}

type testExplainHooks struct{ NoopExplainHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
