package factory

import (
	"strings"
	"testing"
)

type fakeStore struct{ path string }

func newFakeStore(conf map[string]any) (*fakeStore, error) {
	var c struct {
		Path string `json:"path"`
	}
	if err := Decode(conf, &c); err != nil {
		return nil, err
	}
	return &fakeStore{path: c.Path}, nil
}

func TestRegistryCreateDecodesConf(t *testing.T) {
	reg := NewRegistry[*fakeStore]()
	if err := reg.Register("fake", newFakeStore); err != nil {
		t.Fatalf("register: %v", err)
	}
	st, err := reg.Create(ModuleConfig{Type: "fake", Conf: map[string]any{"path": "runs.db"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if st.path != "runs.db" {
		t.Fatalf("path = %q, want runs.db", st.path)
	}
}

func TestRegistryRejectsBadRegistrations(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("", func(map[string]any) (int, error) { return 0, nil }); err == nil {
		t.Fatal("expected empty name error")
	}
	if err := reg.Register("one", nil); err == nil {
		t.Fatal("expected nil factory error")
	}
	if err := reg.Register("one", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("one", func(map[string]any) (int, error) { return 2, nil }); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestRegistryUnknownType(t *testing.T) {
	reg := NewRegistry[int]()
	for _, n := range []string{"b", "a"} {
		if err := reg.Register(n, func(map[string]any) (int, error) { return 0, nil }); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}
	if got := reg.Names(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("names = %v", got)
	}
	_, err := reg.Create(ModuleConfig{Type: "c"})
	if err == nil || !strings.Contains(err.Error(), "a, b") {
		t.Fatalf("err = %v, want the registered names listed", err)
	}
	if _, err := reg.Create(ModuleConfig{}); err == nil {
		t.Fatal("expected missing type error")
	}
}

func TestDecodeWeakTyping(t *testing.T) {
	var c struct {
		Port int  `json:"port"`
		On   bool `json:"on"`
	}
	// JSON-parsed settings carry numbers as float64.
	if err := Decode(map[string]any{"port": float64(9090), "on": "true"}, &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Port != 9090 || !c.On {
		t.Fatalf("decoded %+v", c)
	}
}
