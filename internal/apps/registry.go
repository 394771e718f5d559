package apps

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]App)
	mu       sync.RWMutex
)

func Register(app App) {
	mu.Lock()
	defer mu.Unlock()
	registry[app.Name()] = app
}

func Get(name string) (App, error) {
	mu.RLock()
	defer mu.RUnlock()
	a, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("app %q not registered", name)
	}
	return a, nil
}

func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns registered apps in name order.
func All() []App {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]App, 0, len(registry))
	for _, a := range registry {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
