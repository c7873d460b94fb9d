// Package factory implements the plugin registry behind configurable
// components. An implementation registers a Factory under a type name and
// configuration picks one by name, handing the factory a raw settings map
// to decode into its own config struct.
//
//	reg := factory.NewRegistry[report.Store]()
//	reg.Register("sqlite", func(conf map[string]any) (report.Store, error) {
//	    var c struct {
//	        Path string `json:"path"`
//	    }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return store.NewSQLiteStore(c.Path)
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "sqlite", Conf: map[string]any{"path": "runs.db"}})
package factory
