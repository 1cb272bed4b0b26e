package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordfix/pkg/dictionary"
)

// BuildCollection creates one dictionary per configured word list, in
// order. resolvePath maps configured paths to file system paths; nil keeps
// them as written. Nothing is loaded yet.
func (c *Config) BuildCollection(resolvePath func(string) string) (*dictionary.Collection, error) {
	opts, err := c.Engine.Options()
	if err != nil {
		return nil, err
	}
	members := make([]*dictionary.Dictionary, 0, len(c.Dictionaries))
	for _, dc := range c.Dictionaries {
		path := dc.Path
		if resolvePath != nil {
			path = resolvePath(path)
		}
		res := dictionary.NewFileResource(path)

		dopts := opts
		dopts.Encoding, err = dictionary.ResolveEncoding(c.Engine.EncodingLabel(dc), res)
		if err != nil {
			return nil, fmt.Errorf("word list %s: %w", dc.Path, err)
		}

		var d *dictionary.Dictionary
		if dc.Writable {
			d, err = dictionary.NewPersistent(dc.Path, res, dopts)
		} else {
			d, err = dictionary.New(dc.Path, res, dopts)
		}
		if err != nil {
			return nil, err
		}
		log.Debugf("Configured dictionary %s (%s, writable=%t)", dc.Path, path, dc.Writable)
		members = append(members, d)
	}
	return dictionary.NewCollection(members...), nil
}
