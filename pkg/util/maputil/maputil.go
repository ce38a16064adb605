package maputil

import (
	"github.com/pkg/errors"
)

// StringifyKeys converts a document decoded by yaml.v2, whose maps are
// map[interface{}]interface{}, into one that encoding/json and gojsonschema
// can consume.
func StringifyKeys(m interface{}) (map[string]interface{}, error) {
	mm, err := stringifyKeys(m)
	if err != nil {
		return nil, err
	}
	if mm == nil {
		return map[string]interface{}{}, nil
	}
	if ms, ok := mm.(map[string]interface{}); ok {
		return ms, nil
	}
	return nil, errors.Errorf("expected a mapping at the top level, got %T", mm)
}

func stringifyKeys(m interface{}) (interface{}, error) {
	switch src := m.(type) {
	case map[string]interface{}:
		dst := map[string]interface{}{}
		for k, v1 := range src {
			v2, err := stringifyKeys(v1)
			if err != nil {
				return nil, err
			}
			dst[k] = v2
		}
		return dst, nil
	case []interface{}:
		dst := make([]interface{}, len(src))
		for i, v1 := range src {
			v2, err := stringifyKeys(v1)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			dst[i] = v2
		}
		return dst, nil
	case map[interface{}]interface{}:
		dst := map[string]interface{}{}
		for k1, v1 := range src {
			k2, ok := k1.(string)
			if !ok {
				return nil, errors.Errorf("unexpected type of key \"%v\": %T", k1, k1)
			}
			v2, err := stringifyKeys(v1)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", k2)
			}
			dst[k2] = v2
		}
		return dst, nil
	}
	return m, nil
}
