package ports

import (
	"fmt"

	"github.com/aretw0/guts/pkg/schema"
	"github.com/aretw0/guts/pkg/yamlcodec"
)

// EncodeDocument renders a record in the text form adapters persist.
func EncodeDocument(obj *schema.Object) ([]byte, error) {
	if obj == nil {
		return nil, fmt.Errorf("%w: nil record", schema.ErrArgument)
	}
	data, err := yamlcodec.Dump(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// DecodeDocument parses a persisted record with kinds from reg and
// validates it with regularization.
func DecodeDocument(data []byte, reg *schema.Registry) (*schema.Object, error) {
	obj, err := yamlcodec.LoadObject(data, yamlcodec.WithRegistry(reg))
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if err := obj.Validate(schema.Regularize()); err != nil {
		return nil, err
	}
	return obj, nil
}
