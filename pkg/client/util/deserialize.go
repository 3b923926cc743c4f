package util

import (
	"os"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/yaml"
)

// BindJsonOrYaml decodes a JSON or YAML file into obj using obj's json tags.
func BindJsonOrYaml(filePath string, obj interface{}) error {
	reader, err := os.Open(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed opening file %s", filePath)
	}
	defer reader.Close()
	if err := yaml.NewYAMLOrJSONDecoder(reader, 128).Decode(obj); err != nil {
		return errors.Wrapf(err, "failed to parse file %s", filePath)
	}
	return nil
}
