package filter

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/catalog"
)

// catalogFile is the on-disk layout:
//
//	entities:
//	  business:
//	    - key: owner.name
//	      label: Owner
//	      type: text
type catalogFile struct {
	Entities map[string][]catalog.FieldDefinition `yaml:"entities" validate:"required,min=1,dive,keys,required,endkeys,min=1"`
}

var validate = validator.New()

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (catalog.Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	if err := validate.Struct(file); err != nil {
		return nil, errors.Wrap(err, "catalog layout")
	}
	c := catalog.Catalog(file.Entities)
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "catalog fields")
	}
	return c, nil
}

// LoadCatalog reads a YAML catalog file and merges it over base. Entities
// in the file replace base entities of the same name.
func LoadCatalog(path string, base catalog.Catalog) (catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	loaded, err := ParseCatalog(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load catalog %s", path)
	}
	return base.Merge(loaded), nil
}
