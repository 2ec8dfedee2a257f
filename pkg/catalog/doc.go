// Package catalog holds the fixed lists behind the form: the city candidates
// offered by autocomplete and the three-tier city partition used by the
// derived-field calculator.
//
// The default catalog is embedded from data/catalog.yaml. Operators can
// replace it with their own YAML file of the same shape.
package catalog
