// Package phenopackets is the flat, unversioned surface of the schema. Every
// type is an alias of its versioned definition, so values move freely
// between this package and pkg/phenopackets/schema/v2 or pkg/ga4gh/...
package phenopackets
