// Package vrs holds the GA4GH Variation Representation Specification types
// used by phenopacket variant interpretations.
package vrs

import "github.com/danmuck/phenopackets/pkg/registry"

const (
	Package = "org.ga4gh.vrs.v1"
	source  = "ga4gh/vrs/v1/vrs.proto"
)

func name(s string) string { return registry.FullName(Package, s) }

var (
	VariationDesc = registry.NewMessageDescriptor(Package, "Variation", source,
		registry.MessageField("allele", 1, name("Allele")).Oneof("variation"),
		registry.MessageField("text", 4, name("Text")).Oneof("variation"),
	)
	AlleleDesc = registry.NewMessageDescriptor(Package, "Allele", source,
		registry.Field("_id", 1, registry.KindString),
		registry.Field("curie", 2, registry.KindString).Oneof("location"),
		registry.MessageField("sequence_location", 4, name("SequenceLocation")).Oneof("location"),
		registry.MessageField("sequence_state", 5, name("SequenceState")).Oneof("state"),
		registry.MessageField("literal_sequence_expression", 6, name("LiteralSequenceExpression")).Oneof("state"),
	)
	SequenceLocationDesc = registry.NewMessageDescriptor(Package, "SequenceLocation", source,
		registry.Field("_id", 1, registry.KindString),
		registry.Field("sequence_id", 2, registry.KindString),
		registry.MessageField("sequence_interval", 3, name("SequenceInterval")).Oneof("interval"),
		registry.MessageField("simple_interval", 4, name("SimpleInterval")).Oneof("interval"),
	)
	SequenceIntervalDesc = registry.NewMessageDescriptor(Package, "SequenceInterval", source,
		registry.MessageField("start_number", 1, name("Number")).Oneof("start"),
		registry.MessageField("start_indefinite_range", 2, name("IndefiniteRange")).Oneof("start"),
		registry.MessageField("start_definite_range", 3, name("DefiniteRange")).Oneof("start"),
		registry.MessageField("end_number", 4, name("Number")).Oneof("end"),
		registry.MessageField("end_indefinite_range", 5, name("IndefiniteRange")).Oneof("end"),
		registry.MessageField("end_definite_range", 6, name("DefiniteRange")).Oneof("end"),
	)
	SimpleIntervalDesc = registry.NewMessageDescriptor(Package, "SimpleInterval", source,
		registry.Field("start", 1, registry.KindUint64),
		registry.Field("end", 2, registry.KindUint64),
	)
	NumberDesc = registry.NewMessageDescriptor(Package, "Number", source,
		registry.Field("value", 1, registry.KindUint64),
	)
	IndefiniteRangeDesc = registry.NewMessageDescriptor(Package, "IndefiniteRange", source,
		registry.Field("value", 1, registry.KindUint64),
		registry.Field("comparator", 2, registry.KindString),
	)
	DefiniteRangeDesc = registry.NewMessageDescriptor(Package, "DefiniteRange", source,
		registry.Field("min", 1, registry.KindUint64),
		registry.Field("max", 2, registry.KindUint64),
	)
	TextDesc = registry.NewMessageDescriptor(Package, "Text", source,
		registry.Field("_id", 1, registry.KindString),
		registry.Field("definition", 2, registry.KindString),
	)
	LiteralSequenceExpressionDesc = registry.NewMessageDescriptor(Package, "LiteralSequenceExpression", source,
		registry.Field("sequence", 1, registry.KindString),
	)
	SequenceStateDesc = registry.NewMessageDescriptor(Package, "SequenceState", source,
		registry.Field("sequence", 1, registry.KindString),
	)
)

// Messages lists every VRS message descriptor.
func Messages() []*registry.MessageDescriptor {
	return []*registry.MessageDescriptor{
		VariationDesc,
		AlleleDesc,
		SequenceLocationDesc,
		SequenceIntervalDesc,
		SimpleIntervalDesc,
		NumberDesc,
		IndefiniteRangeDesc,
		DefiniteRangeDesc,
		TextDesc,
		LiteralSequenceExpressionDesc,
		SequenceStateDesc,
	}
}

// Register adds the VRS types to r.
func Register(r *registry.Registry) error {
	for _, d := range Messages() {
		if err := r.RegisterMessage(d); err != nil {
			return err
		}
	}
	return nil
}
