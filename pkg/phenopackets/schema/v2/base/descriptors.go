// Package base holds the building blocks every other phenopacket type is
// made of: ontology terms, time elements, evidence and files. It lives in
// the org.phenopackets.schema.v2.core namespace.
package base

import "github.com/danmuck/phenopackets/pkg/registry"

const (
	Package = "org.phenopackets.schema.v2.core"
	source  = "phenopackets/schema/v2/core/base.proto"

	OntologyClassName = Package + ".OntologyClass"
)

func name(s string) string { return registry.FullName(Package, s) }

var (
	OntologyClassDesc = registry.NewMessageDescriptor(Package, "OntologyClass", source,
		registry.Field("id", 1, registry.KindString),
		registry.Field("label", 2, registry.KindString),
	)
	ExternalReferenceDesc = registry.NewMessageDescriptor(Package, "ExternalReference", source,
		registry.Field("id", 1, registry.KindString),
		registry.Field("reference", 2, registry.KindString),
		registry.Field("description", 3, registry.KindString),
	)
	EvidenceDesc = registry.NewMessageDescriptor(Package, "Evidence", source,
		registry.MessageField("evidence_code", 1, OntologyClassName),
		registry.MessageField("reference", 2, name("ExternalReference")),
	)
	ProcedureDesc = registry.NewMessageDescriptor(Package, "Procedure", source,
		registry.MessageField("code", 1, OntologyClassName),
		registry.MessageField("body_site", 2, OntologyClassName),
		registry.MessageField("performed", 3, name("TimeElement")),
	)
	GestationalAgeDesc = registry.NewMessageDescriptor(Package, "GestationalAge", source,
		registry.Field("weeks", 1, registry.KindInt32),
		registry.Field("days", 2, registry.KindInt32),
	)
	AgeDesc = registry.NewMessageDescriptor(Package, "Age", source,
		registry.Field("iso8601duration", 1, registry.KindString),
	)
	AgeRangeDesc = registry.NewMessageDescriptor(Package, "AgeRange", source,
		registry.MessageField("start", 1, name("Age")),
		registry.MessageField("end", 2, name("Age")),
	)
	TimeIntervalDesc = registry.NewMessageDescriptor(Package, "TimeInterval", source,
		registry.MessageField("start", 1, registry.TimestampName),
		registry.MessageField("end", 2, registry.TimestampName),
	)
	TimeElementDesc = registry.NewMessageDescriptor(Package, "TimeElement", source,
		registry.MessageField("age", 1, name("Age")).Oneof("element"),
		registry.MessageField("age_range", 2, name("AgeRange")).Oneof("element"),
		registry.MessageField("ontology_class", 3, OntologyClassName).Oneof("element"),
		registry.MessageField("timestamp", 4, registry.TimestampName).Oneof("element"),
		registry.MessageField("interval", 5, name("TimeInterval")).Oneof("element"),
		registry.MessageField("gestational_age", 6, name("GestationalAge")).Oneof("element"),
	)
	FileDesc = registry.NewMessageDescriptor(Package, "File", source,
		registry.Field("uri", 1, registry.KindString),
		registry.MapField("individual_to_file_identifiers", 2, registry.KindString),
		registry.MapField("file_attributes", 3, registry.KindString),
	)
)

func Messages() []*registry.MessageDescriptor {
	return []*registry.MessageDescriptor{
		OntologyClassDesc,
		ExternalReferenceDesc,
		EvidenceDesc,
		ProcedureDesc,
		GestationalAgeDesc,
		AgeDesc,
		AgeRangeDesc,
		TimeIntervalDesc,
		TimeElementDesc,
		FileDesc,
	}
}

func Register(r *registry.Registry) error {
	for _, d := range Messages() {
		if err := r.RegisterMessage(d); err != nil {
			return err
		}
	}
	return nil
}
