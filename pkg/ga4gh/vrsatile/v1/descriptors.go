// Package vrsatile holds the GA4GH VRSATILE value-object descriptors that
// wrap VRS variations with human-facing context.
package vrsatile

import (
	vrs "github.com/danmuck/phenopackets/pkg/ga4gh/vrs/v1"
	"github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2/base"
	"github.com/danmuck/phenopackets/pkg/registry"
)

const (
	Package = "org.ga4gh.vrsatile.v1"
	source  = "ga4gh/vrsatile/v1/vrsatile.proto"
)

func name(s string) string { return registry.FullName(Package, s) }

var (
	MoleculeContextDesc = registry.NewEnumDescriptor(Package, "MoleculeContext", source,
		registry.EnumValue{Name: "unspecified_molecule_context", Number: 0},
		registry.EnumValue{Name: "genomic", Number: 1},
		registry.EnumValue{Name: "transcript", Number: 2},
		registry.EnumValue{Name: "protein", Number: 3},
	)

	ExtensionDesc = registry.NewMessageDescriptor(Package, "Extension", source,
		registry.Field("name", 1, registry.KindString),
		registry.Field("value", 2, registry.KindString),
	)
	ExpressionDesc = registry.NewMessageDescriptor(Package, "Expression", source,
		registry.Field("syntax", 1, registry.KindString),
		registry.Field("value", 2, registry.KindString),
		registry.Field("version", 3, registry.KindString),
	)
	VcfRecordDesc = registry.NewMessageDescriptor(Package, "VcfRecord", source,
		registry.Field("genome_assembly", 1, registry.KindString),
		registry.Field("chrom", 2, registry.KindString),
		registry.Field("pos", 3, registry.KindUint64),
		registry.Field("id", 4, registry.KindString),
		registry.Field("ref", 5, registry.KindString),
		registry.Field("alt", 6, registry.KindString),
		registry.Field("qual", 7, registry.KindString),
		registry.Field("filter", 8, registry.KindString),
		registry.Field("info", 9, registry.KindString),
	)
	GeneDescriptorDesc = registry.NewMessageDescriptor(Package, "GeneDescriptor", source,
		registry.Field("value_id", 1, registry.KindString),
		registry.Field("symbol", 2, registry.KindString),
		registry.Field("description", 3, registry.KindString),
		registry.Field("alternate_ids", 4, registry.KindString).Repeated(),
		registry.Field("alternate_symbols", 5, registry.KindString).Repeated(),
		registry.Field("xrefs", 6, registry.KindString).Repeated(),
	)
	VariationDescriptorDesc = registry.NewMessageDescriptor(Package, "VariationDescriptor", source,
		registry.Field("id", 1, registry.KindString),
		registry.MessageField("variation", 2, registry.FullName(vrs.Package, "Variation")),
		registry.Field("label", 3, registry.KindString),
		registry.Field("description", 4, registry.KindString),
		registry.MessageField("gene_context", 5, name("GeneDescriptor")),
		registry.MessageField("expressions", 6, name("Expression")).Repeated(),
		registry.MessageField("vcf_record", 7, name("VcfRecord")),
		registry.Field("xrefs", 8, registry.KindString).Repeated(),
		registry.Field("alternate_labels", 9, registry.KindString).Repeated(),
		registry.MessageField("extensions", 10, name("Extension")).Repeated(),
		registry.EnumField("molecule_context", 11, name("MoleculeContext")),
		registry.MessageField("structural_type", 12, base.OntologyClassName),
		registry.Field("vrs_ref_allele_seq", 13, registry.KindString),
		registry.MessageField("allelic_state", 14, base.OntologyClassName),
	)
)

func Messages() []*registry.MessageDescriptor {
	return []*registry.MessageDescriptor{
		ExtensionDesc,
		ExpressionDesc,
		VcfRecordDesc,
		GeneDescriptorDesc,
		VariationDescriptorDesc,
	}
}

func Enums() []*registry.EnumDescriptor {
	return []*registry.EnumDescriptor{MoleculeContextDesc}
}

// Register adds the VRSATILE types to r. The VRS types and the phenopacket
// OntologyClass they reference must be registered before the registry is
// frozen.
func Register(r *registry.Registry) error {
	for _, d := range Enums() {
		if err := r.RegisterEnum(d); err != nil {
			return err
		}
	}
	for _, d := range Messages() {
		if err := r.RegisterMessage(d); err != nil {
			return err
		}
	}
	return nil
}
