package vrsatile

import (
	"github.com/danmuck/phenopackets/pkg/dynamic"
	vrs "github.com/danmuck/phenopackets/pkg/ga4gh/vrs/v1"
	"github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2/base"
	"github.com/danmuck/phenopackets/pkg/registry"
)

type MoleculeContext int32

const (
	UnspecifiedMoleculeContext MoleculeContext = 0
	Genomic                    MoleculeContext = 1
	Transcript                 MoleculeContext = 2
	Protein                    MoleculeContext = 3
)

func (c MoleculeContext) String() string { return MoleculeContextDesc.String(int32(c)) }

type Extension struct {
	Name  string
	Value string
}

func (*Extension) Descriptor() *registry.MessageDescriptor { return ExtensionDesc }

func (x *Extension) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(ExtensionDesc).String("name", x.Name).String("value", x.Value).Done()
}

func (x *Extension) FromMessage(m *dynamic.Message) {
	x.Name = m.GetString("name")
	x.Value = m.GetString("value")
}

// Expression is a variation written in some syntax, e.g. HGVS or SPDI.
type Expression struct {
	Syntax  string
	Value   string
	Version string
}

func (*Expression) Descriptor() *registry.MessageDescriptor { return ExpressionDesc }

func (x *Expression) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(ExpressionDesc).
		String("syntax", x.Syntax).
		String("value", x.Value).
		String("version", x.Version).
		Done()
}

func (x *Expression) FromMessage(m *dynamic.Message) {
	x.Syntax = m.GetString("syntax")
	x.Value = m.GetString("value")
	x.Version = m.GetString("version")
}

type VcfRecord struct {
	GenomeAssembly string
	Chrom          string
	Pos            uint64
	ID             string
	Ref            string
	Alt            string
	Qual           string
	Filter         string
	Info           string
}

func (*VcfRecord) Descriptor() *registry.MessageDescriptor { return VcfRecordDesc }

func (x *VcfRecord) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(VcfRecordDesc).
		String("genome_assembly", x.GenomeAssembly).
		String("chrom", x.Chrom).
		Uint("pos", x.Pos).
		String("id", x.ID).
		String("ref", x.Ref).
		String("alt", x.Alt).
		String("qual", x.Qual).
		String("filter", x.Filter).
		String("info", x.Info).
		Done()
}

func (x *VcfRecord) FromMessage(m *dynamic.Message) {
	x.GenomeAssembly = m.GetString("genome_assembly")
	x.Chrom = m.GetString("chrom")
	x.Pos = m.GetUint("pos")
	x.ID = m.GetString("id")
	x.Ref = m.GetString("ref")
	x.Alt = m.GetString("alt")
	x.Qual = m.GetString("qual")
	x.Filter = m.GetString("filter")
	x.Info = m.GetString("info")
}

type GeneDescriptor struct {
	ValueID          string
	Symbol           string
	Description      string
	AlternateIDs     []string
	AlternateSymbols []string
	Xrefs            []string
}

func (*GeneDescriptor) Descriptor() *registry.MessageDescriptor { return GeneDescriptorDesc }

func (x *GeneDescriptor) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(GeneDescriptorDesc).
		String("value_id", x.ValueID).
		String("symbol", x.Symbol).
		String("description", x.Description).
		Strings("alternate_ids", x.AlternateIDs).
		Strings("alternate_symbols", x.AlternateSymbols).
		Strings("xrefs", x.Xrefs).
		Done()
}

func (x *GeneDescriptor) FromMessage(m *dynamic.Message) {
	x.ValueID = m.GetString("value_id")
	x.Symbol = m.GetString("symbol")
	x.Description = m.GetString("description")
	x.AlternateIDs = m.GetStrings("alternate_ids")
	x.AlternateSymbols = m.GetStrings("alternate_symbols")
	x.Xrefs = m.GetStrings("xrefs")
}

// VariationDescriptor wraps a VRS variation with labels, expressions, gene
// context and zygosity.
type VariationDescriptor struct {
	ID              string
	Variation       *vrs.Variation
	Label           string
	Description     string
	GeneContext     *GeneDescriptor
	Expressions     []*Expression
	VcfRecord       *VcfRecord
	Xrefs           []string
	AlternateLabels []string
	Extensions      []*Extension
	MoleculeContext MoleculeContext
	StructuralType  *base.OntologyClass
	VrsRefAlleleSeq string
	AllelicState    *base.OntologyClass
}

func (*VariationDescriptor) Descriptor() *registry.MessageDescriptor { return VariationDescriptorDesc }

func (x *VariationDescriptor) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(VariationDescriptorDesc).
		String("id", x.ID).
		Message("variation", x.Variation.ToMessage()).
		String("label", x.Label).
		String("description", x.Description).
		Message("gene_context", x.GeneContext.ToMessage()).
		Messages("expressions", dynamic.ToMessages(x.Expressions)).
		Message("vcf_record", x.VcfRecord.ToMessage()).
		Strings("xrefs", x.Xrefs).
		Strings("alternate_labels", x.AlternateLabels).
		Messages("extensions", dynamic.ToMessages(x.Extensions)).
		Enum("molecule_context", int32(x.MoleculeContext)).
		Message("structural_type", x.StructuralType.ToMessage()).
		String("vrs_ref_allele_seq", x.VrsRefAlleleSeq).
		Message("allelic_state", x.AllelicState.ToMessage()).
		Done()
}

func (x *VariationDescriptor) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("id")
	x.Variation = dynamic.Load[vrs.Variation](m.GetMessage("variation"))
	x.Label = m.GetString("label")
	x.Description = m.GetString("description")
	x.GeneContext = dynamic.Load[GeneDescriptor](m.GetMessage("gene_context"))
	x.Expressions = dynamic.LoadAll[Expression](m.GetMessages("expressions"))
	x.VcfRecord = dynamic.Load[VcfRecord](m.GetMessage("vcf_record"))
	x.Xrefs = m.GetStrings("xrefs")
	x.AlternateLabels = m.GetStrings("alternate_labels")
	x.Extensions = dynamic.LoadAll[Extension](m.GetMessages("extensions"))
	x.MoleculeContext = MoleculeContext(m.GetEnum("molecule_context"))
	x.StructuralType = dynamic.Load[base.OntologyClass](m.GetMessage("structural_type"))
	x.VrsRefAlleleSeq = m.GetString("vrs_ref_allele_seq")
	x.AllelicState = dynamic.Load[base.OntologyClass](m.GetMessage("allelic_state"))
}
