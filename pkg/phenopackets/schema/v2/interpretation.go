package v2

import (
	"github.com/danmuck/phenopackets/pkg/dynamic"
	vrsatile "github.com/danmuck/phenopackets/pkg/ga4gh/vrsatile/v1"
	"github.com/danmuck/phenopackets/pkg/registry"
)

// ProgressStatus is Interpretation.ProgressStatus.
type ProgressStatus int32

const (
	UnknownProgress ProgressStatus = iota
	InProgress
	Completed
	Solved
	Unsolved
)

func (s ProgressStatus) String() string { return ProgressStatusDesc.String(int32(s)) }

// InterpretationStatus is GenomicInterpretation.InterpretationStatus.
type InterpretationStatus int32

const (
	InterpretationUnknown InterpretationStatus = iota
	Rejected
	Candidate
	Contributory
	Causative
)

func (s InterpretationStatus) String() string { return InterpretationStatusDesc.String(int32(s)) }

type AcmgPathogenicityClassification int32

const (
	NotProvided AcmgPathogenicityClassification = iota
	Benign
	LikelyBenign
	UncertainSignificance
	LikelyPathogenic
	Pathogenic
)

func (c AcmgPathogenicityClassification) String() string {
	return AcmgPathogenicityClassificationDesc.String(int32(c))
}

type TherapeuticActionability int32

const (
	UnknownActionability TherapeuticActionability = iota
	NotActionable
	Actionable
)

func (a TherapeuticActionability) String() string { return TherapeuticActionabilityDesc.String(int32(a)) }

// Interpretation is the outcome of a diagnostic workup.
type Interpretation struct {
	ID             string
	ProgressStatus ProgressStatus
	Diagnosis      *Diagnosis
	Summary        string
}

func (*Interpretation) Descriptor() *registry.MessageDescriptor { return InterpretationDesc }

func (x *Interpretation) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(InterpretationDesc).
		String("id", x.ID).
		Enum("progress_status", int32(x.ProgressStatus)).
		Message("diagnosis", x.Diagnosis.ToMessage()).
		String("summary", x.Summary).
		Done()
}

func (x *Interpretation) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("id")
	x.ProgressStatus = ProgressStatus(m.GetEnum("progress_status"))
	x.Diagnosis = dynamic.Load[Diagnosis](m.GetMessage("diagnosis"))
	x.Summary = m.GetString("summary")
}

type Diagnosis struct {
	Disease                *OntologyClass
	GenomicInterpretations []*GenomicInterpretation
}

func (*Diagnosis) Descriptor() *registry.MessageDescriptor { return DiagnosisDesc }

func (x *Diagnosis) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(DiagnosisDesc).
		Message("disease", x.Disease.ToMessage()).
		Messages("genomic_interpretations", dynamic.ToMessages(x.GenomicInterpretations)).
		Done()
}

func (x *Diagnosis) FromMessage(m *dynamic.Message) {
	x.Disease = dynamic.Load[OntologyClass](m.GetMessage("disease"))
	x.GenomicInterpretations = dynamic.LoadAll[GenomicInterpretation](m.GetMessages("genomic_interpretations"))
}

// GenomicInterpretation calls either a gene or a variant for a subject or
// biosample.
type GenomicInterpretation struct {
	SubjectOrBiosampleID string
	InterpretationStatus InterpretationStatus
	Call                 GenomicCall
}

type GenomicCall interface{ isGenomicCall() }

type GenomicCallGene struct{ Gene *vrsatile.GeneDescriptor }
type GenomicCallVariant struct{ VariantInterpretation *VariantInterpretation }

func (GenomicCallGene) isGenomicCall()    {}
func (GenomicCallVariant) isGenomicCall() {}

func (*GenomicInterpretation) Descriptor() *registry.MessageDescriptor {
	return GenomicInterpretationDesc
}

func (x *GenomicInterpretation) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	b := dynamic.Build(GenomicInterpretationDesc).
		String("subject_or_biosample_id", x.SubjectOrBiosampleID).
		Enum("interpretation_status", int32(x.InterpretationStatus))
	switch c := x.Call.(type) {
	case GenomicCallGene:
		b.Message("gene", c.Gene.ToMessage())
	case GenomicCallVariant:
		b.Message("variant_interpretation", c.VariantInterpretation.ToMessage())
	}
	return b.Done()
}

func (x *GenomicInterpretation) FromMessage(m *dynamic.Message) {
	x.SubjectOrBiosampleID = m.GetString("subject_or_biosample_id")
	x.InterpretationStatus = InterpretationStatus(m.GetEnum("interpretation_status"))
	switch m.Which("call") {
	case "gene":
		x.Call = GenomicCallGene{Gene: dynamic.Load[vrsatile.GeneDescriptor](m.GetMessage("gene"))}
	case "variant_interpretation":
		x.Call = GenomicCallVariant{
			VariantInterpretation: dynamic.Load[VariantInterpretation](m.GetMessage("variant_interpretation")),
		}
	}
}

// Variant returns the variant interpretation of the call, or nil when the
// call is a gene.
func (x *GenomicInterpretation) Variant() *VariantInterpretation {
	if x == nil {
		return nil
	}
	if c, ok := x.Call.(GenomicCallVariant); ok {
		return c.VariantInterpretation
	}
	return nil
}

type VariantInterpretation struct {
	AcmgPathogenicityClassification AcmgPathogenicityClassification
	TherapeuticActionability        TherapeuticActionability
	VariationDescriptor             *vrsatile.VariationDescriptor
}

func (*VariantInterpretation) Descriptor() *registry.MessageDescriptor {
	return VariantInterpretationDesc
}

func (x *VariantInterpretation) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(VariantInterpretationDesc).
		Enum("acmg_pathogenicity_classification", int32(x.AcmgPathogenicityClassification)).
		Enum("therapeutic_actionability", int32(x.TherapeuticActionability)).
		Message("variation_descriptor", x.VariationDescriptor.ToMessage()).
		Done()
}

func (x *VariantInterpretation) FromMessage(m *dynamic.Message) {
	x.AcmgPathogenicityClassification = AcmgPathogenicityClassification(m.GetEnum("acmg_pathogenicity_classification"))
	x.TherapeuticActionability = TherapeuticActionability(m.GetEnum("therapeutic_actionability"))
	x.VariationDescriptor = dynamic.Load[vrsatile.VariationDescriptor](m.GetMessage("variation_descriptor"))
}
