package phenopackets

import (
	vrs "github.com/danmuck/phenopackets/pkg/ga4gh/vrs/v1"
	vrsatile "github.com/danmuck/phenopackets/pkg/ga4gh/vrsatile/v1"
	v2 "github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2"
)

// Top-level aggregates.
type (
	Phenopacket = v2.Phenopacket
	Family      = v2.Family
	Cohort      = v2.Cohort
)

// Building blocks of org.phenopackets.schema.v2.core.
type (
	OntologyClass     = v2.OntologyClass
	ExternalReference = v2.ExternalReference
	Evidence          = v2.Evidence
	Procedure         = v2.Procedure
	GestationalAge    = v2.GestationalAge
	Age               = v2.Age
	AgeRange          = v2.AgeRange
	TimeInterval      = v2.TimeInterval
	File              = v2.File

	TimeElement               = v2.TimeElement
	TimeElementKind           = v2.TimeElementKind
	TimeElementAge            = v2.TimeElementAge
	TimeElementAgeRange       = v2.TimeElementAgeRange
	TimeElementOntologyClass  = v2.TimeElementOntologyClass
	TimeElementTimestamp      = v2.TimeElementTimestamp
	TimeElementInterval       = v2.TimeElementInterval
	TimeElementGestationalAge = v2.TimeElementGestationalAge

	Individual        = v2.Individual
	VitalStatus       = v2.VitalStatus
	Sex               = v2.Sex
	KaryotypicSex     = v2.KaryotypicSex
	VitalStatusStatus = v2.VitalStatusStatus

	PhenotypicFeature       = v2.PhenotypicFeature
	Measurement             = v2.Measurement
	MeasurementValue        = v2.MeasurementValue
	MeasurementSimpleValue  = v2.MeasurementSimpleValue
	MeasurementComplexValue = v2.MeasurementComplexValue
	Value                   = v2.Value
	ValueKind               = v2.ValueKind
	ValueQuantity           = v2.ValueQuantity
	ValueOntologyClass      = v2.ValueOntologyClass
	ComplexValue            = v2.ComplexValue
	Quantity                = v2.Quantity
	TypedQuantity           = v2.TypedQuantity
	ReferenceRange          = v2.ReferenceRange

	Biosample = v2.Biosample
	Disease   = v2.Disease

	Interpretation                  = v2.Interpretation
	ProgressStatus                  = v2.ProgressStatus
	Diagnosis                       = v2.Diagnosis
	GenomicInterpretation           = v2.GenomicInterpretation
	InterpretationStatus            = v2.InterpretationStatus
	GenomicCall                     = v2.GenomicCall
	GenomicCallGene                 = v2.GenomicCallGene
	GenomicCallVariant              = v2.GenomicCallVariant
	VariantInterpretation           = v2.VariantInterpretation
	AcmgPathogenicityClassification = v2.AcmgPathogenicityClassification
	TherapeuticActionability        = v2.TherapeuticActionability

	MedicalAction            = v2.MedicalAction
	MedicalActionKind        = v2.MedicalActionKind
	ActionProcedure          = v2.ActionProcedure
	ActionTreatment          = v2.ActionTreatment
	ActionRadiationTherapy   = v2.ActionRadiationTherapy
	ActionTherapeuticRegimen = v2.ActionTherapeuticRegimen
	Treatment                = v2.Treatment
	DrugType                 = v2.DrugType
	DoseInterval             = v2.DoseInterval
	RadiationTherapy         = v2.RadiationTherapy
	TherapeuticRegimen       = v2.TherapeuticRegimen
	RegimenIdentifier        = v2.RegimenIdentifier
	RegimenExternalReference = v2.RegimenExternalReference
	RegimenOntologyClass     = v2.RegimenOntologyClass
	RegimenStatus            = v2.RegimenStatus

	MetaData       = v2.MetaData
	Resource       = v2.Resource
	Update         = v2.Update
	Pedigree       = v2.Pedigree
	Person         = v2.Person
	AffectedStatus = v2.AffectedStatus
)

// VRSATILE, merged into the flat namespace.
type (
	MoleculeContext     = vrsatile.MoleculeContext
	Extension           = vrsatile.Extension
	Expression          = vrsatile.Expression
	VcfRecord           = vrsatile.VcfRecord
	GeneDescriptor      = vrsatile.GeneDescriptor
	VariationDescriptor = vrsatile.VariationDescriptor
)

// VRS, merged into the flat namespace.
type (
	Variation                       = vrs.Variation
	VariationKind                   = vrs.VariationKind
	VariationAllele                 = vrs.VariationAllele
	VariationText                   = vrs.VariationText
	Allele                          = vrs.Allele
	AlleleLocation                  = vrs.AlleleLocation
	AlleleState                     = vrs.AlleleState
	AlleleCurie                     = vrs.AlleleCurie
	AlleleSequenceLocation          = vrs.AlleleSequenceLocation
	AlleleSequenceState             = vrs.AlleleSequenceState
	AlleleLiteralSequenceExpression = vrs.AlleleLiteralSequenceExpression
	SequenceLocation                = vrs.SequenceLocation
	LocationInterval                = vrs.LocationInterval
	LocationSequenceInterval        = vrs.LocationSequenceInterval
	LocationSimpleInterval          = vrs.LocationSimpleInterval
	SequenceInterval                = vrs.SequenceInterval
	Bound                           = vrs.Bound
	SimpleInterval                  = vrs.SimpleInterval
	Number                          = vrs.Number
	IndefiniteRange                 = vrs.IndefiniteRange
	DefiniteRange                   = vrs.DefiniteRange
	Text                            = vrs.Text
	LiteralSequenceExpression       = vrs.LiteralSequenceExpression
	SequenceState                   = vrs.SequenceState
)

const (
	UnknownSex = v2.UnknownSex
	Female     = v2.Female
	Male       = v2.Male
	OtherSex   = v2.OtherSex

	VitalStatusUnknown = v2.VitalStatusUnknown
	Alive              = v2.Alive
	Deceased           = v2.Deceased

	UnknownProgress = v2.UnknownProgress
	InProgress      = v2.InProgress
	Completed       = v2.Completed
	Solved          = v2.Solved
	Unsolved        = v2.Unsolved

	InterpretationUnknown = v2.InterpretationUnknown
	Rejected              = v2.Rejected
	Candidate             = v2.Candidate
	Contributory          = v2.Contributory
	Causative             = v2.Causative

	NotProvided           = v2.NotProvided
	Benign                = v2.Benign
	LikelyBenign          = v2.LikelyBenign
	UncertainSignificance = v2.UncertainSignificance
	LikelyPathogenic      = v2.LikelyPathogenic
	Pathogenic            = v2.Pathogenic

	UnknownActionability = v2.UnknownActionability
	NotActionable        = v2.NotActionable
	Actionable           = v2.Actionable

	Missing    = v2.Missing
	Unaffected = v2.Unaffected
	Affected   = v2.Affected

	UnspecifiedMoleculeContext = vrsatile.UnspecifiedMoleculeContext
	Genomic                    = vrsatile.Genomic
	Transcript                 = vrsatile.Transcript
	Protein                    = vrsatile.Protein
)

const SchemaVersion = v2.SchemaVersion

func NewOntologyClass(id, label string) *OntologyClass { return v2.NewOntologyClass(id, label) }

func NewGestationalAge(weeks, days int32) (*GestationalAge, error) {
	return v2.NewGestationalAge(weeks, days)
}

func AgeElement(iso8601 string) *TimeElement { return v2.AgeElement(iso8601) }

func TimestampElement(rfc3339 string) (*TimeElement, error) { return v2.TimestampElement(rfc3339) }

func CheckWellFormed(p *Phenopacket) error { return v2.CheckWellFormed(p) }
