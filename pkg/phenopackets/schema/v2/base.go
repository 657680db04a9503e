package v2

import "github.com/danmuck/phenopackets/pkg/phenopackets/schema/v2/base"

// The building blocks live in package base so that VRSATILE can use
// OntologyClass without importing this package.
type (
	OntologyClass     = base.OntologyClass
	ExternalReference = base.ExternalReference
	Evidence          = base.Evidence
	Procedure         = base.Procedure
	GestationalAge    = base.GestationalAge
	Age               = base.Age
	AgeRange          = base.AgeRange
	TimeInterval      = base.TimeInterval
	File              = base.File

	TimeElement               = base.TimeElement
	TimeElementKind           = base.TimeElementKind
	TimeElementAge            = base.TimeElementAge
	TimeElementAgeRange       = base.TimeElementAgeRange
	TimeElementOntologyClass  = base.TimeElementOntologyClass
	TimeElementTimestamp      = base.TimeElementTimestamp
	TimeElementInterval       = base.TimeElementInterval
	TimeElementGestationalAge = base.TimeElementGestationalAge
)

var (
	OntologyClassDesc     = base.OntologyClassDesc
	ExternalReferenceDesc = base.ExternalReferenceDesc
	EvidenceDesc          = base.EvidenceDesc
	ProcedureDesc         = base.ProcedureDesc
	GestationalAgeDesc    = base.GestationalAgeDesc
	AgeDesc               = base.AgeDesc
	AgeRangeDesc          = base.AgeRangeDesc
	TimeIntervalDesc      = base.TimeIntervalDesc
	TimeElementDesc       = base.TimeElementDesc
	FileDesc              = base.FileDesc
)

func NewOntologyClass(id, label string) *OntologyClass { return base.NewOntologyClass(id, label) }

func NewGestationalAge(weeks, days int32) (*GestationalAge, error) {
	return base.NewGestationalAge(weeks, days)
}

func AgeElement(iso8601 string) *TimeElement { return base.AgeElement(iso8601) }

func TimestampElement(rfc3339 string) (*TimeElement, error) { return base.TimestampElement(rfc3339) }
