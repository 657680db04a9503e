package base

import (
	"fmt"
	"time"

	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// OntologyClass is a term of an external vocabulary. ID is a CURIE such as
// "HP:0001300"; it is carried as given.
type OntologyClass struct {
	ID    string
	Label string
}

// NewOntologyClass returns a term with the given CURIE and label.
func NewOntologyClass(id, label string) *OntologyClass {
	return &OntologyClass{ID: id, Label: label}
}

func (*OntologyClass) Descriptor() *registry.MessageDescriptor { return OntologyClassDesc }

func (x *OntologyClass) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(OntologyClassDesc).String("id", x.ID).String("label", x.Label).Done()
}

func (x *OntologyClass) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("id")
	x.Label = m.GetString("label")
}

type ExternalReference struct {
	ID          string
	Reference   string
	Description string
}

func (*ExternalReference) Descriptor() *registry.MessageDescriptor { return ExternalReferenceDesc }

func (x *ExternalReference) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(ExternalReferenceDesc).
		String("id", x.ID).
		String("reference", x.Reference).
		String("description", x.Description).
		Done()
}

func (x *ExternalReference) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("id")
	x.Reference = m.GetString("reference")
	x.Description = m.GetString("description")
}

type Evidence struct {
	EvidenceCode *OntologyClass
	Reference    *ExternalReference
}

func (*Evidence) Descriptor() *registry.MessageDescriptor { return EvidenceDesc }

func (x *Evidence) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(EvidenceDesc).
		Message("evidence_code", x.EvidenceCode.ToMessage()).
		Message("reference", x.Reference.ToMessage()).
		Done()
}

func (x *Evidence) FromMessage(m *dynamic.Message) {
	x.EvidenceCode = dynamic.Load[OntologyClass](m.GetMessage("evidence_code"))
	x.Reference = dynamic.Load[ExternalReference](m.GetMessage("reference"))
}

type Procedure struct {
	Code      *OntologyClass
	BodySite  *OntologyClass
	Performed *TimeElement
}

func (*Procedure) Descriptor() *registry.MessageDescriptor { return ProcedureDesc }

func (x *Procedure) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(ProcedureDesc).
		Message("code", x.Code.ToMessage()).
		Message("body_site", x.BodySite.ToMessage()).
		Message("performed", x.Performed.ToMessage()).
		Done()
}

func (x *Procedure) FromMessage(m *dynamic.Message) {
	x.Code = dynamic.Load[OntologyClass](m.GetMessage("code"))
	x.BodySite = dynamic.Load[OntologyClass](m.GetMessage("body_site"))
	x.Performed = dynamic.Load[TimeElement](m.GetMessage("performed"))
}

type GestationalAge struct {
	Weeks int32
	Days  int32
}

// NewGestationalAge checks weeks in [0, 45] and days in [0, 6]. Larger
// values can still be set on the struct directly.
func NewGestationalAge(weeks, days int32) (*GestationalAge, error) {
	switch {
	case weeks < 0:
		return nil, fmt.Errorf("gestational age weeks must be non-negative, got %d", weeks)
	case weeks > 45:
		return nil, fmt.Errorf("unrealistic gestational age of %d weeks", weeks)
	case days < 0 || days > 6:
		return nil, fmt.Errorf("gestational age days must be in [0, 6], got %d", days)
	}
	return &GestationalAge{Weeks: weeks, Days: days}, nil
}

func (*GestationalAge) Descriptor() *registry.MessageDescriptor { return GestationalAgeDesc }

func (x *GestationalAge) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(GestationalAgeDesc).
		Int("weeks", int64(x.Weeks)).
		Int("days", int64(x.Days)).
		Done()
}

func (x *GestationalAge) FromMessage(m *dynamic.Message) {
	x.Weeks = int32(m.GetInt("weeks"))
	x.Days = int32(m.GetInt("days"))
}

// Age is an ISO 8601 duration such as "P40Y10M05D".
type Age struct {
	ISO8601Duration string
}

func (*Age) Descriptor() *registry.MessageDescriptor { return AgeDesc }

func (x *Age) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(AgeDesc).String("iso8601duration", x.ISO8601Duration).Done()
}

func (x *Age) FromMessage(m *dynamic.Message) {
	x.ISO8601Duration = m.GetString("iso8601duration")
}

type AgeRange struct {
	Start *Age
	End   *Age
}

func (*AgeRange) Descriptor() *registry.MessageDescriptor { return AgeRangeDesc }

func (x *AgeRange) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(AgeRangeDesc).
		Message("start", x.Start.ToMessage()).
		Message("end", x.End.ToMessage()).
		Done()
}

func (x *AgeRange) FromMessage(m *dynamic.Message) {
	x.Start = dynamic.Load[Age](m.GetMessage("start"))
	x.End = dynamic.Load[Age](m.GetMessage("end"))
}

type TimeInterval struct {
	Start *timestamppb.Timestamp
	End   *timestamppb.Timestamp
}

func (*TimeInterval) Descriptor() *registry.MessageDescriptor { return TimeIntervalDesc }

func (x *TimeInterval) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(TimeIntervalDesc).
		Timestamp("start", x.Start).
		Timestamp("end", x.End).
		Done()
}

func (x *TimeInterval) FromMessage(m *dynamic.Message) {
	x.Start = m.GetTimestamp("start")
	x.End = m.GetTimestamp("end")
}

// TimeElement says when something happened, in exactly one of several
// forms.
type TimeElement struct {
	Element TimeElementKind
}

type TimeElementKind interface{ isTimeElementKind() }

type TimeElementAge struct{ Age *Age }
type TimeElementAgeRange struct{ AgeRange *AgeRange }
type TimeElementOntologyClass struct{ OntologyClass *OntologyClass }
type TimeElementTimestamp struct{ Timestamp *timestamppb.Timestamp }
type TimeElementInterval struct{ Interval *TimeInterval }
type TimeElementGestationalAge struct{ GestationalAge *GestationalAge }

func (TimeElementAge) isTimeElementKind()            {}
func (TimeElementAgeRange) isTimeElementKind()       {}
func (TimeElementOntologyClass) isTimeElementKind()  {}
func (TimeElementTimestamp) isTimeElementKind()      {}
func (TimeElementInterval) isTimeElementKind()       {}
func (TimeElementGestationalAge) isTimeElementKind() {}

// AgeElement is a TimeElement holding an ISO 8601 age.
func AgeElement(iso8601 string) *TimeElement {
	return &TimeElement{Element: TimeElementAge{Age: &Age{ISO8601Duration: iso8601}}}
}

// TimestampElement parses an RFC 3339 time into a TimeElement.
func TimestampElement(rfc3339 string) (*TimeElement, error) {
	t, err := time.Parse(time.RFC3339Nano, rfc3339)
	if err != nil {
		return nil, err
	}
	return &TimeElement{Element: TimeElementTimestamp{Timestamp: timestamppb.New(t)}}, nil
}

func (*TimeElement) Descriptor() *registry.MessageDescriptor { return TimeElementDesc }

func (x *TimeElement) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	b := dynamic.Build(TimeElementDesc)
	switch e := x.Element.(type) {
	case TimeElementAge:
		b.Message("age", e.Age.ToMessage())
	case TimeElementAgeRange:
		b.Message("age_range", e.AgeRange.ToMessage())
	case TimeElementOntologyClass:
		b.Message("ontology_class", e.OntologyClass.ToMessage())
	case TimeElementTimestamp:
		b.Timestamp("timestamp", e.Timestamp)
	case TimeElementInterval:
		b.Message("interval", e.Interval.ToMessage())
	case TimeElementGestationalAge:
		b.Message("gestational_age", e.GestationalAge.ToMessage())
	}
	return b.Done()
}

func (x *TimeElement) FromMessage(m *dynamic.Message) {
	switch m.Which("element") {
	case "age":
		x.Element = TimeElementAge{Age: dynamic.Load[Age](m.GetMessage("age"))}
	case "age_range":
		x.Element = TimeElementAgeRange{AgeRange: dynamic.Load[AgeRange](m.GetMessage("age_range"))}
	case "ontology_class":
		x.Element = TimeElementOntologyClass{OntologyClass: dynamic.Load[OntologyClass](m.GetMessage("ontology_class"))}
	case "timestamp":
		x.Element = TimeElementTimestamp{Timestamp: m.GetTimestamp("timestamp")}
	case "interval":
		x.Element = TimeElementInterval{Interval: dynamic.Load[TimeInterval](m.GetMessage("interval"))}
	case "gestational_age":
		x.Element = TimeElementGestationalAge{GestationalAge: dynamic.Load[GestationalAge](m.GetMessage("gestational_age"))}
	}
}

type File struct {
	URI                         string
	IndividualToFileIdentifiers map[string]string
	FileAttributes              map[string]string
}

func (*File) Descriptor() *registry.MessageDescriptor { return FileDesc }

func (x *File) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(FileDesc).
		String("uri", x.URI).
		StringMap("individual_to_file_identifiers", x.IndividualToFileIdentifiers).
		StringMap("file_attributes", x.FileAttributes).
		Done()
}

func (x *File) FromMessage(m *dynamic.Message) {
	x.URI = m.GetString("uri")
	x.IndividualToFileIdentifiers = m.GetStringMap("individual_to_file_identifiers")
	x.FileAttributes = m.GetStringMap("file_attributes")
}
