package vrs

import (
	"github.com/danmuck/phenopackets/pkg/dynamic"
	"github.com/danmuck/phenopackets/pkg/registry"
)

// Variation holds exactly one of VariationAllele or VariationText.
type Variation struct {
	Variation VariationKind
}

type VariationKind interface{ isVariationKind() }

type VariationAllele struct{ Allele *Allele }
type VariationText struct{ Text *Text }

func (VariationAllele) isVariationKind() {}
func (VariationText) isVariationKind()   {}

func (*Variation) Descriptor() *registry.MessageDescriptor { return VariationDesc }

func (x *Variation) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	b := dynamic.Build(VariationDesc)
	switch v := x.Variation.(type) {
	case VariationAllele:
		b.Message("allele", v.Allele.ToMessage())
	case VariationText:
		b.Message("text", v.Text.ToMessage())
	}
	return b.Done()
}

func (x *Variation) FromMessage(m *dynamic.Message) {
	switch m.Which("variation") {
	case "allele":
		x.Variation = VariationAllele{Allele: dynamic.Load[Allele](m.GetMessage("allele"))}
	case "text":
		x.Variation = VariationText{Text: dynamic.Load[Text](m.GetMessage("text"))}
	}
}

// Allele is a contiguous change at a location: the location is a CURIE or a
// SequenceLocation, the state a SequenceState or a LiteralSequenceExpression.
type Allele struct {
	ID       string
	Location AlleleLocation
	State    AlleleState
}

type AlleleLocation interface{ isAlleleLocation() }
type AlleleState interface{ isAlleleState() }

type AlleleCurie struct{ Curie string }
type AlleleSequenceLocation struct{ SequenceLocation *SequenceLocation }
type AlleleSequenceState struct{ SequenceState *SequenceState }
type AlleleLiteralSequenceExpression struct {
	LiteralSequenceExpression *LiteralSequenceExpression
}

func (AlleleCurie) isAlleleLocation()                  {}
func (AlleleSequenceLocation) isAlleleLocation()       {}
func (AlleleSequenceState) isAlleleState()             {}
func (AlleleLiteralSequenceExpression) isAlleleState() {}

func (*Allele) Descriptor() *registry.MessageDescriptor { return AlleleDesc }

func (x *Allele) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	b := dynamic.Build(AlleleDesc).String("_id", x.ID)
	switch l := x.Location.(type) {
	case AlleleCurie:
		b.String("curie", l.Curie)
	case AlleleSequenceLocation:
		b.Message("sequence_location", l.SequenceLocation.ToMessage())
	}
	switch s := x.State.(type) {
	case AlleleSequenceState:
		b.Message("sequence_state", s.SequenceState.ToMessage())
	case AlleleLiteralSequenceExpression:
		b.Message("literal_sequence_expression", s.LiteralSequenceExpression.ToMessage())
	}
	return b.Done()
}

func (x *Allele) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("_id")
	switch m.Which("location") {
	case "curie":
		x.Location = AlleleCurie{Curie: m.GetString("curie")}
	case "sequence_location":
		x.Location = AlleleSequenceLocation{
			SequenceLocation: dynamic.Load[SequenceLocation](m.GetMessage("sequence_location")),
		}
	}
	switch m.Which("state") {
	case "sequence_state":
		x.State = AlleleSequenceState{SequenceState: dynamic.Load[SequenceState](m.GetMessage("sequence_state"))}
	case "literal_sequence_expression":
		x.State = AlleleLiteralSequenceExpression{
			LiteralSequenceExpression: dynamic.Load[LiteralSequenceExpression](m.GetMessage("literal_sequence_expression")),
		}
	}
}

type SequenceLocation struct {
	ID         string
	SequenceID string
	Interval   LocationInterval
}

type LocationInterval interface{ isLocationInterval() }

type LocationSequenceInterval struct{ SequenceInterval *SequenceInterval }
type LocationSimpleInterval struct{ SimpleInterval *SimpleInterval }

func (LocationSequenceInterval) isLocationInterval() {}
func (LocationSimpleInterval) isLocationInterval()   {}

func (*SequenceLocation) Descriptor() *registry.MessageDescriptor { return SequenceLocationDesc }

func (x *SequenceLocation) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	b := dynamic.Build(SequenceLocationDesc).
		String("_id", x.ID).
		String("sequence_id", x.SequenceID)
	switch i := x.Interval.(type) {
	case LocationSequenceInterval:
		b.Message("sequence_interval", i.SequenceInterval.ToMessage())
	case LocationSimpleInterval:
		b.Message("simple_interval", i.SimpleInterval.ToMessage())
	}
	return b.Done()
}

func (x *SequenceLocation) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("_id")
	x.SequenceID = m.GetString("sequence_id")
	switch m.Which("interval") {
	case "sequence_interval":
		x.Interval = LocationSequenceInterval{
			SequenceInterval: dynamic.Load[SequenceInterval](m.GetMessage("sequence_interval")),
		}
	case "simple_interval":
		x.Interval = LocationSimpleInterval{
			SimpleInterval: dynamic.Load[SimpleInterval](m.GetMessage("simple_interval")),
		}
	}
}

// SequenceInterval bounds a location with a Number, an IndefiniteRange or a
// DefiniteRange at each end. The Go message types themselves are the oneof
// branches.
type SequenceInterval struct {
	Start Bound
	End   Bound
}

type Bound interface {
	boundMessage() *dynamic.Message
}

func (x *Number) boundMessage() *dynamic.Message          { return x.ToMessage() }
func (x *IndefiniteRange) boundMessage() *dynamic.Message { return x.ToMessage() }
func (x *DefiniteRange) boundMessage() *dynamic.Message   { return x.ToMessage() }

func (*SequenceInterval) Descriptor() *registry.MessageDescriptor { return SequenceIntervalDesc }

func (x *SequenceInterval) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	b := dynamic.Build(SequenceIntervalDesc)
	setBound(b, "start", x.Start)
	setBound(b, "end", x.End)
	return b.Done()
}

func setBound(b *dynamic.Builder, side string, v Bound) {
	switch v.(type) {
	case *Number:
		b.Message(side+"_number", v.boundMessage())
	case *IndefiniteRange:
		b.Message(side+"_indefinite_range", v.boundMessage())
	case *DefiniteRange:
		b.Message(side+"_definite_range", v.boundMessage())
	}
}

func (x *SequenceInterval) FromMessage(m *dynamic.Message) {
	x.Start = loadBound(m, "start")
	x.End = loadBound(m, "end")
}

func loadBound(m *dynamic.Message, side string) Bound {
	switch m.Which(side) {
	case side + "_number":
		return dynamic.Load[Number](m.GetMessage(side + "_number"))
	case side + "_indefinite_range":
		return dynamic.Load[IndefiniteRange](m.GetMessage(side + "_indefinite_range"))
	case side + "_definite_range":
		return dynamic.Load[DefiniteRange](m.GetMessage(side + "_definite_range"))
	}
	return nil
}

type SimpleInterval struct {
	Start uint64
	End   uint64
}

func (*SimpleInterval) Descriptor() *registry.MessageDescriptor { return SimpleIntervalDesc }

func (x *SimpleInterval) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(SimpleIntervalDesc).Uint("start", x.Start).Uint("end", x.End).Done()
}

func (x *SimpleInterval) FromMessage(m *dynamic.Message) {
	x.Start = m.GetUint("start")
	x.End = m.GetUint("end")
}

// Number is an inter-residue coordinate.
type Number struct {
	Value uint64
}

func (*Number) Descriptor() *registry.MessageDescriptor { return NumberDesc }

func (x *Number) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(NumberDesc).Uint("value", x.Value).Done()
}

func (x *Number) FromMessage(m *dynamic.Message) {
	x.Value = m.GetUint("value")
}

type IndefiniteRange struct {
	Value      uint64
	Comparator string
}

func (*IndefiniteRange) Descriptor() *registry.MessageDescriptor { return IndefiniteRangeDesc }

func (x *IndefiniteRange) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(IndefiniteRangeDesc).
		Uint("value", x.Value).
		String("comparator", x.Comparator).
		Done()
}

func (x *IndefiniteRange) FromMessage(m *dynamic.Message) {
	x.Value = m.GetUint("value")
	x.Comparator = m.GetString("comparator")
}

type DefiniteRange struct {
	Min uint64
	Max uint64
}

func (*DefiniteRange) Descriptor() *registry.MessageDescriptor { return DefiniteRangeDesc }

func (x *DefiniteRange) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(DefiniteRangeDesc).Uint("min", x.Min).Uint("max", x.Max).Done()
}

func (x *DefiniteRange) FromMessage(m *dynamic.Message) {
	x.Min = m.GetUint("min")
	x.Max = m.GetUint("max")
}

// Text is a free-text variation definition.
type Text struct {
	ID         string
	Definition string
}

func (*Text) Descriptor() *registry.MessageDescriptor { return TextDesc }

func (x *Text) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(TextDesc).String("_id", x.ID).String("definition", x.Definition).Done()
}

func (x *Text) FromMessage(m *dynamic.Message) {
	x.ID = m.GetString("_id")
	x.Definition = m.GetString("definition")
}

type LiteralSequenceExpression struct {
	Sequence string
}

func (*LiteralSequenceExpression) Descriptor() *registry.MessageDescriptor {
	return LiteralSequenceExpressionDesc
}

func (x *LiteralSequenceExpression) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(LiteralSequenceExpressionDesc).String("sequence", x.Sequence).Done()
}

func (x *LiteralSequenceExpression) FromMessage(m *dynamic.Message) {
	x.Sequence = m.GetString("sequence")
}

type SequenceState struct {
	Sequence string
}

func (*SequenceState) Descriptor() *registry.MessageDescriptor { return SequenceStateDesc }

func (x *SequenceState) ToMessage() *dynamic.Message {
	if x == nil {
		return nil
	}
	return dynamic.Build(SequenceStateDesc).String("sequence", x.Sequence).Done()
}

func (x *SequenceState) FromMessage(m *dynamic.Message) {
	x.Sequence = m.GetString("sequence")
}
